package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"meetme-api/internal/middleware"
	"meetme-api/internal/model"
	"meetme-api/internal/payment"
	"meetme-api/internal/store"
)

type createPaymentIntentRequest struct {
	AppointmentID string `json:"appointmentId"`
	Amount        int64  `json:"amount"` // cents
	Currency      string `json:"currency"`
}

// CreatePaymentIntent opens a Stripe PaymentIntent for one of the caller's
// appointments and returns the client secret used to confirm it.
func (h *Handler) CreatePaymentIntent(c *gin.Context) {
	userID := middleware.UserID(c)

	var req createPaymentIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.AppointmentID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "appointmentId is required"})
		return
	}
	if req.Amount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "amount must be positive"})
		return
	}
	currency := req.Currency
	if currency == "" {
		currency = "usd"
	}

	appt, err := h.store.GetAppointment(c.Request.Context(), req.AppointmentID, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Appointment not found"})
			return
		}
		h.log.Error().Err(err).Msg("get appointment")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
		return
	}

	intent, err := h.stripe.CreateIntent(req.Amount, currency, map[string]string{
		"appointmentId": appt.ID,
		"userId":        userID,
	})
	if err != nil {
		if errors.Is(err, payment.ErrNotConfigured) {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Stripe secret key is not configured"})
			return
		}
		h.log.Error().Err(err).Msg("create payment intent")
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	p := &model.Payment{
		ID:            uuid.New().String(),
		UserID:        userID,
		AppointmentID: appt.ID,
		AmountCents:   req.Amount,
		Currency:      currency,
		Status:        intent.Status,
		IntentID:      intent.ID,
	}
	if err := h.store.CreatePayment(c.Request.Context(), p); err != nil {
		h.log.Error().Err(err).Msg("store payment")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"paymentId":    p.ID,
		"clientSecret": intent.ClientSecret,
	})
}

type testPaymentRequest struct {
	PaymentID string `json:"paymentId"`
}

type paymentResponse struct {
	ID            string `json:"id"`
	AppointmentID string `json:"appointmentId"`
	AmountCents   int64  `json:"amountCents"`
	Currency      string `json:"currency"`
	Status        string `json:"status"`
	Paid          bool   `json:"paid"`
}

// TestPayment confirms a pending payment with Stripe's pm_card_visa test
// card and marks the record paid.
func (h *Handler) TestPayment(c *gin.Context) {
	userID := middleware.UserID(c)

	var req testPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.PaymentID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "paymentId is required"})
		return
	}

	p, err := h.store.GetPayment(c.Request.Context(), req.PaymentID, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Payment not found"})
			return
		}
		h.log.Error().Err(err).Msg("get payment")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
		return
	}
	if p.Paid {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Payment is already completed"})
		return
	}

	intent, err := h.stripe.ConfirmTestIntent(p.AmountCents, p.Currency, map[string]string{
		"appointmentId": p.AppointmentID,
		"userId":        userID,
	})
	if err != nil {
		if errors.Is(err, payment.ErrNotConfigured) {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Stripe secret key is not configured"})
			return
		}
		h.log.Error().Err(err).Msg("confirm test payment")
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	updated, err := h.store.MarkPaymentPaid(c.Request.Context(), p.ID, userID, intent.ID, intent.Status)
	if err != nil {
		h.log.Error().Err(err).Msg("mark payment paid")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
		return
	}

	c.JSON(http.StatusOK, paymentResponse{
		ID:            updated.ID,
		AppointmentID: updated.AppointmentID,
		AmountCents:   updated.AmountCents,
		Currency:      updated.Currency,
		Status:        updated.Status,
		Paid:          updated.Paid,
	})
}
