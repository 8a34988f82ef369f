package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"meetme-api/internal/ics"
	"meetme-api/internal/middleware"
	"meetme-api/internal/model"
	"meetme-api/internal/store"
)

type appointmentResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Title       string    `json:"title"`
	ClientName  string    `json:"clientName,omitempty"`
	ClientEmail string    `json:"clientEmail,omitempty"`
	ClientPhone string    `json:"clientPhone,omitempty"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Location    string    `json:"location,omitempty"`
	MeetingLink string    `json:"meetingLink,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	Color       string    `json:"color"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func newAppointmentResponse(a *model.Appointment) appointmentResponse {
	return appointmentResponse{
		ID:          a.ID,
		UserID:      a.UserID,
		Title:       a.Title,
		ClientName:  a.ClientName,
		ClientEmail: a.ClientEmail,
		ClientPhone: a.ClientPhone,
		Start:       a.Start,
		End:         a.End,
		Location:    a.Location,
		MeetingLink: a.MeetingLink,
		Notes:       a.Notes,
		Color:       a.Color,
		Status:      a.Status,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

type createAppointmentRequest struct {
	Title       string     `json:"title"`
	ClientName  string     `json:"clientName"`
	ClientEmail string     `json:"clientEmail"`
	ClientPhone string     `json:"clientPhone"`
	Start       *time.Time `json:"start"`
	End         *time.Time `json:"end"`
	Location    string     `json:"location"`
	MeetingLink string     `json:"meetingLink"`
	Notes       string     `json:"notes"`
	Color       string     `json:"color"`
	Status      string     `json:"status"`
}

func (h *Handler) CreateAppointment(c *gin.Context) {
	userID := middleware.UserID(c)

	var req createAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}
	if req.Title == "" || req.Start == nil || req.End == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "title, start, and end are required"})
		return
	}
	if !req.End.After(*req.Start) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "end must be after start"})
		return
	}

	status := req.Status
	if status == "" {
		status = model.StatusScheduled
	} else if !model.ValidStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid status"})
		return
	}
	color := req.Color
	if color == "" {
		color = model.DefaultColor
	}

	a := &model.Appointment{
		ID:          uuid.New().String(),
		UserID:      userID,
		Title:       req.Title,
		ClientName:  req.ClientName,
		ClientEmail: req.ClientEmail,
		ClientPhone: req.ClientPhone,
		Start:       *req.Start,
		End:         *req.End,
		Location:    req.Location,
		MeetingLink: req.MeetingLink,
		Notes:       req.Notes,
		Color:       color,
		Status:      status,
	}

	if err := h.store.CreateAppointment(c.Request.Context(), a); err != nil {
		h.log.Error().Err(err).Msg("create appointment")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
		return
	}

	c.JSON(http.StatusCreated, newAppointmentResponse(a))
}

// parseTimeParam accepts RFC3339 timestamps or bare dates.
func parseTimeParam(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", v)
}

func (h *Handler) ListAppointments(c *gin.Context) {
	userID := middleware.UserID(c)

	var from, to time.Time
	if v := c.Query("from"); v != "" {
		t, err := parseTimeParam(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid from timestamp"})
			return
		}
		from = t
	}
	if v := c.Query("to"); v != "" {
		t, err := parseTimeParam(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid to timestamp"})
			return
		}
		to = t
	}

	appts, err := h.store.ListAppointments(c.Request.Context(), userID, from, to)
	if err != nil {
		h.log.Error().Err(err).Msg("list appointments")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
		return
	}

	out := make([]appointmentResponse, len(appts))
	for i := range appts {
		out[i] = newAppointmentResponse(&appts[i])
	}
	c.JSON(http.StatusOK, out)
}

type updateAppointmentRequest struct {
	Title       *string    `json:"title"`
	ClientName  *string    `json:"clientName"`
	ClientEmail *string    `json:"clientEmail"`
	ClientPhone *string    `json:"clientPhone"`
	Start       *time.Time `json:"start"`
	End         *time.Time `json:"end"`
	Location    *string    `json:"location"`
	MeetingLink *string    `json:"meetingLink"`
	Notes       *string    `json:"notes"`
	Color       *string    `json:"color"`
	Status      *string    `json:"status"`
}

func (h *Handler) UpdateAppointment(c *gin.Context) {
	userID := middleware.UserID(c)
	id := c.Param("id")

	var req updateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}
	if req.Title != nil && *req.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "title cannot be empty"})
		return
	}
	if req.Status != nil && !model.ValidStatus(*req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid status"})
		return
	}

	patch := &store.AppointmentPatch{
		Title:       req.Title,
		ClientName:  req.ClientName,
		ClientEmail: req.ClientEmail,
		ClientPhone: req.ClientPhone,
		Start:       req.Start,
		End:         req.End,
		Location:    req.Location,
		MeetingLink: req.MeetingLink,
		Notes:       req.Notes,
		Color:       req.Color,
		Status:      req.Status,
	}

	a, err := h.store.UpdateAppointment(c.Request.Context(), id, userID, patch)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Appointment not found"})
		case errors.Is(err, store.ErrInvalidInterval):
			c.JSON(http.StatusBadRequest, gin.H{"message": "end must be after start"})
		case errors.Is(err, store.ErrInvalidTransition):
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid status transition"})
		default:
			h.log.Error().Err(err).Msg("update appointment")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
		}
		return
	}

	c.JSON(http.StatusOK, newAppointmentResponse(a))
}

func (h *Handler) DeleteAppointment(c *gin.Context) {
	userID := middleware.UserID(c)
	id := c.Param("id")

	if err := h.store.DeleteAppointment(c.Request.Context(), id, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Appointment not found"})
			return
		}
		h.log.Error().Err(err).Msg("delete appointment")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Appointment removed"})
}

// ExportAppointments serves the caller's full appointment list as an
// iCalendar feed.
func (h *Handler) ExportAppointments(c *gin.Context) {
	userID := middleware.UserID(c)

	appts, err := h.store.ListAppointments(c.Request.Context(), userID, time.Time{}, time.Time{})
	if err != nil {
		h.log.Error().Err(err).Msg("export appointments")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
		return
	}

	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(ics.BuildCalendar(appts)))
}
