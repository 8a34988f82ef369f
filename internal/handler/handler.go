package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"meetme-api/internal/middleware"
	"meetme-api/internal/payment"
	"meetme-api/internal/store"
)

type Handler struct {
	store  *store.Store
	stripe *payment.Client
	secret string
	log    zerolog.Logger
}

func New(st *store.Store, stripe *payment.Client, secret string, log zerolog.Logger) *Handler {
	return &Handler{store: st, stripe: stripe, secret: secret, log: log}
}

// Routes registers the REST API. Register and login are rate limited; every
// other route requires a valid access token.
func (h *Handler) Routes(r *gin.Engine, rl *middleware.RateLimiter) {
	api := r.Group("/api")
	limited := middleware.RateLimit(rl)
	authed := middleware.Auth(h.secret)

	users := api.Group("/users")
	users.POST("", limited, h.Register)
	users.POST("/login", limited, h.Login)
	users.POST("/refresh", h.Refresh)
	users.POST("/logout", authed, h.Logout)
	users.GET("/profile", authed, h.Profile)

	appts := api.Group("/appointments", authed)
	appts.POST("", h.CreateAppointment)
	appts.GET("", h.ListAppointments)
	appts.GET("/export.ics", h.ExportAppointments)
	appts.PUT("/:id", h.UpdateAppointment)
	appts.DELETE("/:id", h.DeleteAppointment)

	tasks := api.Group("/tasks", authed)
	tasks.POST("", h.CreateTask)
	tasks.GET("", h.ListTasks)
	tasks.PUT("/:id", h.UpdateTask)
	tasks.DELETE("/:id", h.DeleteTask)

	payments := api.Group("/payments", authed)
	payments.POST("/create-payment-intent", h.CreatePaymentIntent)
	payments.POST("/test-payment", h.TestPayment)
}
