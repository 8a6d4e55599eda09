package handlers

import (
	"net/http"
	"strconv"

	"burger-house-api/metrics"
	"burger-house-api/middleware"
	"burger-house-api/models"
	"burger-house-api/service"

	"github.com/gin-gonic/gin"
	"github.com/juju/errors"
	"go.uber.org/zap"
)

// Handler serves the HTTP API on top of the data service
type Handler struct {
	svc     *service.Service
	tokens  *middleware.Tokens
	metrics *metrics.Metrics
	log     *zap.Logger
}

func New(svc *service.Service, tokens *middleware.Tokens, m *metrics.Metrics, log *zap.Logger) *Handler {
	return &Handler{svc: svc, tokens: tokens, metrics: m, log: log}
}

// Account looks up the user behind a session token
func (h *Handler) Account(id int) (models.User, error) {
	return h.svc.UserByID(id)
}

// statusFor maps data service errors onto HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrDuplicateKey):
		return http.StatusConflict
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrInsufficientPoints):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// fail writes err as a JSON error. Internal failures are logged and their
// detail is kept out of the response.
func (h *Handler) fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		middleware.Logger(c, h.log).Error("request failed", zap.Error(err))
		c.JSON(status, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// idParam parses a positive integer path parameter, answering 400 if it isn't one
func idParam(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return id, true
}

// Health reports liveness
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "Burger House API",
		"version": "1.0.0",
	})
}
