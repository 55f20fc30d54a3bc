package request

import (
	"errors"
	"net/http"
	"strconv"

	"fitbook/internal/domain"
	"fitbook/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/booking-requests", h.List)
	rg.POST("/booking-requests", h.Create)
	rg.PUT("/booking-requests", h.Decide)
	rg.DELETE("/booking-requests", h.Delete)
}

func (h *Handler) List(c *gin.Context) {
	role := domain.UserRole(c.GetString("role"))
	list, err := h.service.List(c.Request.Context(), c.GetInt64("user_id"), role, c.Query("status"))
	if err != nil {
		h.writeError(c, err, "Failed to list booking requests")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"requests": list})
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	role := domain.UserRole(c.GetString("role"))
	r, err := h.service.Create(c.Request.Context(), c.GetInt64("user_id"), role, req)
	if err != nil {
		h.writeError(c, err, "Failed to create booking request")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"request": r})
}

// Decide handles both outcomes of a pending request: accepted (with a
// chosen time, creating the booking) or declined.
func (h *Handler) Decide(c *gin.Context) {
	var req DecideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	actorID := c.GetInt64("user_id")

	var (
		r   *domain.BookingRequest
		err error
	)
	switch req.Status {
	case string(domain.RequestAccepted):
		if req.AcceptedTime == nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "accepted_time is required to accept")
			return
		}
		r, err = h.service.Accept(c.Request.Context(), req.ID, actorID, *req.AcceptedTime)
	case string(domain.RequestDeclined):
		r, err = h.service.Decline(c.Request.Context(), req.ID, actorID)
	}
	if err != nil {
		h.writeError(c, err, "Failed to update booking request")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"request": r})
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Query("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "id is required")
		return
	}

	role := domain.UserRole(c.GetString("role"))
	if err := h.service.Delete(c.Request.Context(), id, c.GetInt64("user_id"), role); err != nil {
		h.writeError(c, err, "Failed to delete booking request")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": id})
}

func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, ErrTimeNotPreferred):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking request data")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking request not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Not your booking request")
	case errors.Is(err, ErrInvalidStateTransition):
		response.Error(c, http.StatusConflict, "INVALID_STATE", "Request is no longer pending")
	case errors.Is(err, ErrBookingCreationConflict):
		response.Error(c, http.StatusConflict, "BOOKING_CONFLICT", "The chosen time is already booked")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
	}
}
