package availability

import (
	"errors"
	"net/http"
	"strconv"

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
	rg.GET("/availability", h.ListBlocks)
	rg.GET("/availability/slots", h.GetSlots)
	rg.GET("/client/availability", h.ClientCalendar)
}

// RegisterProviderRoutes mounts the calendar mutations; callers attach
// these behind a provider role check.
func (h *Handler) RegisterProviderRoutes(rg *gin.RouterGroup) {
	rg.POST("/availability", h.CreateBlock)
	rg.PUT("/availability", h.UpdateBlock)
	rg.DELETE("/availability", h.DeleteBlock)
	rg.PUT("/availability/schedule", h.ReplaceSchedule)
}

func (h *Handler) ListBlocks(c *gin.Context) {
	providerID, err := strconv.ParseInt(c.Query("providerId"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "providerId is required")
		return
	}

	blocks, err := h.service.ListBlocks(c.Request.Context(), providerID, c.Query("blockType"))
	if err != nil {
		h.writeError(c, err, "Failed to list availability")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"availability": blocks})
}

func (h *Handler) CreateBlock(c *gin.Context) {
	var req CreateBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	block, err := h.service.CreateBlock(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		h.writeError(c, err, "Failed to create availability block")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"block": block})
}

func (h *Handler) UpdateBlock(c *gin.Context) {
	var req UpdateBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	block, err := h.service.UpdateBlock(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		h.writeError(c, err, "Failed to update availability block")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"block": block})
}

func (h *Handler) DeleteBlock(c *gin.Context) {
	blockID, err := strconv.ParseInt(c.Query("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "id is required")
		return
	}

	if err := h.service.DeleteBlock(c.Request.Context(), c.GetInt64("user_id"), blockID); err != nil {
		h.writeError(c, err, "Failed to delete availability block")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": blockID})
}

func (h *Handler) ReplaceSchedule(c *gin.Context) {
	var req ReplaceScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	blocks, err := h.service.ReplaceSchedule(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		h.writeError(c, err, "Failed to replace schedule")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"availability": blocks})
}

func (h *Handler) GetSlots(c *gin.Context) {
	providerID, err := strconv.ParseInt(c.Query("providerId"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "providerId is required")
		return
	}
	durationMinutes, err := strconv.Atoi(c.Query("durationMinutes"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "durationMinutes is required")
		return
	}

	slots, err := h.service.GetSlots(c.Request.Context(), providerID, c.Query("date"), durationMinutes)
	if err != nil {
		h.writeError(c, err, "Failed to compute slots")
		return
	}

	out := make([]SlotResponse, 0, len(slots))
	for _, s := range slots {
		out = append(out, SlotResponse{Start: s.Start, End: s.End, Available: s.Available})
	}
	response.Success(c, http.StatusOK, gin.H{"slots": out})
}

func (h *Handler) ClientCalendar(c *gin.Context) {
	providerID, err := strconv.ParseInt(c.Query("providerId"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "providerId is required")
		return
	}

	blocks, existing, err := h.service.ClientCalendar(c.Request.Context(), providerID)
	if err != nil {
		h.writeError(c, err, "Failed to load calendar")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"availability":     blocks,
		"existingBookings": existing,
	})
}

func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid availability data")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Availability block not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You don't own this calendar")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
	}
}
