package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"meal-server/internal/models"
)

type createDraftRequest struct {
	Description string `json:"description" binding:"required"`
}

type addComponentRequest struct {
	Description string `json:"description" binding:"required"`
}

// createDraft accepts the free-text meal description and returns the new
// draft id immediately; generation happens in the background.
func (h *Handler) createDraft(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return
	}

	var req createDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid request body for createDraft", zap.String("userID", userID), zap.Error(err))
		handleServiceError(c, fmt.Errorf("%w: description is required", models.ErrBadRequest), h.logger)
		return
	}

	draft, err := h.drafts.CreateDraft(c.Request.Context(), userID, req.Description)
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"draftId": draft.ID.String()})
}

func (h *Handler) getDraft(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return
	}

	id, err := parseDraftID(c)
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}

	draft, err := h.drafts.GetDraft(c.Request.Context(), id, userID)
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}
	c.JSON(http.StatusOK, draft)
}

func (h *Handler) listDrafts(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return
	}

	limit := 20
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			handleServiceError(c, fmt.Errorf("%w: invalid limit %q", models.ErrBadRequest, raw), h.logger)
			return
		}
		limit = parsed
	}

	page, err := h.drafts.ListDrafts(c.Request.Context(), userID, limit, c.Query("next"))
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *Handler) deleteDraft(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return
	}

	id, err := parseDraftID(c)
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}

	if err := h.drafts.DeleteDraft(c.Request.Context(), id, userID); err != nil {
		handleServiceError(c, err, h.logger)
		return
	}
	c.Status(http.StatusNoContent)
}

// addComponent flips the draft to pending_edit and schedules the append.
func (h *Handler) addComponent(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return
	}

	id, err := parseDraftID(c)
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}

	var req addComponentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid request body for addComponent", zap.String("userID", userID), zap.Error(err))
		handleServiceError(c, fmt.Errorf("%w: description is required", models.ErrBadRequest), h.logger)
		return
	}

	draft, err := h.drafts.AddComponent(c.Request.Context(), id, userID, req.Description)
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}
	c.JSON(http.StatusAccepted, draft)
}

// removeComponent completes within the request, no pending_edit transition.
func (h *Handler) removeComponent(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return
	}

	id, err := parseDraftID(c)
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}

	draft, err := h.drafts.RemoveComponent(c.Request.Context(), id, userID, c.Param("componentId"))
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}
	c.JSON(http.StatusOK, draft)
}

func parseDraftID(c *gin.Context) (uuid.UUID, error) {
	idStr := c.Param("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid draft id %q", models.ErrBadRequest, idStr)
	}
	return id, nil
}
