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

type saveMealRequest struct {
	DraftID string `json:"draftId" binding:"required"`
}

// saveMealFromDraft promotes a completed draft into a permanent meal record.
func (h *Handler) saveMealFromDraft(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return
	}

	var req saveMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid request body for saveMealFromDraft", zap.String("userID", userID), zap.Error(err))
		handleServiceError(c, fmt.Errorf("%w: draftId is required", models.ErrBadRequest), h.logger)
		return
	}
	draftID, err := uuid.Parse(req.DraftID)
	if err != nil {
		handleServiceError(c, fmt.Errorf("%w: invalid draft id %q", models.ErrBadRequest, req.DraftID), h.logger)
		return
	}

	meal, err := h.meals.SaveFromDraft(c.Request.Context(), userID, draftID)
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}
	c.JSON(http.StatusCreated, meal)
}

// listMeals serves the paginated meal history, via the list-query cache when
// possible. Only the "latest" sort order exists.
func (h *Handler) listMeals(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return
	}

	if sort := c.Query("sort"); sort != "latest" {
		handleServiceError(c, fmt.Errorf("%w: unsupported query, use ?sort=latest", models.ErrBadRequest), h.logger)
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			handleServiceError(c, fmt.Errorf("%w: invalid limit %q", models.ErrBadRequest, raw), h.logger)
			return
		}
		limit = parsed
	}

	page, cached, err := h.meals.ListMeals(c.Request.Context(), userID, limit, c.Query("next"))
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}

	if cached {
		c.Header("X-Cache", "hit")
	} else {
		c.Header("X-Cache", "miss")
	}
	c.JSON(http.StatusOK, page)
}

func (h *Handler) getMeal(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return
	}

	meal, err := h.meals.GetMeal(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}
	c.JSON(http.StatusOK, meal)
}
