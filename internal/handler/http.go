package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"meal-server/internal/models"
	"meal-server/internal/notifier"
	"meal-server/internal/service"
)

// APIError is the standardized error response body.
type APIError struct {
	Message string `json:"message"`
}

// Handler wires the meal-server HTTP surface.
type Handler struct {
	drafts    service.DraftService
	meals     service.MealService
	notifier  *notifier.Notifier
	jwtSecret []byte
	logger    *zap.Logger
}

// NewHandler creates a Handler.
func NewHandler(drafts service.DraftService, meals service.MealService, n *notifier.Notifier, jwtSecret string, logger *zap.Logger) *Handler {
	return &Handler{
		drafts:    drafts,
		meals:     meals,
		notifier:  n,
		jwtSecret: []byte(jwtSecret),
		logger:    logger.Named("Handler"),
	}
}

// RegisterRoutes mounts all authenticated API routes on the router.
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api/v1")
	api.Use(h.authMiddleware())

	drafts := api.Group("/meal-drafts")
	{
		drafts.POST("", h.createDraft)
		drafts.GET("", h.listDrafts)
		drafts.GET("/:id", h.getDraft)
		drafts.DELETE("/:id", h.deleteDraft)
		drafts.POST("/:id/components", h.addComponent)
		drafts.DELETE("/:id/components/:componentId", h.removeComponent)
	}

	meals := api.Group("/meals")
	{
		meals.POST("", h.saveMealFromDraft)
		meals.GET("", h.listMeals)
		meals.GET("/:id", h.getMeal)
	}

	api.GET("/ws", h.serveWS)
}

// authMiddleware verifies the already-issued bearer token and stores the
// owner id in the request context. Websocket clients cannot set headers, so
// a `token` query parameter is accepted as a fallback.
func (h *Handler) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""
		if auth := c.GetHeader("Authorization"); strings.HasPrefix(auth, "Bearer ") {
			tokenString = strings.TrimPrefix(auth, "Bearer ")
		} else {
			tokenString = c.Query("token")
		}
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, APIError{Message: "Missing bearer token"})
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return h.jwtSecret, nil
		})
		if err != nil || !token.Valid {
			h.logger.Warn("Invalid bearer token", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, APIError{Message: "Invalid token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, APIError{Message: "Invalid token claims"})
			return
		}
		userID, ok := claims["sub"].(string)
		if !ok || userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, APIError{Message: "Invalid token claims"})
			return
		}

		c.Set("userID", userID)
		c.Next()
	}
}

func getUserIDFromContext(c *gin.Context) (string, error) {
	userID := c.GetString("userID")
	if userID == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, APIError{Message: "Unauthorized"})
		return "", models.ErrUnauthorized
	}
	return userID, nil
}

// handleServiceError maps service errors onto HTTP status codes.
func handleServiceError(c *gin.Context, err error, logger *zap.Logger) {
	var statusCode int
	var apiErr APIError

	switch {
	case errors.Is(err, models.ErrUnauthorized):
		statusCode = http.StatusUnauthorized
		apiErr = APIError{Message: "Unauthorized"}
	case errors.Is(err, models.ErrForbidden):
		statusCode = http.StatusForbidden
		apiErr = APIError{Message: "Not authorized to access this resource"}
	case errors.Is(err, models.ErrDraftNotFound),
		errors.Is(err, models.ErrMealNotFound),
		errors.Is(err, models.ErrComponentNotFound),
		errors.Is(err, models.ErrNotFound):
		statusCode = http.StatusNotFound
		apiErr = APIError{Message: err.Error()}
	case errors.Is(err, models.ErrDraftNotEditable), errors.Is(err, models.ErrDraftNotComplete):
		statusCode = http.StatusConflict
		apiErr = APIError{Message: err.Error()}
	case errors.Is(err, models.ErrInvalidCursor):
		statusCode = http.StatusUnprocessableEntity
		apiErr = APIError{Message: err.Error()}
	case errors.Is(err, models.ErrInvalidInput), errors.Is(err, models.ErrBadRequest):
		statusCode = http.StatusBadRequest
		apiErr = APIError{Message: err.Error()}
	case errors.Is(err, models.ErrUpstreamUnavailable):
		statusCode = http.StatusServiceUnavailable
		apiErr = APIError{Message: "A database error occurred, please retry"}
	default:
		logger.Error("Unhandled service error", zap.Error(err))
		statusCode = http.StatusInternalServerError
		apiErr = APIError{Message: "Internal server error"}
	}

	c.AbortWithStatusJSON(statusCode, apiErr)
}
