package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "moneymap/internal/errors"
	"moneymap/internal/models"
	"moneymap/internal/services"
)

// UserHandler handles user preference requests.
type UserHandler struct {
	userService services.UserServicer
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService services.UserServicer) *UserHandler {
	return &UserHandler{userService: userService}
}

// NotificationSettingsRequest represents a notification preference update.
type NotificationSettingsRequest struct {
	Enabled       *bool `json:"enabled" binding:"required"`
	BudgetAlerts  *bool `json:"budget_alerts" binding:"required"`
	WeeklyReports *bool `json:"weekly_reports"`
}

// UpdateNotificationSettings replaces the user's notification preferences
// @Summary     Update notification settings
// @Description Update the authenticated user's email notification preferences
// @Tags        users
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body NotificationSettingsRequest true "Notification settings"
// @Success     200 {object} models.NotificationSettings "Updated settings"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /users/notifications [put]
func (h *UserHandler) UpdateNotificationSettings(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req NotificationSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	settings := models.NotificationSettings{
		Enabled:      *req.Enabled,
		BudgetAlerts: *req.BudgetAlerts,
	}
	if req.WeeklyReports != nil {
		settings.WeeklyReports = *req.WeeklyReports
	}

	user, err := h.userService.UpdateNotificationSettings(userID, settings)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"notifications": user.Notifications})
}
