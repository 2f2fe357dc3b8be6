package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "moneymap/internal/errors"
	"moneymap/internal/models"
)

func setupUserRouter(handler *UserHandler) *gin.Engine {
	r := gin.New()
	r.PUT("/users/notifications", injectUserID(1), handler.UpdateNotificationSettings)
	return r
}

func TestUserHandler_UpdateNotificationSettings(t *testing.T) {
	t.Run("returns 200 with updated settings", func(t *testing.T) {
		var captured models.NotificationSettings
		userSvc := &mockUserService{
			updateNotificationSettingsFn: func(userID uint, settings models.NotificationSettings) (*models.User, error) {
				captured = settings
				return &models.User{
					Base:          models.Base{ID: userID},
					Notifications: settings,
				}, nil
			},
		}
		handler := NewUserHandler(userSvc)
		r := setupUserRouter(handler)

		rec := doRequest(r, "PUT", "/users/notifications",
			`{"enabled":true,"budget_alerts":false,"weekly_reports":true}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if !captured.Enabled || captured.BudgetAlerts || !captured.WeeklyReports {
			t.Errorf("settings not passed through: %+v", captured)
		}
		result := parseJSON(t, rec)
		notifications := result["notifications"].(map[string]interface{})
		if notifications["budget_alerts"] != false {
			t.Errorf("expected budget_alerts=false, got %v", notifications["budget_alerts"])
		}
	})

	t.Run("returns 400 on missing enabled flag", func(t *testing.T) {
		handler := NewUserHandler(&mockUserService{})
		r := setupUserRouter(handler)

		rec := doRequest(r, "PUT", "/users/notifications", `{"budget_alerts":true}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("accepts explicit false values", func(t *testing.T) {
		var captured models.NotificationSettings
		userSvc := &mockUserService{
			updateNotificationSettingsFn: func(_ uint, settings models.NotificationSettings) (*models.User, error) {
				captured = settings
				return &models.User{Notifications: settings}, nil
			},
		}
		handler := NewUserHandler(userSvc)
		r := setupUserRouter(handler)

		rec := doRequest(r, "PUT", "/users/notifications",
			`{"enabled":false,"budget_alerts":false}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if captured.Enabled || captured.BudgetAlerts {
			t.Errorf("expected both flags false, got %+v", captured)
		}
	})

	t.Run("returns 404 when user not found", func(t *testing.T) {
		userSvc := &mockUserService{
			updateNotificationSettingsFn: func(_ uint, _ models.NotificationSettings) (*models.User, error) {
				return nil, apperrors.ErrUserNotFound
			},
		}
		handler := NewUserHandler(userSvc)
		r := setupUserRouter(handler)

		rec := doRequest(r, "PUT", "/users/notifications",
			`{"enabled":true,"budget_alerts":true}`)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "USER_NOT_FOUND")
	})

	t.Run("returns 401 without auth", func(t *testing.T) {
		handler := NewUserHandler(&mockUserService{})
		r := gin.New()
		r.PUT("/users/notifications", handler.UpdateNotificationSettings)

		rec := doRequest(r, "PUT", "/users/notifications",
			`{"enabled":true,"budget_alerts":true}`)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})
}
