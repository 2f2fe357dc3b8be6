// Package notifications implements budget alert evaluation: deciding when a
// user's spending warrants an email, suppressing repeats with a cooldown, and
// sweeping all opted-in users on a schedule.
package notifications

import (
	"moneymap/internal/models"
	"moneymap/internal/services"
)

// AlertKind identifies which budget alert a status warrants.
type AlertKind string

const (
	AlertNone      AlertKind = ""
	AlertThreshold AlertKind = "threshold"
	AlertExceeded  AlertKind = "exceeded"
)

// ClassifyAlert maps a budget status to the alert it warrants. Exceeded
// takes precedence over threshold.
func ClassifyAlert(status services.BudgetStatus) AlertKind {
	switch status.Tier {
	case services.TierOver:
		return AlertExceeded
	case services.TierWarning:
		return AlertThreshold
	default:
		return AlertNone
	}
}

// Notifier delivers budget alerts to a user. Implemented by the email
// package; faked in tests.
type Notifier interface {
	SendThresholdAlert(user *models.User, budget *models.Budget, status services.BudgetStatus) error
	SendExceededAlert(user *models.User, budget *models.Budget, status services.BudgetStatus) error
}

// UserReader lists the users eligible for budget alerts. Satisfied by
// services.UserServicer.
type UserReader interface {
	ListUsersWithBudgetAlerts() ([]models.User, error)
}

// BudgetReader reads budgets and spending for alert evaluation. Satisfied by
// services.BudgetServicer.
type BudgetReader interface {
	ActiveBudgetsForMonth(userID uint, month, year int) ([]models.Budget, error)
	ComputeSpending(userID uint, budget *models.Budget, month, year int) (float64, error)
}
