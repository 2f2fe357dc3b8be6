package notifications

import (
	"time"

	"moneymap/internal/logger"
	"moneymap/internal/models"
	"moneymap/internal/services"
)

// Checker evaluates a user's budgets and sends alerts through the Notifier,
// subject to the cooldown gate.
type Checker struct {
	budgets  BudgetReader
	notifier Notifier
	gate     CooldownGate
	now      func() time.Time
}

// NewChecker creates a Checker.
func NewChecker(budgets BudgetReader, notifier Notifier, gate CooldownGate) *Checker {
	return &Checker{
		budgets:  budgets,
		notifier: notifier,
		gate:     gate,
		now:      time.Now,
	}
}

// CheckUser evaluates all of the user's active budgets for the current month
// and sends any warranted alerts. Preferences that disable budget alerts
// skip the user entirely. A failure on one budget is logged and does not
// stop evaluation of the rest.
func (c *Checker) CheckUser(user *models.User) error {
	if !user.Notifications.Enabled || !user.Notifications.BudgetAlerts {
		return nil
	}

	now := c.now()
	month, year := int(now.Month()), now.Year()

	budgets, err := c.budgets.ActiveBudgetsForMonth(user.ID, month, year)
	if err != nil {
		return err
	}

	log := logger.Get()
	for i := range budgets {
		budget := &budgets[i]
		if !budget.NotifyEnabled {
			continue
		}

		spending, err := c.budgets.ComputeSpending(user.ID, budget, month, year)
		if err != nil {
			log.Errorw("failed to compute spending for budget",
				"user_id", user.ID,
				"budget_id", budget.ID,
				"error", err,
			)
			continue
		}

		status := services.DeriveStatus(budget.Amount, spending, budget.NotifyThreshold)
		kind := ClassifyAlert(status)
		if kind == AlertNone {
			continue
		}

		if !c.gate.ShouldSend(budget.ID, kind) {
			continue
		}

		var sendErr error
		switch kind {
		case AlertExceeded:
			sendErr = c.notifier.SendExceededAlert(user, budget, status)
		case AlertThreshold:
			sendErr = c.notifier.SendThresholdAlert(user, budget, status)
		}
		if sendErr != nil {
			log.Errorw("failed to send budget alert",
				"user_id", user.ID,
				"budget_id", budget.ID,
				"kind", kind,
				"error", sendErr,
			)
			continue
		}

		log.Infow("budget alert sent",
			"user_id", user.ID,
			"budget_id", budget.ID,
			"category", budget.CategoryName(),
			"kind", kind,
			"percentage_used", status.PercentageUsed,
		)
	}
	return nil
}
