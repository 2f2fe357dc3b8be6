package services

// Status tiers reported alongside budget usage.
const (
	TierGood    = "good"
	TierWarning = "warning"
	TierOver    = "over"
)

// DeriveStatus computes spending health for one budget month. Spending is
// the positive total spent; amount is the budget cap.
//
// PercentageUsed is capped at 100 for display, but IsOverBudget reflects the
// uncapped comparison so a budget at exactly 100% does not read as exceeded.
func DeriveStatus(amount, spending, notifyThreshold float64) BudgetStatus {
	remaining := amount - spending
	if remaining < 0 {
		remaining = 0
	}

	var pct float64
	if amount > 0 {
		pct = spending / amount * 100
		if pct > 100 {
			pct = 100
		}
	}

	isOver := spending > amount

	tier := TierGood
	switch {
	case isOver:
		tier = TierOver
	case pct >= notifyThreshold:
		tier = TierWarning
	}

	return BudgetStatus{
		Spending:       spending,
		Remaining:      remaining,
		PercentageUsed: pct,
		IsOverBudget:   isOver,
		Tier:           tier,
	}
}
