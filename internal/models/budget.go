package models

// BudgetKind represents the kind of a budget: an overall monthly cap or a
// per-category cap.
type BudgetKind string

const (
	BudgetKindMonthly  BudgetKind = "monthly"
	BudgetKindCategory BudgetKind = "category"
)

// Budget represents a spending cap for a month or a category.
// Category is set iff Kind is "category"; Month is set iff Kind is "monthly".
// Budgets are never hard-deleted, only flagged inactive.
type Budget struct {
	Base
	UserID          uint       `gorm:"not null;index" json:"user_id"`
	Kind            BudgetKind `gorm:"not null" json:"kind"`
	Category        *string    `json:"category,omitempty"`
	Amount          float64    `gorm:"not null" json:"amount"`
	Currency        string     `gorm:"size:3;default:INR" json:"currency"`
	Month           *int       `json:"month,omitempty"`
	Year            int        `gorm:"not null" json:"year"`
	IsActive        bool       `gorm:"default:true" json:"is_active"`
	NotifyEnabled   bool       `gorm:"default:true" json:"notify_enabled"`
	NotifyThreshold float64    `gorm:"default:80" json:"notify_threshold"`
}

// CategoryName returns the budget's category, or "Monthly" for monthly
// budgets. Used for alert subjects and log lines.
func (b *Budget) CategoryName() string {
	if b.Kind == BudgetKindCategory && b.Category != nil {
		return *b.Category
	}
	return "Monthly"
}
