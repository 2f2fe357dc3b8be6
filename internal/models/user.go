package models

// NotificationSettings holds a user's email notification preferences.
type NotificationSettings struct {
	Enabled       bool `gorm:"default:true" json:"enabled"`
	BudgetAlerts  bool `gorm:"default:true" json:"budget_alerts"`
	WeeklyReports bool `gorm:"default:false" json:"weekly_reports"`
}

// User represents the user model in the database
type User struct {
	Base
	Name          string               `gorm:"not null" json:"name"`
	Email         string               `gorm:"uniqueIndex;not null" json:"email"`
	Password      string               `gorm:"not null" json:"-"`
	IsActive      bool                 `gorm:"default:true" json:"is_active"`
	Notifications NotificationSettings `gorm:"embedded;embeddedPrefix:notify_" json:"notifications"`

	Transactions []Transaction `gorm:"foreignKey:UserID" json:"transactions,omitempty"`
	Budgets      []Budget      `gorm:"foreignKey:UserID" json:"budgets,omitempty"`
}
