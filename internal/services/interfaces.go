package services

import (
	"time"

	"moneymap/internal/models"
	"moneymap/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(name, email, password string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(email, password string) (*models.User, error)
	UpdateNotificationSettings(userID uint, settings models.NotificationSettings) (*models.User, error)
	ListUsersWithBudgetAlerts() ([]models.User, error)
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	FromDate *time.Time
	ToDate   *time.Time
	Type     *models.TransactionType
	Category *string
	Source   *models.TransactionSource
}

// TransactionInput carries the fields needed to create a transaction.
type TransactionInput struct {
	Type          models.TransactionType
	Category      string
	Subcategory   string
	Amount        float64
	Currency      string
	Date          time.Time
	Description   string
	PaymentMethod string
	Tags          []string
	Source        models.TransactionSource
	Metadata      *models.TransactionMetadata
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	CreateTransaction(userID uint, input TransactionInput) (*models.Transaction, error)
	CreateFromReceipt(userID uint, inputs []TransactionInput) ([]models.Transaction, error)
	GetUserTransactions(userID uint, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	GetTransactionByID(userID, transactionID uint) (*models.Transaction, error)
	UpdateTransaction(userID, transactionID uint, input TransactionInput) (*models.Transaction, error)
	DeleteTransaction(userID, transactionID uint) error
	DistinctCategories(userID uint) ([]string, error)
}

// BudgetStatus contains derived spending data for a budget's month.
type BudgetStatus struct {
	Spending       float64 `json:"spending"`
	Remaining      float64 `json:"remaining"`
	PercentageUsed float64 `json:"percentage_used"`
	IsOverBudget   bool    `json:"is_over_budget"`
	Tier           string  `json:"tier"`
}

// BudgetWithStatus pairs a budget with its derived status.
type BudgetWithStatus struct {
	Budget models.Budget `json:"budget"`
	Status BudgetStatus  `json:"status"`
}

// BudgetSummary aggregates budget health for one month.
type BudgetSummary struct {
	Month         int     `json:"month"`
	Year          int     `json:"year"`
	TotalBudgeted float64 `json:"total_budgeted"`
	TotalSpent    float64 `json:"total_spent"`
	OverCount     int     `json:"over_count"`
	WarningCount  int     `json:"warning_count"`
}

// BudgetServicer defines the contract for budget-related business logic.
type BudgetServicer interface {
	CreateBudget(userID uint, kind models.BudgetKind, category *string, amount float64, currency string, month *int, year int, notifyEnabled bool, notifyThreshold float64) (*models.Budget, error)
	GetUserBudgets(userID uint, page pagination.PageRequest, isActive *bool) (*pagination.PageResponse[models.Budget], error)
	GetBudgetByID(userID, budgetID uint) (*models.Budget, error)
	UpdateBudget(userID, budgetID uint, amount *float64, notifyEnabled *bool, notifyThreshold *float64) (*models.Budget, error)
	DeactivateBudget(userID, budgetID uint) error
	ActiveBudgetsForMonth(userID uint, month, year int) ([]models.Budget, error)
	ComputeSpending(userID uint, budget *models.Budget, month, year int) (float64, error)
	ListWithStatus(userID uint, month, year int) ([]BudgetWithStatus, error)
	Summary(userID uint, month, year int) (*BudgetSummary, error)
}
