package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"moneymap/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password, unique email, and
// notifications enabled.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Name:     fmt.Sprintf("Test User %d", nextID()),
		Email:    email,
		Password: string(hash),
		IsActive: true,
		Notifications: models.NotificationSettings{
			Enabled:      true,
			BudgetAlerts: true,
		},
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestExpense creates a confirmed expense transaction. The amount is
// given as a positive number and stored negative.
func CreateTestExpense(t *testing.T, db *gorm.DB, userID uint, category string, amount float64, date time.Time) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		UserID:      userID,
		Type:        models.TransactionTypeExpense,
		Category:    category,
		Amount:      -amount,
		Currency:    "INR",
		Date:        date,
		Description: fmt.Sprintf("Test expense %d", nextID()),
		Source:      models.SourceManual,
		Status:      "confirmed",
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test expense: %v", err)
	}
	return tx
}

// CreateTestIncome creates a confirmed income transaction.
func CreateTestIncome(t *testing.T, db *gorm.DB, userID uint, amount float64, date time.Time) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		UserID:      userID,
		Type:        models.TransactionTypeIncome,
		Category:    "Salary",
		Amount:      amount,
		Currency:    "INR",
		Date:        date,
		Description: fmt.Sprintf("Test income %d", nextID()),
		Source:      models.SourceManual,
		Status:      "confirmed",
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test income: %v", err)
	}
	return tx
}

// CreateTestMonthlyBudget creates an active monthly budget for the given
// month and year with alerts enabled at the default threshold.
func CreateTestMonthlyBudget(t *testing.T, db *gorm.DB, userID uint, amount float64, month, year int) *models.Budget {
	t.Helper()

	budget := &models.Budget{
		UserID:          userID,
		Kind:            models.BudgetKindMonthly,
		Amount:          amount,
		Currency:        "INR",
		Month:           &month,
		Year:            year,
		IsActive:        true,
		NotifyEnabled:   true,
		NotifyThreshold: 80,
	}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test budget: %v", err)
	}
	return budget
}

// CreateTestCategoryBudget creates an active category budget.
func CreateTestCategoryBudget(t *testing.T, db *gorm.DB, userID uint, category string, amount float64, month, year int) *models.Budget {
	t.Helper()

	budget := &models.Budget{
		UserID:          userID,
		Kind:            models.BudgetKindCategory,
		Category:        &category,
		Amount:          amount,
		Currency:        "INR",
		Month:           &month,
		Year:            year,
		IsActive:        true,
		NotifyEnabled:   true,
		NotifyThreshold: 80,
	}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test budget: %v", err)
	}
	return budget
}
