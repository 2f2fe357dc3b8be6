package services

import (
	"testing"
	"time"

	"moneymap/internal/models"
	"moneymap/internal/pagination"
	"moneymap/internal/testutil"
)

func TestCreateTransaction(t *testing.T) {
	t.Run("expense_sign_normalized", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		user := testutil.CreateTestUser(t, db)

		tx, err := svc.CreateTransaction(user.ID, TransactionInput{
			Type:     models.TransactionTypeExpense,
			Category: "Groceries",
			Amount:   450, // positive input, stored negative
			Date:     time.Now(),
		})
		testutil.AssertNoError(t, err)
		if tx.Amount != -450 {
			t.Errorf("expected amount -450, got %v", tx.Amount)
		}
		if tx.Currency != "INR" {
			t.Errorf("expected default currency INR, got %s", tx.Currency)
		}
		if tx.Source != models.SourceManual {
			t.Errorf("expected manual source, got %s", tx.Source)
		}
	})

	t.Run("income_sign_normalized", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		user := testutil.CreateTestUser(t, db)

		tx, err := svc.CreateTransaction(user.ID, TransactionInput{
			Type:     models.TransactionTypeIncome,
			Category: "Salary",
			Amount:   -90000, // negative input, stored positive
			Date:     time.Now(),
		})
		testutil.AssertNoError(t, err)
		if tx.Amount != 90000 {
			t.Errorf("expected amount 90000, got %v", tx.Amount)
		}
	})

	t.Run("invalid_input", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		user := testutil.CreateTestUser(t, db)

		if _, err := svc.CreateTransaction(user.ID, TransactionInput{Type: models.TransactionTypeExpense, Amount: 10, Date: time.Now()}); err == nil {
			t.Error("expected error for missing category")
		}
		if _, err := svc.CreateTransaction(user.ID, TransactionInput{Type: models.TransactionTypeExpense, Category: "X", Date: time.Now()}); err == nil {
			t.Error("expected error for zero amount")
		}
		if _, err := svc.CreateTransaction(user.ID, TransactionInput{Type: models.TransactionTypeExpense, Category: "X", Amount: 10}); err == nil {
			t.Error("expected error for missing date")
		}
	})
}

func TestCreateFromReceipt(t *testing.T) {
	t.Run("batch", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		user := testutil.CreateTestUser(t, db)

		created, err := svc.CreateFromReceipt(user.ID, []TransactionInput{
			{
				Type:     models.TransactionTypeExpense,
				Category: "Groceries",
				Amount:   320,
				Date:     time.Now(),
				Metadata: &models.TransactionMetadata{ExtractedFromOCR: true, ConfidenceScore: 0.9},
			},
			{
				Type:     models.TransactionTypeExpense,
				Category: "Shopping",
				Amount:   120,
				Date:     time.Now(),
			},
		})
		testutil.AssertNoError(t, err)
		if len(created) != 2 {
			t.Fatalf("expected 2 transactions, got %d", len(created))
		}
		for _, tx := range created {
			if tx.Source != models.SourceReceipt {
				t.Errorf("expected receipt source, got %s", tx.Source)
			}
			if tx.Amount >= 0 {
				t.Errorf("expected negative amount, got %v", tx.Amount)
			}
		}
		if created[0].Metadata == nil || !created[0].Metadata.ExtractedFromOCR {
			t.Error("expected metadata to round-trip")
		}
	})

	t.Run("empty_batch", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		user := testutil.CreateTestUser(t, db)

		created, err := svc.CreateFromReceipt(user.ID, nil)
		testutil.AssertNoError(t, err)
		if len(created) != 0 {
			t.Errorf("expected no transactions, got %d", len(created))
		}
	})
}

func TestGetUserTransactions(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewTransactionService(db)
	user := testutil.CreateTestUser(t, db)
	other := testutil.CreateTestUser(t, db)

	jan := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)
	testutil.CreateTestExpense(t, db, user.ID, "Groceries", 100, jan)
	testutil.CreateTestExpense(t, db, user.ID, "Transport", 50, feb)
	testutil.CreateTestIncome(t, db, user.ID, 90000, feb)
	testutil.CreateTestExpense(t, db, other.ID, "Groceries", 77, feb)

	t.Run("newest_first", func(t *testing.T) {
		page, err := svc.GetUserTransactions(user.ID, pagination.PageRequest{}, TransactionFilter{})
		testutil.AssertNoError(t, err)
		if len(page.Data) != 3 {
			t.Fatalf("expected 3 transactions, got %d", len(page.Data))
		}
		if page.Data[0].Date.Before(page.Data[1].Date) {
			t.Error("expected newest first ordering")
		}
	})

	t.Run("filter_by_type", func(t *testing.T) {
		txType := models.TransactionTypeIncome
		page, err := svc.GetUserTransactions(user.ID, pagination.PageRequest{}, TransactionFilter{Type: &txType})
		testutil.AssertNoError(t, err)
		if len(page.Data) != 1 {
			t.Fatalf("expected 1 income transaction, got %d", len(page.Data))
		}
	})

	t.Run("filter_by_date_range", func(t *testing.T) {
		from := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
		page, err := svc.GetUserTransactions(user.ID, pagination.PageRequest{}, TransactionFilter{FromDate: &from})
		testutil.AssertNoError(t, err)
		if len(page.Data) != 2 {
			t.Fatalf("expected 2 transactions from February, got %d", len(page.Data))
		}
	})

	t.Run("filter_by_category", func(t *testing.T) {
		category := "Groceries"
		page, err := svc.GetUserTransactions(user.ID, pagination.PageRequest{}, TransactionFilter{Category: &category})
		testutil.AssertNoError(t, err)
		if len(page.Data) != 1 {
			t.Fatalf("expected 1 grocery transaction, got %d", len(page.Data))
		}
	})
}

func TestUpdateTransaction(t *testing.T) {
	t.Run("partial_update", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		user := testutil.CreateTestUser(t, db)
		tx := testutil.CreateTestExpense(t, db, user.ID, "Groceries", 100, time.Now())

		updated, err := svc.UpdateTransaction(user.ID, tx.ID, TransactionInput{
			Category: "Dining",
			Amount:   320,
		})
		testutil.AssertNoError(t, err)
		if updated.Category != "Dining" {
			t.Errorf("expected Dining, got %s", updated.Category)
		}
		if updated.Amount != -320 {
			t.Errorf("expected sign-normalized amount -320, got %v", updated.Amount)
		}

		// Untouched fields survive.
		fetched, err := svc.GetTransactionByID(user.ID, tx.ID)
		testutil.AssertNoError(t, err)
		if fetched.Type != models.TransactionTypeExpense {
			t.Errorf("expected type unchanged, got %s", fetched.Type)
		}
		if fetched.Date.Unix() != tx.Date.Unix() {
			t.Errorf("expected date unchanged, got %v", fetched.Date)
		}
	})

	t.Run("type_change_renormalizes_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		user := testutil.CreateTestUser(t, db)
		tx := testutil.CreateTestExpense(t, db, user.ID, "Misc", 100, time.Now())

		updated, err := svc.UpdateTransaction(user.ID, tx.ID, TransactionInput{
			Type:   models.TransactionTypeIncome,
			Amount: 500,
		})
		testutil.AssertNoError(t, err)
		if updated.Amount != 500 {
			t.Errorf("expected positive income amount 500, got %v", updated.Amount)
		}
	})

	t.Run("other_users_transaction", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		user := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		tx := testutil.CreateTestExpense(t, db, user.ID, "Groceries", 100, time.Now())

		_, err := svc.UpdateTransaction(other.ID, tx.ID, TransactionInput{Amount: 50})
		testutil.AssertAppError(t, err, "TRANSACTION_NOT_FOUND")
	})
}

func TestDeleteTransaction(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewTransactionService(db)
	user := testutil.CreateTestUser(t, db)
	other := testutil.CreateTestUser(t, db)
	tx := testutil.CreateTestExpense(t, db, user.ID, "Groceries", 100, time.Now())

	// Another user cannot delete it.
	testutil.AssertAppError(t, svc.DeleteTransaction(other.ID, tx.ID), "TRANSACTION_NOT_FOUND")

	testutil.AssertNoError(t, svc.DeleteTransaction(user.ID, tx.ID))
	_, err := svc.GetTransactionByID(user.ID, tx.ID)
	testutil.AssertAppError(t, err, "TRANSACTION_NOT_FOUND")
}

func TestDistinctCategories(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewTransactionService(db)
	user := testutil.CreateTestUser(t, db)

	now := time.Now()
	testutil.CreateTestExpense(t, db, user.ID, "Transport", 50, now)
	testutil.CreateTestExpense(t, db, user.ID, "Groceries", 100, now)
	testutil.CreateTestExpense(t, db, user.ID, "Groceries", 200, now)

	categories, err := svc.DistinctCategories(user.ID)
	testutil.AssertNoError(t, err)
	if len(categories) != 2 {
		t.Fatalf("expected 2 categories, got %d: %v", len(categories), categories)
	}
	if categories[0] != "Groceries" || categories[1] != "Transport" {
		t.Errorf("expected alphabetical order, got %v", categories)
	}
}
