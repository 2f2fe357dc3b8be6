package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "moneymap/internal/errors"
	"moneymap/internal/models"
	"moneymap/internal/pagination"
)

// transactionService handles transaction-related business logic.
type transactionService struct {
	db *gorm.DB
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB) TransactionServicer {
	return &transactionService{db: db}
}

// normalizeAmount enforces the sign convention: expenses are stored
// negative, income positive, regardless of the sign supplied.
func normalizeAmount(txType models.TransactionType, amount float64) float64 {
	abs := amount
	if abs < 0 {
		abs = -abs
	}
	if txType == models.TransactionTypeExpense {
		return -abs
	}
	return abs
}

func buildTransaction(userID uint, input TransactionInput) *models.Transaction {
	currency := input.Currency
	if currency == "" {
		currency = "INR"
	}
	source := input.Source
	if source == "" {
		source = models.SourceManual
	}
	return &models.Transaction{
		UserID:        userID,
		Type:          input.Type,
		Category:      input.Category,
		Subcategory:   input.Subcategory,
		Amount:        normalizeAmount(input.Type, input.Amount),
		Currency:      currency,
		Date:          input.Date,
		Description:   input.Description,
		PaymentMethod: input.PaymentMethod,
		Tags:          input.Tags,
		Source:        source,
		Status:        "confirmed",
		Metadata:      input.Metadata,
	}
}

// CreateTransaction creates a single transaction for the user.
func (s *transactionService) CreateTransaction(userID uint, input TransactionInput) (*models.Transaction, error) {
	if input.Category == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category is required")
	}
	if input.Amount == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be non-zero")
	}
	if input.Date.IsZero() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "date is required")
	}

	tx := buildTransaction(userID, input)
	if err := s.db.Create(tx).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return tx, nil
}

// CreateFromReceipt persists a batch of extracted transactions atomically.
// Either all rows are written or none are.
func (s *transactionService) CreateFromReceipt(userID uint, inputs []TransactionInput) ([]models.Transaction, error) {
	if len(inputs) == 0 {
		return nil, nil
	}

	created := make([]models.Transaction, 0, len(inputs))
	err := s.db.Transaction(func(dbtx *gorm.DB) error {
		for _, input := range inputs {
			tx := buildTransaction(userID, input)
			tx.Source = models.SourceReceipt
			if err := dbtx.Create(tx).Error; err != nil {
				return err
			}
			created = append(created, *tx)
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return created, nil
}

// GetUserTransactions returns a paginated list of transactions with optional filters,
// newest first.
func (s *transactionService) GetUserTransactions(userID uint, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	page.Defaults()

	base := s.db.Model(&models.Transaction{}).Where("user_id = ?", userID)
	if filter.FromDate != nil {
		base = base.Where("date >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		base = base.Where("date <= ?", *filter.ToDate)
	}
	if filter.Type != nil {
		base = base.Where("type = ?", *filter.Type)
	}
	if filter.Category != nil {
		base = base.Where("category = ?", *filter.Category)
	}
	if filter.Source != nil {
		base = base.Where("source = ?", *filter.Source)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	if err := base.Order("date DESC, id DESC").Scopes(pagination.Paginate(page)).Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(transactions, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetTransactionByID returns a transaction by ID if it belongs to the user.
func (s *transactionService) GetTransactionByID(userID, transactionID uint) (*models.Transaction, error) {
	var tx models.Transaction
	if err := s.db.Where("id = ? AND user_id = ?", transactionID, userID).First(&tx).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &tx, nil
}

// UpdateTransaction updates an existing transaction's fields.
func (s *transactionService) UpdateTransaction(userID, transactionID uint, input TransactionInput) (*models.Transaction, error) {
	tx, err := s.GetTransactionByID(userID, transactionID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if input.Type != "" {
		updates["type"] = input.Type
	}
	if input.Category != "" {
		updates["category"] = input.Category
	}
	if input.Subcategory != "" {
		updates["subcategory"] = input.Subcategory
	}
	if input.Amount != 0 {
		txType := tx.Type
		if input.Type != "" {
			txType = input.Type
		}
		updates["amount"] = normalizeAmount(txType, input.Amount)
	}
	if !input.Date.IsZero() {
		updates["date"] = input.Date
	}
	if input.Description != "" {
		updates["description"] = input.Description
	}
	if input.PaymentMethod != "" {
		updates["payment_method"] = input.PaymentMethod
	}

	if len(updates) > 0 {
		if err := s.db.Model(tx).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return tx, nil
}

// DeleteTransaction soft-deletes a transaction.
func (s *transactionService) DeleteTransaction(userID, transactionID uint) error {
	result := s.db.Where("id = ? AND user_id = ?", transactionID, userID).Delete(&models.Transaction{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrTransactionNotFound
	}
	return nil
}

// DistinctCategories returns the distinct category names the user has
// recorded transactions under, alphabetically.
func (s *transactionService) DistinctCategories(userID uint) ([]string, error) {
	var categories []string
	err := s.db.Model(&models.Transaction{}).
		Where("user_id = ? AND category <> ''", userID).
		Distinct("category").
		Order("category ASC").
		Pluck("category", &categories).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return categories, nil
}
