package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "moneymap/internal/errors"
	"moneymap/internal/logger"
	"moneymap/internal/models"
	"moneymap/internal/pagination"
)

// budgetService handles budget-related business logic.
type budgetService struct {
	db *gorm.DB
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB) BudgetServicer {
	return &budgetService{db: db}
}

// monthWindow returns the inclusive time range covering the given month:
// the first day at midnight through the last day at 23:59:59.
func monthWindow(month, year int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Second)
	return start, end
}

// CreateBudget creates a new budget. At most one active budget may exist per
// user for a given kind, category, and month.
func (s *budgetService) CreateBudget(
	userID uint,
	kind models.BudgetKind,
	category *string,
	amount float64,
	currency string,
	month *int,
	year int,
	notifyEnabled bool,
	notifyThreshold float64,
) (*models.Budget, error) {
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be positive")
	}
	if kind == models.BudgetKindCategory && (category == nil || *category == "") {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category budgets require a category")
	}
	if kind == models.BudgetKindMonthly && month == nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "monthly budgets require a month")
	}
	if month != nil && (*month < 1 || *month > 12) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "month must be between 1 and 12")
	}
	if notifyThreshold <= 0 {
		notifyThreshold = 80
	}
	if currency == "" {
		currency = "INR"
	}

	dup := s.db.Model(&models.Budget{}).
		Where("user_id = ? AND kind = ? AND year = ? AND is_active = ?", userID, kind, year, true)
	if kind == models.BudgetKindCategory {
		dup = dup.Where("category = ?", *category)
	} else {
		dup = dup.Where("month = ?", *month)
	}
	var count int64
	if err := dup.Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrBudgetExists
	}

	budget := &models.Budget{
		UserID:          userID,
		Kind:            kind,
		Category:        category,
		Amount:          amount,
		Currency:        currency,
		Month:           month,
		Year:            year,
		IsActive:        true,
		NotifyEnabled:   notifyEnabled,
		NotifyThreshold: notifyThreshold,
	}
	if err := s.db.Create(budget).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return budget, nil
}

// GetUserBudgets returns a paginated list of budgets for the user.
func (s *budgetService) GetUserBudgets(userID uint, page pagination.PageRequest, isActive *bool) (*pagination.PageResponse[models.Budget], error) {
	page.Defaults()

	base := s.db.Model(&models.Budget{}).Where("user_id = ?", userID)
	if isActive != nil {
		base = base.Where("is_active = ?", *isActive)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var budgets []models.Budget
	if err := base.Order("year DESC, month DESC, id DESC").Scopes(pagination.Paginate(page)).Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(budgets, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetBudgetByID returns a budget by ID if it belongs to the user.
func (s *budgetService) GetBudgetByID(userID, budgetID uint) (*models.Budget, error) {
	var budget models.Budget
	if err := s.db.Where("id = ? AND user_id = ?", budgetID, userID).First(&budget).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &budget, nil
}

// UpdateBudget updates an existing budget's amount or alert settings.
func (s *budgetService) UpdateBudget(userID, budgetID uint, amount *float64, notifyEnabled *bool, notifyThreshold *float64) (*models.Budget, error) {
	budget, err := s.GetBudgetByID(userID, budgetID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if amount != nil {
		if *amount <= 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be positive")
		}
		updates["amount"] = *amount
	}
	if notifyEnabled != nil {
		updates["notify_enabled"] = *notifyEnabled
	}
	if notifyThreshold != nil {
		if *notifyThreshold <= 0 || *notifyThreshold > 100 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "notify threshold must be between 1 and 100")
		}
		updates["notify_threshold"] = *notifyThreshold
	}

	if len(updates) > 0 {
		if err := s.db.Model(budget).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return budget, nil
}

// DeactivateBudget flags a budget inactive. Budgets are kept for history
// rather than deleted.
func (s *budgetService) DeactivateBudget(userID, budgetID uint) error {
	budget, err := s.GetBudgetByID(userID, budgetID)
	if err != nil {
		return err
	}
	if err := s.db.Model(budget).Update("is_active", false).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// ActiveBudgetsForMonth returns the user's active budgets that apply to the
// given month: the monthly budget for that month plus all category budgets
// for the year.
func (s *budgetService) ActiveBudgetsForMonth(userID uint, month, year int) ([]models.Budget, error) {
	var budgets []models.Budget
	err := s.db.
		Where("user_id = ? AND is_active = ? AND year = ?", userID, true, year).
		Where("month IS NULL OR month = ?", month).
		Order("kind ASC, id ASC").
		Find(&budgets).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return budgets, nil
}

// ComputeSpending totals the user's expenses inside the month window as a
// positive number. Category budgets only count expenses in their category.
func (s *budgetService) ComputeSpending(userID uint, budget *models.Budget, month, year int) (float64, error) {
	start, end := monthWindow(month, year)

	q := s.db.Model(&models.Transaction{}).
		Where("user_id = ? AND amount < 0", userID).
		Where("date >= ? AND date <= ?", start, end)
	if budget.Kind == models.BudgetKindCategory && budget.Category != nil {
		q = q.Where("category = ?", *budget.Category)
	}

	var spending float64
	if err := q.Select("COALESCE(-SUM(amount), 0)").Scan(&spending).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return spending, nil
}

// ListWithStatus returns the user's budgets for the month with derived
// spending status.
func (s *budgetService) ListWithStatus(userID uint, month, year int) ([]BudgetWithStatus, error) {
	budgets, err := s.ActiveBudgetsForMonth(userID, month, year)
	if err != nil {
		return nil, err
	}

	result := make([]BudgetWithStatus, 0, len(budgets))
	for i := range budgets {
		// A spending read failure must not take down the whole budget
		// view; treat it as zero spend.
		spending, err := s.ComputeSpending(userID, &budgets[i], month, year)
		if err != nil {
			logger.Get().Errorw("failed to compute spending, treating as 0",
				"user_id", userID,
				"budget_id", budgets[i].ID,
				"error", err,
			)
			spending = 0
		}
		result = append(result, BudgetWithStatus{
			Budget: budgets[i],
			Status: DeriveStatus(budgets[i].Amount, spending, budgets[i].NotifyThreshold),
		})
	}
	return result, nil
}

// Summary aggregates budget health across the month.
func (s *budgetService) Summary(userID uint, month, year int) (*BudgetSummary, error) {
	statuses, err := s.ListWithStatus(userID, month, year)
	if err != nil {
		return nil, err
	}

	summary := &BudgetSummary{Month: month, Year: year}
	for _, bs := range statuses {
		summary.TotalBudgeted += bs.Budget.Amount
		summary.TotalSpent += bs.Status.Spending
		switch bs.Status.Tier {
		case TierOver:
			summary.OverCount++
		case TierWarning:
			summary.WarningCount++
		}
	}
	return summary, nil
}
