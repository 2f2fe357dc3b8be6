package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "moneymap/internal/errors"
	"moneymap/internal/models"
	"moneymap/internal/pagination"
	"moneymap/internal/services"
)

// BudgetHandler handles budget-related requests
type BudgetHandler struct {
	budgetService      services.BudgetServicer
	transactionService services.TransactionServicer
}

// NewBudgetHandler creates a new BudgetHandler
func NewBudgetHandler(budgetService services.BudgetServicer, transactionService services.TransactionServicer) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService, transactionService: transactionService}
}

// CreateBudgetRequest represents the create budget payload
type CreateBudgetRequest struct {
	Kind            string  `json:"kind" binding:"required,budget_kind"`
	Category        *string `json:"category" binding:"omitempty,max=100"`
	Amount          float64 `json:"amount" binding:"required,gt=0"`
	Currency        string  `json:"currency" binding:"omitempty,iso4217"`
	Month           *int    `json:"month" binding:"omitempty,min=1,max=12"`
	Year            int     `json:"year" binding:"required,min=2000,max=2100"`
	NotifyEnabled   *bool   `json:"notify_enabled"`
	NotifyThreshold float64 `json:"notify_threshold" binding:"omitempty,gt=0,lte=100"`
}

// UpdateBudgetRequest represents the update budget payload
type UpdateBudgetRequest struct {
	Amount          *float64 `json:"amount" binding:"omitempty,gt=0"`
	NotifyEnabled   *bool    `json:"notify_enabled"`
	NotifyThreshold *float64 `json:"notify_threshold" binding:"omitempty,gt=0,lte=100"`
}

// monthParams resolves optional month/year query parameters, defaulting to
// the current month.
func monthParams(c *gin.Context) (int, int, error) {
	now := time.Now()
	month, year := int(now.Month()), now.Year()

	var q struct {
		Month *int `form:"month" binding:"omitempty,min=1,max=12"`
		Year  *int `form:"year" binding:"omitempty,min=2000,max=2100"`
	}
	if err := c.ShouldBindQuery(&q); err != nil {
		return 0, 0, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
	}
	if q.Month != nil {
		month = *q.Month
	}
	if q.Year != nil {
		year = *q.Year
	}
	return month, year, nil
}

// CreateBudget creates a budget
// @Summary     Create a budget
// @Description Create a monthly or per-category spending cap
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateBudgetRequest true "Budget data"
// @Success     201 {object} models.Budget "Created budget"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     409 {object} ErrorResponse "Budget already exists for this period"
// @Router      /budgets [post]
func (h *BudgetHandler) CreateBudget(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	notifyEnabled := true
	if req.NotifyEnabled != nil {
		notifyEnabled = *req.NotifyEnabled
	}

	budget, err := h.budgetService.CreateBudget(
		userID,
		models.BudgetKind(req.Kind),
		req.Category,
		req.Amount,
		req.Currency,
		req.Month,
		req.Year,
		notifyEnabled,
		req.NotifyThreshold,
	)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"budget": budget})
}

// GetBudgets lists the user's budgets
// @Summary     List budgets
// @Tags        budgets
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Param       is_active query bool false "Filter by active flag"
// @Success     200 {object} pagination.PageResponse[models.Budget] "Budgets"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /budgets [get]
func (h *BudgetHandler) GetBudgets(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req struct {
		pagination.PageRequest
		IsActive *bool `form:"is_active"`
	}
	if err := c.ShouldBindQuery(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	page, err := h.budgetService.GetUserBudgets(userID, req.PageRequest, req.IsActive)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// GetBudgetsWithStatus lists budgets for a month with spending status
// @Summary     List budgets with status
// @Description Get the budgets applying to a month together with derived spending status
// @Tags        budgets
// @Produce     json
// @Security    BearerAuth
// @Param       month query int false "Month (1-12, defaults to current)"
// @Param       year query int false "Year (defaults to current)"
// @Success     200 {object} map[string][]services.BudgetWithStatus "Budgets with status"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /budgets/status [get]
func (h *BudgetHandler) GetBudgetsWithStatus(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	month, year, err := monthParams(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	statuses, err := h.budgetService.ListWithStatus(userID, month, year)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"budgets": statuses, "month": month, "year": year})
}

// GetSummary returns aggregated budget health for a month
// @Summary     Budget summary
// @Tags        budgets
// @Produce     json
// @Security    BearerAuth
// @Param       month query int false "Month (1-12, defaults to current)"
// @Param       year query int false "Year (defaults to current)"
// @Success     200 {object} services.BudgetSummary "Summary"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /budgets/summary [get]
func (h *BudgetHandler) GetSummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	month, year, err := monthParams(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.budgetService.Summary(userID, month, year)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// UpdateBudget updates a budget's amount or alert settings
// @Summary     Update a budget
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Budget ID"
// @Param       request body UpdateBudgetRequest true "Fields to update"
// @Success     200 {object} models.Budget "Updated budget"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /budgets/{id} [put]
func (h *BudgetHandler) UpdateBudget(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	budgetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	budget, err := h.budgetService.UpdateBudget(userID, budgetID, req.Amount, req.NotifyEnabled, req.NotifyThreshold)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"budget": budget})
}

// DeleteBudget deactivates a budget
// @Summary     Deactivate a budget
// @Description Budgets are deactivated rather than deleted so history is preserved
// @Tags        budgets
// @Security    BearerAuth
// @Param       id path int true "Budget ID"
// @Success     204 "Deactivated"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /budgets/{id} [delete]
func (h *BudgetHandler) DeleteBudget(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	budgetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.budgetService.DeactivateBudget(userID, budgetID); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetCategories lists categories available for budget creation
// @Summary     List budget categories
// @Description Get the distinct categories the user has recorded transactions under
// @Tags        budgets
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string][]string "Categories"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /budgets/categories [get]
func (h *BudgetHandler) GetCategories(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	categories, err := h.transactionService.DistinctCategories(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}
