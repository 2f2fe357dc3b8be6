package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "moneymap/internal/errors"
	"moneymap/internal/models"
	"moneymap/internal/pagination"
	"moneymap/internal/services"
)

// --- mock budget service ---

type mockBudgetService struct {
	createBudgetFn          func(userID uint, kind models.BudgetKind, category *string, amount float64, currency string, month *int, year int, notifyEnabled bool, notifyThreshold float64) (*models.Budget, error)
	getUserBudgetsFn        func(userID uint, page pagination.PageRequest, isActive *bool) (*pagination.PageResponse[models.Budget], error)
	getBudgetByIDFn         func(userID, budgetID uint) (*models.Budget, error)
	updateBudgetFn          func(userID, budgetID uint, amount *float64, notifyEnabled *bool, notifyThreshold *float64) (*models.Budget, error)
	deactivateBudgetFn      func(userID, budgetID uint) error
	activeBudgetsForMonthFn func(userID uint, month, year int) ([]models.Budget, error)
	computeSpendingFn       func(userID uint, budget *models.Budget, month, year int) (float64, error)
	listWithStatusFn        func(userID uint, month, year int) ([]services.BudgetWithStatus, error)
	summaryFn               func(userID uint, month, year int) (*services.BudgetSummary, error)
}

func (m *mockBudgetService) CreateBudget(userID uint, kind models.BudgetKind, category *string, amount float64, currency string, month *int, year int, notifyEnabled bool, notifyThreshold float64) (*models.Budget, error) {
	if m.createBudgetFn != nil {
		return m.createBudgetFn(userID, kind, category, amount, currency, month, year, notifyEnabled, notifyThreshold)
	}
	return &models.Budget{}, nil
}

func (m *mockBudgetService) GetUserBudgets(userID uint, page pagination.PageRequest, isActive *bool) (*pagination.PageResponse[models.Budget], error) {
	if m.getUserBudgetsFn != nil {
		return m.getUserBudgetsFn(userID, page, isActive)
	}
	resp := pagination.NewPageResponse([]models.Budget{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockBudgetService) GetBudgetByID(userID, budgetID uint) (*models.Budget, error) {
	if m.getBudgetByIDFn != nil {
		return m.getBudgetByIDFn(userID, budgetID)
	}
	return &models.Budget{}, nil
}

func (m *mockBudgetService) UpdateBudget(userID, budgetID uint, amount *float64, notifyEnabled *bool, notifyThreshold *float64) (*models.Budget, error) {
	if m.updateBudgetFn != nil {
		return m.updateBudgetFn(userID, budgetID, amount, notifyEnabled, notifyThreshold)
	}
	return &models.Budget{}, nil
}

func (m *mockBudgetService) DeactivateBudget(userID, budgetID uint) error {
	if m.deactivateBudgetFn != nil {
		return m.deactivateBudgetFn(userID, budgetID)
	}
	return nil
}

func (m *mockBudgetService) ActiveBudgetsForMonth(userID uint, month, year int) ([]models.Budget, error) {
	if m.activeBudgetsForMonthFn != nil {
		return m.activeBudgetsForMonthFn(userID, month, year)
	}
	return nil, nil
}

func (m *mockBudgetService) ComputeSpending(userID uint, budget *models.Budget, month, year int) (float64, error) {
	if m.computeSpendingFn != nil {
		return m.computeSpendingFn(userID, budget, month, year)
	}
	return 0, nil
}

func (m *mockBudgetService) ListWithStatus(userID uint, month, year int) ([]services.BudgetWithStatus, error) {
	if m.listWithStatusFn != nil {
		return m.listWithStatusFn(userID, month, year)
	}
	return nil, nil
}

func (m *mockBudgetService) Summary(userID uint, month, year int) (*services.BudgetSummary, error) {
	if m.summaryFn != nil {
		return m.summaryFn(userID, month, year)
	}
	return &services.BudgetSummary{}, nil
}

var _ services.BudgetServicer = (*mockBudgetService)(nil)

func setupBudgetRouter(handler *BudgetHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(1))
	auth.POST("/budgets", handler.CreateBudget)
	auth.GET("/budgets", handler.GetBudgets)
	auth.GET("/budgets/status", handler.GetBudgetsWithStatus)
	auth.GET("/budgets/summary", handler.GetSummary)
	auth.GET("/budgets/categories", handler.GetCategories)
	auth.PUT("/budgets/:id", handler.UpdateBudget)
	auth.DELETE("/budgets/:id", handler.DeleteBudget)
	return r
}

func TestBudgetHandler_CreateBudget(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		svc := &mockBudgetService{
			createBudgetFn: func(userID uint, kind models.BudgetKind, category *string, amount float64, _ string, _ *int, year int, notifyEnabled bool, _ float64) (*models.Budget, error) {
				return &models.Budget{
					Base:          models.Base{ID: 1},
					UserID:        userID,
					Kind:          kind,
					Category:      category,
					Amount:        amount,
					Year:          year,
					IsActive:      true,
					NotifyEnabled: notifyEnabled,
				}, nil
			},
		}
		handler := NewBudgetHandler(svc, &mockTransactionService{})
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "POST", "/budgets",
			`{"kind":"category","category":"Groceries","amount":5000,"year":2025}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		budget := result["budget"].(map[string]interface{})
		if budget["category"] != "Groceries" {
			t.Errorf("expected Groceries, got %v", budget["category"])
		}
		if budget["amount"].(float64) != 5000 {
			t.Errorf("expected amount 5000, got %v", budget["amount"])
		}
		if budget["notify_enabled"] != true {
			t.Error("expected notifications enabled by default")
		}
	})

	t.Run("returns 400 on invalid kind", func(t *testing.T) {
		handler := NewBudgetHandler(&mockBudgetService{}, &mockTransactionService{})
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "POST", "/budgets",
			`{"kind":"weekly","amount":5000,"year":2025}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 400 on zero amount", func(t *testing.T) {
		handler := NewBudgetHandler(&mockBudgetService{}, &mockTransactionService{})
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "POST", "/budgets",
			`{"kind":"monthly","amount":0,"month":6,"year":2025}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on out-of-range threshold", func(t *testing.T) {
		handler := NewBudgetHandler(&mockBudgetService{}, &mockTransactionService{})
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "POST", "/budgets",
			`{"kind":"monthly","amount":1000,"month":6,"year":2025,"notify_threshold":150}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 409 on duplicate budget", func(t *testing.T) {
		svc := &mockBudgetService{
			createBudgetFn: func(_ uint, _ models.BudgetKind, _ *string, _ float64, _ string, _ *int, _ int, _ bool, _ float64) (*models.Budget, error) {
				return nil, apperrors.ErrBudgetExists
			},
		}
		handler := NewBudgetHandler(svc, &mockTransactionService{})
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "POST", "/budgets",
			`{"kind":"monthly","amount":1000,"month":6,"year":2025}`)

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "BUDGET_EXISTS")
	})

	t.Run("returns 401 without auth", func(t *testing.T) {
		handler := NewBudgetHandler(&mockBudgetService{}, &mockTransactionService{})
		r := gin.New()
		r.POST("/budgets", handler.CreateBudget)

		rec := doRequest(r, "POST", "/budgets",
			`{"kind":"monthly","amount":1000,"month":6,"year":2025}`)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})
}

func TestBudgetHandler_GetBudgets(t *testing.T) {
	t.Run("returns 200 with paginated budgets", func(t *testing.T) {
		svc := &mockBudgetService{
			getUserBudgetsFn: func(_ uint, _ pagination.PageRequest, _ *bool) (*pagination.PageResponse[models.Budget], error) {
				resp := pagination.NewPageResponse([]models.Budget{
					{Base: models.Base{ID: 1}, Kind: models.BudgetKindMonthly},
					{Base: models.Base{ID: 2}, Kind: models.BudgetKindCategory},
				}, 1, 20, 2)
				return &resp, nil
			},
		}
		handler := NewBudgetHandler(svc, &mockTransactionService{})
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "GET", "/budgets", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		data := result["data"].([]interface{})
		if len(data) != 2 {
			t.Errorf("expected 2 budgets, got %d", len(data))
		}
	})

	t.Run("passes is_active filter to service", func(t *testing.T) {
		var captured *bool
		svc := &mockBudgetService{
			getUserBudgetsFn: func(_ uint, _ pagination.PageRequest, isActive *bool) (*pagination.PageResponse[models.Budget], error) {
				captured = isActive
				resp := pagination.NewPageResponse([]models.Budget{}, 1, 20, 0)
				return &resp, nil
			},
		}
		handler := NewBudgetHandler(svc, &mockTransactionService{})
		r := setupBudgetRouter(handler)

		doRequest(r, "GET", "/budgets?is_active=true", "")

		if captured == nil || !*captured {
			t.Error("expected is_active=true to be passed")
		}
	})
}

func TestBudgetHandler_GetBudgetsWithStatus(t *testing.T) {
	t.Run("returns 200 with statuses for requested month", func(t *testing.T) {
		var gotMonth, gotYear int
		svc := &mockBudgetService{
			listWithStatusFn: func(_ uint, month, year int) ([]services.BudgetWithStatus, error) {
				gotMonth, gotYear = month, year
				return []services.BudgetWithStatus{
					{
						Budget: models.Budget{Base: models.Base{ID: 1}, Amount: 1000},
						Status: services.BudgetStatus{
							Spending:       850,
							Remaining:      150,
							PercentageUsed: 85,
							Tier:           services.TierWarning,
						},
					},
				}, nil
			},
		}
		handler := NewBudgetHandler(svc, &mockTransactionService{})
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "GET", "/budgets/status?month=6&year=2025", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotMonth != 6 || gotYear != 2025 {
			t.Errorf("expected month=6 year=2025, got %d/%d", gotMonth, gotYear)
		}
		result := parseJSON(t, rec)
		budgets := result["budgets"].([]interface{})
		if len(budgets) != 1 {
			t.Fatalf("expected 1 budget, got %d", len(budgets))
		}
		status := budgets[0].(map[string]interface{})["status"].(map[string]interface{})
		if status["tier"] != services.TierWarning {
			t.Errorf("expected warning tier, got %v", status["tier"])
		}
		if result["month"].(float64) != 6 {
			t.Errorf("expected month=6 in response, got %v", result["month"])
		}
	})

	t.Run("returns 400 on invalid month", func(t *testing.T) {
		handler := NewBudgetHandler(&mockBudgetService{}, &mockTransactionService{})
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "GET", "/budgets/status?month=13", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})
}

func TestBudgetHandler_GetSummary(t *testing.T) {
	t.Run("returns 200 with summary", func(t *testing.T) {
		svc := &mockBudgetService{
			summaryFn: func(_ uint, month, year int) (*services.BudgetSummary, error) {
				return &services.BudgetSummary{
					Month:         month,
					Year:          year,
					TotalBudgeted: 11000,
					TotalSpent:    3000,
					OverCount:     1,
				}, nil
			},
		}
		handler := NewBudgetHandler(svc, &mockTransactionService{})
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "GET", "/budgets/summary?month=6&year=2025", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["total_budgeted"].(float64) != 11000 {
			t.Errorf("expected total_budgeted=11000, got %v", result["total_budgeted"])
		}
		if result["over_count"].(float64) != 1 {
			t.Errorf("expected over_count=1, got %v", result["over_count"])
		}
	})
}

func TestBudgetHandler_UpdateBudget(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		svc := &mockBudgetService{
			updateBudgetFn: func(_, budgetID uint, amount *float64, _ *bool, _ *float64) (*models.Budget, error) {
				b := &models.Budget{Base: models.Base{ID: budgetID}}
				if amount != nil {
					b.Amount = *amount
				}
				return b, nil
			},
		}
		handler := NewBudgetHandler(svc, &mockTransactionService{})
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "PUT", "/budgets/1", `{"amount":7500}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		budget := result["budget"].(map[string]interface{})
		if budget["amount"].(float64) != 7500 {
			t.Errorf("expected amount 7500, got %v", budget["amount"])
		}
	})

	t.Run("returns 404 when not found", func(t *testing.T) {
		svc := &mockBudgetService{
			updateBudgetFn: func(_, _ uint, _ *float64, _ *bool, _ *float64) (*models.Budget, error) {
				return nil, apperrors.ErrBudgetNotFound
			},
		}
		handler := NewBudgetHandler(svc, &mockTransactionService{})
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "PUT", "/budgets/999", `{"amount":7500}`)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "BUDGET_NOT_FOUND")
	})

	t.Run("returns 400 on invalid threshold", func(t *testing.T) {
		handler := NewBudgetHandler(&mockBudgetService{}, &mockTransactionService{})
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "PUT", "/budgets/1", `{"notify_threshold":0}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestBudgetHandler_DeleteBudget(t *testing.T) {
	t.Run("returns 204 on success", func(t *testing.T) {
		var deactivated uint
		svc := &mockBudgetService{
			deactivateBudgetFn: func(_, budgetID uint) error {
				deactivated = budgetID
				return nil
			},
		}
		handler := NewBudgetHandler(svc, &mockTransactionService{})
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "DELETE", "/budgets/1", "")

		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d: %s", rec.Code, rec.Body.String())
		}
		if deactivated != 1 {
			t.Errorf("expected budget 1 deactivated, got %d", deactivated)
		}
	})

	t.Run("returns 404 when not found", func(t *testing.T) {
		svc := &mockBudgetService{
			deactivateBudgetFn: func(_, _ uint) error {
				return apperrors.ErrBudgetNotFound
			},
		}
		handler := NewBudgetHandler(svc, &mockTransactionService{})
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "DELETE", "/budgets/999", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on invalid ID", func(t *testing.T) {
		handler := NewBudgetHandler(&mockBudgetService{}, &mockTransactionService{})
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "DELETE", "/budgets/abc", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestBudgetHandler_GetCategories(t *testing.T) {
	t.Run("returns 200 with categories", func(t *testing.T) {
		txSvc := &mockTransactionService{
			distinctCategoriesFn: func(_ uint) ([]string, error) {
				return []string{"Groceries", "Transport"}, nil
			},
		}
		handler := NewBudgetHandler(&mockBudgetService{}, txSvc)
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "GET", "/budgets/categories", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		categories := result["categories"].([]interface{})
		if len(categories) != 2 || categories[0] != "Groceries" {
			t.Errorf("unexpected categories: %v", categories)
		}
	})
}
