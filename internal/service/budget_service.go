package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gitlab.com/yelinaung/finance-tracker/internal/models"
	"gitlab.com/yelinaung/finance-tracker/internal/repository"
)

// BudgetStatus annotates a budget with spending over a window. Available
// goes negative when the budget is overspent; that is a reportable state,
// not an error.
type BudgetStatus struct {
	Budget     models.Budget
	ValueSpent decimal.Decimal
	Available  decimal.Decimal
}

// BudgetService creates budgets and computes spend-to-date per budget.
type BudgetService struct {
	budgets    *repository.BudgetRepository
	expenses   *repository.ExpenseRepository
	categories *repository.CategoryRepository
}

// NewBudgetService creates a new BudgetService.
func NewBudgetService(
	budgets *repository.BudgetRepository,
	expenses *repository.ExpenseRepository,
	categories *repository.CategoryRepository,
) *BudgetService {
	return &BudgetService{budgets: budgets, expenses: expenses, categories: categories}
}

// Create adds a budget for one of the user's visible categories. A user
// holds at most one budget per category.
func (s *BudgetService) Create(
	ctx context.Context,
	ownerID, categoryID int64,
	amount decimal.Decimal,
	startDate, endDate time.Time,
) (*models.Budget, error) {
	if err := validateBudgetInput(amount, startDate, endDate); err != nil {
		return nil, err
	}

	cat, err := visibleCategory(ctx, s.categories, ownerID, categoryID)
	if err != nil {
		return nil, err
	}

	exists, err := s.budgets.ExistsForCategory(ctx, ownerID, categoryID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateBudget
	}

	budget := &models.Budget{
		OwnerID:    ownerID,
		CategoryID: categoryID,
		Amount:     amount,
		StartDate:  models.DateOnly(startDate),
		EndDate:    models.DateOnly(endDate),
	}
	if err := s.budgets.Create(ctx, budget); err != nil {
		if IsUniqueViolation(err) {
			return nil, ErrDuplicateBudget
		}
		return nil, err
	}
	budget.Category = cat
	return budget, nil
}

// Update modifies one of the user's budgets. Moving the budget to another
// category is subject to the same one-budget-per-category rule.
func (s *BudgetService) Update(
	ctx context.Context,
	ownerID, budgetID, categoryID int64,
	amount decimal.Decimal,
	startDate, endDate time.Time,
) (*models.Budget, error) {
	if err := validateBudgetInput(amount, startDate, endDate); err != nil {
		return nil, err
	}

	current, err := s.budgets.GetByIDForOwner(ctx, ownerID, budgetID)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	cat := current.Category
	if categoryID != current.CategoryID {
		cat, err = visibleCategory(ctx, s.categories, ownerID, categoryID)
		if err != nil {
			return nil, err
		}
		exists, err := s.budgets.ExistsForCategory(ctx, ownerID, categoryID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrDuplicateBudget
		}
	}

	current.CategoryID = categoryID
	current.Amount = amount
	current.StartDate = models.DateOnly(startDate)
	current.EndDate = models.DateOnly(endDate)

	ok, err := s.budgets.Update(ctx, current)
	if err != nil {
		if IsUniqueViolation(err) {
			return nil, ErrDuplicateBudget
		}
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	current.Category = cat
	return current, nil
}

// Delete removes one of the user's budgets.
func (s *BudgetService) Delete(ctx context.Context, ownerID, budgetID int64) error {
	ok, err := s.budgets.Delete(ctx, ownerID, budgetID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// ComputeStatus returns one budget annotated with spending inside its own
// window.
func (s *BudgetService) ComputeStatus(ctx context.Context, ownerID, budgetID int64) (*BudgetStatus, error) {
	budget, err := s.budgets.GetByIDForOwner(ctx, ownerID, budgetID)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	expenses, err := s.expenses.ListByOwnerAndRange(ctx, ownerID, budget.StartDate, budget.EndDate)
	if err != nil {
		return nil, err
	}

	status := Status(*budget, expenses)
	return &status, nil
}

// ListStatuses returns every budget of the user in insertion order, each
// annotated with value spent and remaining balance.
func (s *BudgetService) ListStatuses(ctx context.Context, ownerID int64) ([]BudgetStatus, error) {
	budgets, err := s.budgets.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	expenses, err := s.expenses.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	statuses := make([]BudgetStatus, 0, len(budgets))
	for _, b := range budgets {
		statuses = append(statuses, Status(b, expenses))
	}
	return statuses, nil
}

// Status computes spending for a budget from the supplied expenses. Pure:
// callers decide how the expense list is scoped.
func Status(budget models.Budget, expenses []models.Expense) BudgetStatus {
	spent := SpentInWindow(expenses, budget.CategoryID, budget.StartDate, budget.EndDate)
	return BudgetStatus{
		Budget:     budget,
		ValueSpent: spent,
		Available:  budget.Amount.Sub(spent),
	}
}

// SpentInWindow sums the amounts of expenses in the category whose dates
// fall inside the inclusive [from, to] window. Returns zero when nothing
// matches, never a null-ish value.
func SpentInWindow(expenses []models.Expense, categoryID int64, from, to time.Time) decimal.Decimal {
	lo, hi := models.DateOnly(from), models.DateOnly(to)
	total := decimal.Zero
	for _, e := range expenses {
		if e.CategoryID == nil || *e.CategoryID != categoryID {
			continue
		}
		d := models.DateOnly(e.OccurredOn)
		if d.Before(lo) || d.After(hi) {
			continue
		}
		total = total.Add(e.Amount)
	}
	return total
}

func validateBudgetInput(amount decimal.Decimal, startDate, endDate time.Time) error {
	if amount.IsNegative() {
		return validationErr("amount", "must not be negative")
	}
	// Equal dates are a valid one-day window.
	if models.DateOnly(startDate).After(models.DateOnly(endDate)) {
		return validationErr("start_date", "must not be after end_date")
	}
	return nil
}
