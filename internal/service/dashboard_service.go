package service

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"gitlab.com/yelinaung/finance-tracker/internal/models"
	"gitlab.com/yelinaung/finance-tracker/internal/repository"
)

// RecentExpenseCount is how many recent expenses the dashboard shows.
const RecentExpenseCount = 3

// Snapshot is the monthly dashboard for one user. Every section is always
// present; empty slices and zero totals are the explicit no-data states.
type Snapshot struct {
	Year           int
	Month          time.Month
	TotalIncome    decimal.Decimal
	TotalExpenses  decimal.Decimal
	Balance        decimal.Decimal
	RecentExpenses []models.Expense
	Budgets        []BudgetStatus
	SavingsGoals   []GoalStatus
}

// GoalStatus annotates a savings goal with progress and deadline distance.
// DaysToDeadline goes negative once the deadline is behind; presentation
// renders that as "Deadline passed", it is not an error.
type GoalStatus struct {
	Goal           models.SavingsGoal
	AmountToGoal   decimal.Decimal
	DaysToDeadline int
	DeadlinePassed bool
}

// DashboardService composes the monthly snapshot from the other aggregates.
type DashboardService struct {
	incomes  *repository.IncomeRepository
	expenses *repository.ExpenseRepository
	budgets  *repository.BudgetRepository
	goals    *repository.SavingsGoalRepository
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(
	incomes *repository.IncomeRepository,
	expenses *repository.ExpenseRepository,
	budgets *repository.BudgetRepository,
	goals *repository.SavingsGoalRepository,
) *DashboardService {
	return &DashboardService{incomes: incomes, expenses: expenses, budgets: budgets, goals: goals}
}

// Snapshot composes the dashboard for one user and month. Budget rows
// re-derive value spent over the part of each budget window that overlaps
// the month; a budget with no overlap still appears, with nothing spent.
func (s *DashboardService) Snapshot(
	ctx context.Context,
	ownerID int64,
	year int,
	month time.Month,
	now time.Time,
) (*Snapshot, error) {
	if month < time.January || month > time.December {
		return nil, validationErr("month", "must be between 1 and 12")
	}

	from, to := MonthWindow(year, month)

	incomes, err := s.incomes.ListByOwnerAndRange(ctx, ownerID, from, to)
	if err != nil {
		return nil, err
	}
	expenses, err := s.expenses.ListByOwnerAndRange(ctx, ownerID, from, to)
	if err != nil {
		return nil, err
	}
	budgets, err := s.budgets.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	goals, err := s.goals.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	totalIncome := sumIncomes(incomes)
	totalExpenses := sumExpenses(expenses)

	return &Snapshot{
		Year:           year,
		Month:          month,
		TotalIncome:    totalIncome,
		TotalExpenses:  totalExpenses,
		Balance:        totalIncome.Sub(totalExpenses),
		RecentExpenses: recentExpenses(expenses, RecentExpenseCount),
		Budgets:        monthBudgetStatuses(budgets, expenses, from, to),
		SavingsGoals:   goalStatuses(goals, now),
	}, nil
}

// MonthWindow returns the first and last day of the month, inclusive.
func MonthWindow(year int, month time.Month) (time.Time, time.Time) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, -1)
}

func sumIncomes(incomes []models.Income) decimal.Decimal {
	total := decimal.Zero
	for _, in := range incomes {
		total = total.Add(in.Amount)
	}
	return total
}

func sumExpenses(expenses []models.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}

// recentExpenses returns up to n expenses ordered by date descending,
// breaking date ties newest-inserted first.
func recentExpenses(expenses []models.Expense, n int) []models.Expense {
	sorted := make([]models.Expense, 0, len(expenses))
	sorted = append(sorted, expenses...)
	sort.SliceStable(sorted, func(i, j int) bool {
		di, dj := models.DateOnly(sorted[i].OccurredOn), models.DateOnly(sorted[j].OccurredOn)
		if !di.Equal(dj) {
			return di.After(dj)
		}
		return sorted[i].ID > sorted[j].ID
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// monthBudgetStatuses annotates each budget with spending over the
// intersection of its window and the month window.
func monthBudgetStatuses(budgets []models.Budget, monthExpenses []models.Expense, from, to time.Time) []BudgetStatus {
	statuses := make([]BudgetStatus, 0, len(budgets))
	for _, b := range budgets {
		spent := decimal.Zero
		if lo, hi, ok := intersectWindows(b.StartDate, b.EndDate, from, to); ok {
			spent = SpentInWindow(monthExpenses, b.CategoryID, lo, hi)
		}
		statuses = append(statuses, BudgetStatus{
			Budget:     b,
			ValueSpent: spent,
			Available:  b.Amount.Sub(spent),
		})
	}
	return statuses
}

// intersectWindows returns the overlap of two inclusive date windows.
func intersectWindows(a1, a2, b1, b2 time.Time) (time.Time, time.Time, bool) {
	lo := models.DateOnly(a1)
	if b := models.DateOnly(b1); b.After(lo) {
		lo = b
	}
	hi := models.DateOnly(a2)
	if b := models.DateOnly(b2); b.Before(hi) {
		hi = b
	}
	if lo.After(hi) {
		return time.Time{}, time.Time{}, false
	}
	return lo, hi, true
}

func goalStatuses(goals []models.SavingsGoal, now time.Time) []GoalStatus {
	statuses := make([]GoalStatus, 0, len(goals))
	for _, g := range goals {
		statuses = append(statuses, GoalStatus{
			Goal:           g,
			AmountToGoal:   g.AmountToGoal(),
			DaysToDeadline: g.DaysToDeadline(now),
			DeadlinePassed: g.DeadlinePassed(now),
		})
	}
	return statuses
}
