package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gitlab.com/yelinaung/finance-tracker/internal/database"
	"gitlab.com/yelinaung/finance-tracker/internal/models"
	"gitlab.com/yelinaung/finance-tracker/internal/repository"
)

func TestMonthWindow(t *testing.T) {
	t.Run("thirty day month", func(t *testing.T) {
		from, to := MonthWindow(2025, time.November)
		require.Equal(t, day(2025, 11, 1), from)
		require.Equal(t, day(2025, 11, 30), to)
	})

	t.Run("december rolls into the next year", func(t *testing.T) {
		from, to := MonthWindow(2025, time.December)
		require.Equal(t, day(2025, 12, 1), from)
		require.Equal(t, day(2025, 12, 31), to)
	})

	t.Run("february in a leap year", func(t *testing.T) {
		_, to := MonthWindow(2024, time.February)
		require.Equal(t, day(2024, 2, 29), to)
	})
}

func TestSumTotals(t *testing.T) {
	t.Run("income cents add up exactly", func(t *testing.T) {
		incomes := []models.Income{
			{Amount: dec("100.50")},
			{Amount: dec("50.75")},
		}
		require.True(t, sumIncomes(incomes).Equal(dec("151.25")))
	})

	t.Run("empty lists sum to zero", func(t *testing.T) {
		require.True(t, sumIncomes(nil).Equal(decimal.Zero))
		require.True(t, sumExpenses(nil).Equal(decimal.Zero))
	})
}

func TestRecentExpenses(t *testing.T) {
	t.Run("caps at n, newest date first", func(t *testing.T) {
		expenses := []models.Expense{
			{ID: 1, OccurredOn: day(2025, 11, 1)},
			{ID: 2, OccurredOn: day(2025, 11, 20)},
			{ID: 3, OccurredOn: day(2025, 11, 10)},
			{ID: 4, OccurredOn: day(2025, 11, 5)},
		}
		recent := recentExpenses(expenses, 3)
		require.Len(t, recent, 3)
		require.Equal(t, int64(2), recent[0].ID)
		require.Equal(t, int64(3), recent[1].ID)
		require.Equal(t, int64(4), recent[2].ID)
	})

	t.Run("same date breaks ties by id descending", func(t *testing.T) {
		expenses := []models.Expense{
			{ID: 1, OccurredOn: day(2025, 11, 10)},
			{ID: 2, OccurredOn: day(2025, 11, 10)},
			{ID: 3, OccurredOn: day(2025, 11, 10)},
		}
		recent := recentExpenses(expenses, 3)
		require.Equal(t, int64(3), recent[0].ID)
		require.Equal(t, int64(2), recent[1].ID)
		require.Equal(t, int64(1), recent[2].ID)
	})

	t.Run("fewer than n returns all", func(t *testing.T) {
		recent := recentExpenses([]models.Expense{{ID: 1, OccurredOn: day(2025, 11, 1)}}, 3)
		require.Len(t, recent, 1)
	})

	t.Run("empty input gives empty non-nil slice", func(t *testing.T) {
		recent := recentExpenses(nil, 3)
		require.NotNil(t, recent)
		require.Empty(t, recent)
	})

	t.Run("input order is not mutated", func(t *testing.T) {
		expenses := []models.Expense{
			{ID: 1, OccurredOn: day(2025, 11, 1)},
			{ID: 2, OccurredOn: day(2025, 11, 20)},
		}
		_ = recentExpenses(expenses, 1)
		require.Equal(t, int64(1), expenses[0].ID)
	})
}

func TestIntersectWindows(t *testing.T) {
	t.Run("overlap is clamped to both windows", func(t *testing.T) {
		lo, hi, ok := intersectWindows(
			day(2025, 10, 15), day(2025, 11, 15),
			day(2025, 11, 1), day(2025, 11, 30),
		)
		require.True(t, ok)
		require.Equal(t, day(2025, 11, 1), lo)
		require.Equal(t, day(2025, 11, 15), hi)
	})

	t.Run("contained window is unchanged", func(t *testing.T) {
		lo, hi, ok := intersectWindows(
			day(2025, 11, 5), day(2025, 11, 10),
			day(2025, 11, 1), day(2025, 11, 30),
		)
		require.True(t, ok)
		require.Equal(t, day(2025, 11, 5), lo)
		require.Equal(t, day(2025, 11, 10), hi)
	})

	t.Run("single shared day still overlaps", func(t *testing.T) {
		lo, hi, ok := intersectWindows(
			day(2025, 10, 1), day(2025, 11, 1),
			day(2025, 11, 1), day(2025, 11, 30),
		)
		require.True(t, ok)
		require.Equal(t, day(2025, 11, 1), lo)
		require.Equal(t, day(2025, 11, 1), hi)
	})

	t.Run("disjoint windows do not overlap", func(t *testing.T) {
		_, _, ok := intersectWindows(
			day(2025, 9, 1), day(2025, 9, 30),
			day(2025, 11, 1), day(2025, 11, 30),
		)
		require.False(t, ok)
	})
}

func TestMonthBudgetStatuses(t *testing.T) {
	nov1, nov30 := day(2025, 11, 1), day(2025, 11, 30)

	t.Run("budget outside the month still appears with zero spent", func(t *testing.T) {
		budgets := []models.Budget{{
			ID: 1, CategoryID: 1, Amount: dec("100.00"),
			StartDate: day(2025, 9, 1), EndDate: day(2025, 9, 30),
		}}
		statuses := monthBudgetStatuses(budgets, nil, nov1, nov30)
		require.Len(t, statuses, 1)
		require.True(t, statuses[0].ValueSpent.Equal(decimal.Zero))
		require.True(t, statuses[0].Available.Equal(dec("100.00")))
	})

	t.Run("spending counts only inside the overlap", func(t *testing.T) {
		catID := int64(1)
		budgets := []models.Budget{{
			ID: 1, CategoryID: catID, Amount: dec("200.00"),
			StartDate: day(2025, 11, 10), EndDate: day(2025, 12, 10),
		}}
		monthExpenses := []models.Expense{
			{Amount: dec("40.00"), CategoryID: &catID, OccurredOn: day(2025, 11, 15)},
			// Inside the month, before the budget starts.
			{Amount: dec("25.00"), CategoryID: &catID, OccurredOn: day(2025, 11, 5)},
		}
		statuses := monthBudgetStatuses(budgets, monthExpenses, nov1, nov30)
		require.True(t, statuses[0].ValueSpent.Equal(dec("40.00")))
		require.True(t, statuses[0].Available.Equal(dec("160.00")))
	})

	t.Run("no budgets gives empty non-nil slice", func(t *testing.T) {
		statuses := monthBudgetStatuses(nil, nil, nov1, nov30)
		require.NotNil(t, statuses)
		require.Empty(t, statuses)
	})
}

func TestGoalStatuses(t *testing.T) {
	now := day(2025, 11, 15)

	t.Run("days and amount to goal", func(t *testing.T) {
		goals := []models.SavingsGoal{{
			GoalName:      "Vacation",
			TargetAmount:  dec("800.00"),
			CurrentAmount: dec("300.00"),
			Deadline:      day(2025, 12, 15),
		}}
		statuses := goalStatuses(goals, now)
		require.Len(t, statuses, 1)
		require.True(t, statuses[0].AmountToGoal.Equal(dec("500.00")))
		require.Equal(t, 30, statuses[0].DaysToDeadline)
		require.False(t, statuses[0].DeadlinePassed)
	})

	t.Run("passed deadline goes negative", func(t *testing.T) {
		goals := []models.SavingsGoal{{Deadline: day(2025, 11, 10)}}
		statuses := goalStatuses(goals, now)
		require.Equal(t, -5, statuses[0].DaysToDeadline)
		require.True(t, statuses[0].DeadlinePassed)
	})

	t.Run("deadline today is not passed", func(t *testing.T) {
		goals := []models.SavingsGoal{{Deadline: day(2025, 11, 15)}}
		statuses := goalStatuses(goals, now)
		require.Equal(t, 0, statuses[0].DaysToDeadline)
		require.False(t, statuses[0].DeadlinePassed)
	})

	t.Run("overfunded goal goes negative on amount", func(t *testing.T) {
		goals := []models.SavingsGoal{{
			TargetAmount:  dec("100.00"),
			CurrentAmount: dec("120.00"),
			Deadline:      day(2025, 12, 1),
		}}
		statuses := goalStatuses(goals, now)
		require.True(t, statuses[0].AmountToGoal.Equal(dec("-20.00")))
	})
}

func TestDashboardService_Snapshot(t *testing.T) {
	tx := database.TestTx(t)
	ctx := context.Background()

	users := repository.NewUserRepository(tx)
	user := &models.User{Username: "alice", Email: "alice@example.com", PasswordHash: "hash"}
	require.NoError(t, users.Create(ctx, user))

	categoryRepo := repository.NewCategoryRepository(tx)
	incomeRepo := repository.NewIncomeRepository(tx)
	expenseRepo := repository.NewExpenseRepository(tx)
	budgetRepo := repository.NewBudgetRepository(tx)
	goalRepo := repository.NewSavingsGoalRepository(tx)

	svc := NewDashboardService(incomeRepo, expenseRepo, budgetRepo, goalRepo)
	now := day(2025, 11, 15)

	t.Run("empty month has explicit zero state", func(t *testing.T) {
		snap, err := svc.Snapshot(ctx, user.ID, 2025, time.November, now)
		require.NoError(t, err)
		require.True(t, snap.TotalIncome.Equal(decimal.Zero))
		require.True(t, snap.TotalExpenses.Equal(decimal.Zero))
		require.True(t, snap.Balance.Equal(decimal.Zero))
		require.NotNil(t, snap.RecentExpenses)
		require.Empty(t, snap.RecentExpenses)
		require.NotNil(t, snap.Budgets)
		require.Empty(t, snap.Budgets)
		require.NotNil(t, snap.SavingsGoals)
		require.Empty(t, snap.SavingsGoals)
	})

	t.Run("invalid month is rejected", func(t *testing.T) {
		_, err := svc.Snapshot(ctx, user.ID, 2025, time.Month(13), now)
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		require.Equal(t, "month", vErr.Field)
	})

	t.Run("composes totals, recents, budgets, and goals", func(t *testing.T) {
		defaults, err := categoryRepo.ListDefaults(ctx)
		require.NoError(t, err)
		var groceries *models.Category
		for i := range defaults {
			if defaults[i].Name == "Groceries" {
				groceries = &defaults[i]
			}
		}
		require.NotNil(t, groceries)

		for _, amount := range []string{"100.50", "50.75"} {
			income := &models.Income{OwnerID: user.ID, Amount: dec(amount), OccurredOn: day(2025, 11, 3)}
			require.NoError(t, incomeRepo.Create(ctx, income))
		}
		// Income outside the month is excluded from totals.
		stale := &models.Income{OwnerID: user.ID, Amount: dec("999.00"), OccurredOn: day(2025, 10, 3)}
		require.NoError(t, incomeRepo.Create(ctx, stale))

		for _, d := range []int{2, 8, 14, 20} {
			expense := &models.Expense{
				OwnerID:    user.ID,
				Amount:     dec("10.00"),
				CategoryID: &groceries.ID,
				OccurredOn: day(2025, 11, d),
			}
			require.NoError(t, expenseRepo.Create(ctx, expense))
		}

		budget := &models.Budget{
			OwnerID:    user.ID,
			CategoryID: groceries.ID,
			Amount:     dec("100.00"),
			StartDate:  day(2025, 11, 10),
			EndDate:    day(2025, 12, 10),
		}
		require.NoError(t, budgetRepo.Create(ctx, budget))

		goal := &models.SavingsGoal{
			OwnerID:       user.ID,
			GoalName:      "Vacation",
			TargetAmount:  dec("800.00"),
			CurrentAmount: dec("300.00"),
			Deadline:      day(2025, 12, 15),
		}
		require.NoError(t, goalRepo.Create(ctx, goal))

		snap, err := svc.Snapshot(ctx, user.ID, 2025, time.November, now)
		require.NoError(t, err)

		require.True(t, snap.TotalIncome.Equal(dec("151.25")))
		require.True(t, snap.TotalExpenses.Equal(dec("40.00")))
		require.True(t, snap.Balance.Equal(dec("111.25")))

		require.Len(t, snap.RecentExpenses, 3)
		require.Equal(t, day(2025, 11, 20), models.DateOnly(snap.RecentExpenses[0].OccurredOn))
		require.Equal(t, day(2025, 11, 14), models.DateOnly(snap.RecentExpenses[1].OccurredOn))
		require.Equal(t, day(2025, 11, 8), models.DateOnly(snap.RecentExpenses[2].OccurredOn))

		// Only the expenses inside the budget/month overlap count: Nov 14 and 20.
		require.Len(t, snap.Budgets, 1)
		require.True(t, snap.Budgets[0].ValueSpent.Equal(dec("20.00")))
		require.True(t, snap.Budgets[0].Available.Equal(dec("80.00")))

		require.Len(t, snap.SavingsGoals, 1)
		require.True(t, snap.SavingsGoals[0].AmountToGoal.Equal(dec("500.00")))
		require.Equal(t, 30, snap.SavingsGoals[0].DaysToDeadline)
	})
}
