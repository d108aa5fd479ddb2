package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gitlab.com/yelinaung/finance-tracker/internal/database"
	"gitlab.com/yelinaung/finance-tracker/internal/models"
)

func TestExpenseRepository_CreateAndList(t *testing.T) {
	tx := database.TestTx(t)
	ctx := context.Background()

	repo := NewExpenseRepository(tx)
	user := createTestUser(t, ctx, tx, "alice")
	groceries := defaultCategory(t, ctx, tx, "Groceries")

	t.Run("creates expense with category", func(t *testing.T) {
		expense := &models.Expense{
			OwnerID:     user.ID,
			Amount:      dec("42.50"),
			CategoryID:  &groceries.ID,
			Description: "weekly shop",
			OccurredOn:  day(2025, 11, 5),
		}
		require.NoError(t, repo.Create(ctx, expense))
		require.NotZero(t, expense.ID)
	})

	t.Run("creates uncategorized expense", func(t *testing.T) {
		expense := &models.Expense{
			OwnerID:    user.ID,
			Amount:     dec("5.00"),
			OccurredOn: day(2025, 11, 6),
		}
		require.NoError(t, repo.Create(ctx, expense))
	})

	t.Run("list joins category and orders newest first", func(t *testing.T) {
		expenses, err := repo.ListByOwner(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, expenses, 2)

		require.Equal(t, day(2025, 11, 6), models.DateOnly(expenses[0].OccurredOn))
		require.Nil(t, expenses[0].Category)

		require.NotNil(t, expenses[1].Category)
		require.Equal(t, "Groceries", expenses[1].Category.Name)
	})

	t.Run("list is scoped to the owner", func(t *testing.T) {
		other := createTestUser(t, ctx, tx, "bob")
		expenses, err := repo.ListByOwner(ctx, other.ID)
		require.NoError(t, err)
		require.Empty(t, expenses)
	})
}

func TestExpenseRepository_ListByOwnerAndRange(t *testing.T) {
	tx := database.TestTx(t)
	ctx := context.Background()

	repo := NewExpenseRepository(tx)
	user := createTestUser(t, ctx, tx, "alice")

	for _, d := range []int{1, 15, 30} {
		expense := &models.Expense{OwnerID: user.ID, Amount: dec("10.00"), OccurredOn: day(2025, 11, d)}
		require.NoError(t, repo.Create(ctx, expense))
	}

	t.Run("both ends are inclusive", func(t *testing.T) {
		expenses, err := repo.ListByOwnerAndRange(ctx, user.ID, day(2025, 11, 1), day(2025, 11, 30))
		require.NoError(t, err)
		require.Len(t, expenses, 3)

		expenses, err = repo.ListByOwnerAndRange(ctx, user.ID, day(2025, 11, 2), day(2025, 11, 29))
		require.NoError(t, err)
		require.Len(t, expenses, 1)
	})

	t.Run("empty window yields no rows", func(t *testing.T) {
		expenses, err := repo.ListByOwnerAndRange(ctx, user.ID, day(2025, 12, 1), day(2025, 12, 31))
		require.NoError(t, err)
		require.Empty(t, expenses)
	})
}

func TestExpenseRepository_UpdateAndDelete(t *testing.T) {
	tx := database.TestTx(t)
	ctx := context.Background()

	repo := NewExpenseRepository(tx)
	user := createTestUser(t, ctx, tx, "alice")
	other := createTestUser(t, ctx, tx, "bob")

	expense := &models.Expense{OwnerID: user.ID, Amount: dec("10.00"), OccurredOn: day(2025, 11, 1)}
	require.NoError(t, repo.Create(ctx, expense))

	t.Run("owner updates the expense", func(t *testing.T) {
		expense.Amount = dec("12.34")
		expense.Description = "corrected"
		ok, err := repo.Update(ctx, expense)
		require.NoError(t, err)
		require.True(t, ok)

		fetched, err := repo.GetByIDForOwner(ctx, user.ID, expense.ID)
		require.NoError(t, err)
		require.True(t, fetched.Amount.Equal(dec("12.34")))
		require.Equal(t, "corrected", fetched.Description)
	})

	t.Run("another user cannot update it", func(t *testing.T) {
		stolen := *expense
		stolen.OwnerID = other.ID
		ok, err := repo.Update(ctx, &stolen)
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("another user cannot delete it", func(t *testing.T) {
		ok, err := repo.Delete(ctx, other.ID, expense.ID)
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("owner deletes the expense", func(t *testing.T) {
		ok, err := repo.Delete(ctx, user.ID, expense.ID)
		require.NoError(t, err)
		require.True(t, ok)

		_, err = repo.GetByIDForOwner(ctx, user.ID, expense.ID)
		require.Error(t, err)
	})
}
