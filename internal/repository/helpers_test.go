package repository

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gitlab.com/yelinaung/finance-tracker/internal/database"
	"gitlab.com/yelinaung/finance-tracker/internal/models"
)

// dec parses a decimal literal for test fixtures.
func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// day builds a date-only timestamp.
func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

// requireUniqueViolation asserts that err is a Postgres unique violation.
func requireUniqueViolation(t *testing.T, err error) {
	t.Helper()

	var pgErr *pgconn.PgError
	require.ErrorAs(t, err, &pgErr)
	require.Equal(t, "23505", pgErr.Code)
}

// createTestUser inserts a user and returns it. Rows vanish with the
// test transaction rollback.
func createTestUser(t *testing.T, ctx context.Context, db database.PGXDB, username string) *models.User {
	t.Helper()

	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		FirstName:    "Test",
		LastName:     "User",
		PasswordHash: "not-a-real-hash",
	}
	require.NoError(t, NewUserRepository(db).Create(ctx, user))
	return user
}

// defaultCategory returns one of the seeded default categories by name.
func defaultCategory(t *testing.T, ctx context.Context, db database.PGXDB, name string) *models.Category {
	t.Helper()

	defaults, err := NewCategoryRepository(db).ListDefaults(ctx)
	require.NoError(t, err)
	for i := range defaults {
		if defaults[i].Name == name {
			return &defaults[i]
		}
	}
	t.Fatalf("default category %q not seeded", name)
	return nil
}
