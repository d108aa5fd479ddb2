package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// RunMigrations creates the database schema.
//
// Cascade rules encode entity lifecycles: everything dies with its owner,
// expenses survive category deletion as uncategorized (SET NULL), budgets
// die with their category (CASCADE). The partial unique indexes on
// categories back the per-user and default name invariants, and the
// (owner_id, category_id) constraint backs the one-budget-per-category
// invariant, so concurrent check-then-insert races cannot slip through.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			email TEXT NOT NULL UNIQUE,
			first_name TEXT NOT NULL DEFAULT '',
			last_name TEXT NOT NULL DEFAULT '',
			password_hash TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS categories (
			id BIGSERIAL PRIMARY KEY,
			owner_id BIGINT REFERENCES users(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_categories_owner_name
			ON categories(owner_id, name) WHERE owner_id IS NOT NULL`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_categories_default_name
			ON categories(name) WHERE owner_id IS NULL`,

		`CREATE TABLE IF NOT EXISTS expenses (
			id BIGSERIAL PRIMARY KEY,
			owner_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			amount DECIMAL(10, 2) NOT NULL CHECK (amount >= 0),
			category_id BIGINT REFERENCES categories(id) ON DELETE SET NULL,
			description TEXT NOT NULL DEFAULT '',
			occurred_on DATE NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_expenses_owner_id ON expenses(owner_id)`,
		`CREATE INDEX IF NOT EXISTS idx_expenses_occurred_on ON expenses(occurred_on)`,
		`CREATE INDEX IF NOT EXISTS idx_expenses_category_id ON expenses(category_id)`,

		`CREATE TABLE IF NOT EXISTS incomes (
			id BIGSERIAL PRIMARY KEY,
			owner_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			amount DECIMAL(10, 2) NOT NULL CHECK (amount >= 0),
			description TEXT NOT NULL DEFAULT '',
			occurred_on DATE NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_incomes_owner_id ON incomes(owner_id)`,
		`CREATE INDEX IF NOT EXISTS idx_incomes_occurred_on ON incomes(occurred_on)`,

		`CREATE TABLE IF NOT EXISTS budgets (
			id BIGSERIAL PRIMARY KEY,
			owner_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			category_id BIGINT NOT NULL REFERENCES categories(id) ON DELETE CASCADE,
			amount DECIMAL(10, 2) NOT NULL CHECK (amount >= 0),
			start_date DATE NOT NULL,
			end_date DATE NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (owner_id, category_id)
		)`,

		`CREATE TABLE IF NOT EXISTS savings_goals (
			id BIGSERIAL PRIMARY KEY,
			owner_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			goal_name TEXT NOT NULL,
			target_amount DECIMAL(10, 2) NOT NULL CHECK (target_amount >= 0),
			current_amount DECIMAL(10, 2) NOT NULL DEFAULT 0 CHECK (current_amount >= 0),
			deadline DATE NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_savings_goals_owner_id ON savings_goals(owner_id)`,
	}

	for i, migration := range migrations {
		if _, err := pool.Exec(ctx, migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	return nil
}

// defaultCategories is the seed set of shared categories. They have no owner,
// are visible to every user, and are never deleted through the application.
var defaultCategories = []struct {
	Name        string
	Description string
}{
	{"Clothing", "Clothing, footwear, and accessories"},
	{"Entertainment", "Movies, games, and recreational activities"},
	{"Groceries", "Groceries, food, and household supplies"},
	{"Healthcare", "Medical expenses and insurance"},
	{"Housing", "Rent, utilities, and mortgage payments"},
	{"Miscellaneous", "Other expenses not covered by other categories"},
	{"Savings", "Money set aside for future uses"},
	{"Transportation", "Public transport, fuel, and vehicle maintenance"},
	{"Utilities", "Electricity, water, and other utility bills"},
}

// SeedDefaultCategories inserts the shared default categories. Safe to run
// on every startup.
func SeedDefaultCategories(ctx context.Context, pool *pgxpool.Pool) error {
	for _, cat := range defaultCategories {
		_, err := pool.Exec(ctx, `
			INSERT INTO categories (owner_id, name, description)
			VALUES (NULL, $1, $2)
			ON CONFLICT (name) WHERE owner_id IS NULL DO NOTHING
		`, cat.Name, cat.Description)
		if err != nil {
			return fmt.Errorf("failed to seed category %q: %w", cat.Name, err)
		}
	}

	return nil
}
