package repository

import (
	"context"
	"fmt"
	"time"

	"gitlab.com/yelinaung/finance-tracker/internal/database"
	"gitlab.com/yelinaung/finance-tracker/internal/models"
)

// IncomeRepository handles income database operations.
type IncomeRepository struct {
	db database.PGXDB
}

// NewIncomeRepository creates a new IncomeRepository.
func NewIncomeRepository(db database.PGXDB) *IncomeRepository {
	return &IncomeRepository{db: db}
}

// Create adds a new income entry.
func (r *IncomeRepository) Create(ctx context.Context, income *models.Income) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO incomes (owner_id, amount, description, occurred_on)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, income.OwnerID, income.Amount, income.Description, models.DateOnly(income.OccurredOn),
	).Scan(&income.ID, &income.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create income: %w", err)
	}
	return nil
}

// GetByIDForOwner retrieves one of the owner's income entries by ID.
func (r *IncomeRepository) GetByIDForOwner(ctx context.Context, ownerID, id int64) (*models.Income, error) {
	var inc models.Income
	err := r.db.QueryRow(ctx, `
		SELECT id, owner_id, amount, description, occurred_on, created_at
		FROM incomes WHERE id = $1 AND owner_id = $2
	`, id, ownerID).Scan(&inc.ID, &inc.OwnerID, &inc.Amount, &inc.Description, &inc.OccurredOn, &inc.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get income: %w", err)
	}
	return &inc, nil
}

// ListByOwner retrieves all income entries for a user, newest first.
func (r *IncomeRepository) ListByOwner(ctx context.Context, ownerID int64) ([]models.Income, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, owner_id, amount, description, occurred_on, created_at
		FROM incomes WHERE owner_id = $1
		ORDER BY occurred_on DESC, id DESC
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query incomes: %w", err)
	}
	defer rows.Close()

	return scanIncomes(rows)
}

// ListByOwnerAndRange retrieves income entries for a user whose dates fall
// inside the inclusive [from, to] range.
func (r *IncomeRepository) ListByOwnerAndRange(
	ctx context.Context,
	ownerID int64,
	from, to time.Time,
) ([]models.Income, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, owner_id, amount, description, occurred_on, created_at
		FROM incomes
		WHERE owner_id = $1 AND occurred_on >= $2 AND occurred_on <= $3
		ORDER BY occurred_on DESC, id DESC
	`, ownerID, models.DateOnly(from), models.DateOnly(to))
	if err != nil {
		return nil, fmt.Errorf("failed to query incomes by date range: %w", err)
	}
	defer rows.Close()

	return scanIncomes(rows)
}

// Update modifies one of the owner's income entries. Returns false when
// the income does not exist or belongs to another user.
func (r *IncomeRepository) Update(ctx context.Context, income *models.Income) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE incomes SET
			amount = $3,
			description = $4,
			occurred_on = $5
		WHERE id = $1 AND owner_id = $2
	`, income.ID, income.OwnerID, income.Amount, income.Description, models.DateOnly(income.OccurredOn))
	if err != nil {
		return false, fmt.Errorf("failed to update income: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// Delete removes one of the owner's income entries. Returns false when
// the income does not exist or belongs to another user.
func (r *IncomeRepository) Delete(ctx context.Context, ownerID, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM incomes WHERE id = $1 AND owner_id = $2
	`, id, ownerID)
	if err != nil {
		return false, fmt.Errorf("failed to delete income: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// scanIncomes is a helper to scan income rows.
func scanIncomes(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
},
) ([]models.Income, error) {
	var incomes []models.Income
	for rows.Next() {
		var inc models.Income
		if err := rows.Scan(&inc.ID, &inc.OwnerID, &inc.Amount, &inc.Description, &inc.OccurredOn, &inc.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan income: %w", err)
		}
		incomes = append(incomes, inc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating incomes: %w", err)
	}
	return incomes, nil
}
