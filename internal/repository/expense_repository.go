package repository

import (
	"context"
	"fmt"
	"time"

	"gitlab.com/yelinaung/finance-tracker/internal/database"
	"gitlab.com/yelinaung/finance-tracker/internal/models"
)

// ExpenseRepository handles expense database operations.
type ExpenseRepository struct {
	db database.PGXDB
}

// NewExpenseRepository creates a new ExpenseRepository.
func NewExpenseRepository(db database.PGXDB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

// Create adds a new expense.
func (r *ExpenseRepository) Create(ctx context.Context, expense *models.Expense) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO expenses (owner_id, amount, category_id, description, occurred_on)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, expense.OwnerID, expense.Amount, expense.CategoryID, expense.Description,
		models.DateOnly(expense.OccurredOn),
	).Scan(&expense.ID, &expense.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}
	return nil
}

// GetByIDForOwner retrieves one of the owner's expenses by ID.
func (r *ExpenseRepository) GetByIDForOwner(ctx context.Context, ownerID, id int64) (*models.Expense, error) {
	var exp models.Expense
	err := r.db.QueryRow(ctx, `
		SELECT id, owner_id, amount, category_id, description, occurred_on, created_at
		FROM expenses WHERE id = $1 AND owner_id = $2
	`, id, ownerID).Scan(&exp.ID, &exp.OwnerID, &exp.Amount, &exp.CategoryID,
		&exp.Description, &exp.OccurredOn, &exp.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	return &exp, nil
}

// ListByOwner retrieves all expenses for a user, newest first.
func (r *ExpenseRepository) ListByOwner(ctx context.Context, ownerID int64) ([]models.Expense, error) {
	rows, err := r.db.Query(ctx, `
		SELECT e.id, e.owner_id, e.amount, e.category_id, e.description, e.occurred_on, e.created_at,
		       c.id, c.owner_id, c.name, c.description, c.created_at
		FROM expenses e
		LEFT JOIN categories c ON e.category_id = c.id
		WHERE e.owner_id = $1
		ORDER BY e.occurred_on DESC, e.id DESC
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	return scanExpenses(rows)
}

// ListByOwnerAndRange retrieves expenses for a user whose dates fall inside
// the inclusive [from, to] range.
func (r *ExpenseRepository) ListByOwnerAndRange(
	ctx context.Context,
	ownerID int64,
	from, to time.Time,
) ([]models.Expense, error) {
	rows, err := r.db.Query(ctx, `
		SELECT e.id, e.owner_id, e.amount, e.category_id, e.description, e.occurred_on, e.created_at,
		       c.id, c.owner_id, c.name, c.description, c.created_at
		FROM expenses e
		LEFT JOIN categories c ON e.category_id = c.id
		WHERE e.owner_id = $1 AND e.occurred_on >= $2 AND e.occurred_on <= $3
		ORDER BY e.occurred_on DESC, e.id DESC
	`, ownerID, models.DateOnly(from), models.DateOnly(to))
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses by date range: %w", err)
	}
	defer rows.Close()

	return scanExpenses(rows)
}

// Update modifies one of the owner's expenses. Returns false when the
// expense does not exist or belongs to another user.
func (r *ExpenseRepository) Update(ctx context.Context, expense *models.Expense) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE expenses SET
			amount = $3,
			category_id = $4,
			description = $5,
			occurred_on = $6
		WHERE id = $1 AND owner_id = $2
	`, expense.ID, expense.OwnerID, expense.Amount, expense.CategoryID,
		expense.Description, models.DateOnly(expense.OccurredOn))
	if err != nil {
		return false, fmt.Errorf("failed to update expense: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// Delete removes one of the owner's expenses. Returns false when the
// expense does not exist or belongs to another user.
func (r *ExpenseRepository) Delete(ctx context.Context, ownerID, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM expenses WHERE id = $1 AND owner_id = $2
	`, id, ownerID)
	if err != nil {
		return false, fmt.Errorf("failed to delete expense: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// scanExpenses is a helper to scan expense rows with category joins.
func scanExpenses(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
},
) ([]models.Expense, error) {
	var expenses []models.Expense
	for rows.Next() {
		var exp models.Expense
		var catID, catOwnerID *int64
		var catName, catDescription *string
		var catCreatedAt *time.Time

		if err := rows.Scan(
			&exp.ID, &exp.OwnerID, &exp.Amount, &exp.CategoryID,
			&exp.Description, &exp.OccurredOn, &exp.CreatedAt,
			&catID, &catOwnerID, &catName, &catDescription, &catCreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}

		if catID != nil {
			exp.Category = &models.Category{
				ID:          *catID,
				OwnerID:     catOwnerID,
				Name:        *catName,
				Description: *catDescription,
				CreatedAt:   *catCreatedAt,
			}
		}
		expenses = append(expenses, exp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expenses: %w", err)
	}
	return expenses, nil
}
