package repository

import (
	"context"
	"fmt"

	"gitlab.com/yelinaung/finance-tracker/internal/database"
	"gitlab.com/yelinaung/finance-tracker/internal/models"
)

// BudgetRepository handles budget database operations.
type BudgetRepository struct {
	db database.PGXDB
}

// NewBudgetRepository creates a new BudgetRepository.
func NewBudgetRepository(db database.PGXDB) *BudgetRepository {
	return &BudgetRepository{db: db}
}

// Create adds a new budget. The (owner_id, category_id) pair is unique at
// the database level.
func (r *BudgetRepository) Create(ctx context.Context, budget *models.Budget) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO budgets (owner_id, category_id, amount, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, budget.OwnerID, budget.CategoryID, budget.Amount,
		models.DateOnly(budget.StartDate), models.DateOnly(budget.EndDate),
	).Scan(&budget.ID, &budget.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create budget: %w", err)
	}
	return nil
}

// GetByIDForOwner retrieves one of the owner's budgets by ID.
func (r *BudgetRepository) GetByIDForOwner(ctx context.Context, ownerID, id int64) (*models.Budget, error) {
	var b models.Budget
	var cat models.Category
	err := r.db.QueryRow(ctx, `
		SELECT b.id, b.owner_id, b.category_id, b.amount, b.start_date, b.end_date, b.created_at,
		       c.id, c.owner_id, c.name, c.description, c.created_at
		FROM budgets b
		JOIN categories c ON b.category_id = c.id
		WHERE b.id = $1 AND b.owner_id = $2
	`, id, ownerID).Scan(
		&b.ID, &b.OwnerID, &b.CategoryID, &b.Amount, &b.StartDate, &b.EndDate, &b.CreatedAt,
		&cat.ID, &cat.OwnerID, &cat.Name, &cat.Description, &cat.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get budget: %w", err)
	}
	b.Category = &cat
	return &b, nil
}

// ListByOwner retrieves all budgets for a user in insertion order.
func (r *BudgetRepository) ListByOwner(ctx context.Context, ownerID int64) ([]models.Budget, error) {
	rows, err := r.db.Query(ctx, `
		SELECT b.id, b.owner_id, b.category_id, b.amount, b.start_date, b.end_date, b.created_at,
		       c.id, c.owner_id, c.name, c.description, c.created_at
		FROM budgets b
		JOIN categories c ON b.category_id = c.id
		WHERE b.owner_id = $1
		ORDER BY b.id
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query budgets: %w", err)
	}
	defer rows.Close()

	var budgets []models.Budget
	for rows.Next() {
		var b models.Budget
		var cat models.Category
		if err := rows.Scan(
			&b.ID, &b.OwnerID, &b.CategoryID, &b.Amount, &b.StartDate, &b.EndDate, &b.CreatedAt,
			&cat.ID, &cat.OwnerID, &cat.Name, &cat.Description, &cat.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan budget: %w", err)
		}
		b.Category = &cat
		budgets = append(budgets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating budgets: %w", err)
	}
	return budgets, nil
}

// ExistsForCategory reports whether the user already has a budget for the category.
func (r *BudgetRepository) ExistsForCategory(ctx context.Context, ownerID, categoryID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM budgets WHERE owner_id = $1 AND category_id = $2)
	`, ownerID, categoryID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check budget existence: %w", err)
	}
	return exists, nil
}

// Update modifies one of the owner's budgets. Returns false when the budget
// does not exist or belongs to another user.
func (r *BudgetRepository) Update(ctx context.Context, budget *models.Budget) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE budgets SET
			category_id = $3,
			amount = $4,
			start_date = $5,
			end_date = $6
		WHERE id = $1 AND owner_id = $2
	`, budget.ID, budget.OwnerID, budget.CategoryID, budget.Amount,
		models.DateOnly(budget.StartDate), models.DateOnly(budget.EndDate))
	if err != nil {
		return false, fmt.Errorf("failed to update budget: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// Delete removes one of the owner's budgets. Returns false when the budget
// does not exist or belongs to another user.
func (r *BudgetRepository) Delete(ctx context.Context, ownerID, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM budgets WHERE id = $1 AND owner_id = $2
	`, id, ownerID)
	if err != nil {
		return false, fmt.Errorf("failed to delete budget: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
