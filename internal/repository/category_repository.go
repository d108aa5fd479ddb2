package repository

import (
	"context"
	"fmt"

	"gitlab.com/yelinaung/finance-tracker/internal/database"
	"gitlab.com/yelinaung/finance-tracker/internal/models"
)

// CategoryRepository handles category database operations.
type CategoryRepository struct {
	db database.PGXDB
}

// NewCategoryRepository creates a new CategoryRepository.
func NewCategoryRepository(db database.PGXDB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// ListOwned retrieves all categories owned by the given user.
func (r *CategoryRepository) ListOwned(ctx context.Context, ownerID int64) ([]models.Category, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, owner_id, name, description, created_at
		FROM categories WHERE owner_id = $1
		ORDER BY name
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query owned categories: %w", err)
	}
	defer rows.Close()

	return scanCategories(rows)
}

// ListDefaults retrieves all shared default categories.
func (r *CategoryRepository) ListDefaults(ctx context.Context) ([]models.Category, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, owner_id, name, description, created_at
		FROM categories WHERE owner_id IS NULL
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query default categories: %w", err)
	}
	defer rows.Close()

	return scanCategories(rows)
}

// GetByID retrieves a category by ID, owned or default.
func (r *CategoryRepository) GetByID(ctx context.Context, id int64) (*models.Category, error) {
	var cat models.Category
	err := r.db.QueryRow(ctx, `
		SELECT id, owner_id, name, description, created_at
		FROM categories WHERE id = $1
	`, id).Scan(&cat.ID, &cat.OwnerID, &cat.Name, &cat.Description, &cat.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return &cat, nil
}

// OwnedNameExists reports whether the user already owns a category with the name.
func (r *CategoryRepository) OwnedNameExists(ctx context.Context, ownerID int64, name string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM categories WHERE owner_id = $1 AND name = $2)
	`, ownerID, name).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check owned category name: %w", err)
	}
	return exists, nil
}

// DefaultNameExists reports whether a default category with the name exists.
func (r *CategoryRepository) DefaultNameExists(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM categories WHERE owner_id IS NULL AND name = $1)
	`, name).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check default category name: %w", err)
	}
	return exists, nil
}

// Create adds a new category owned by the given user.
func (r *CategoryRepository) Create(ctx context.Context, ownerID int64, name, description string) (*models.Category, error) {
	var cat models.Category
	err := r.db.QueryRow(ctx, `
		INSERT INTO categories (owner_id, name, description)
		VALUES ($1, $2, $3)
		RETURNING id, owner_id, name, description, created_at
	`, ownerID, name, description).Scan(&cat.ID, &cat.OwnerID, &cat.Name, &cat.Description, &cat.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return &cat, nil
}

// Update modifies the name and description of a category.
func (r *CategoryRepository) Update(ctx context.Context, id int64, name, description string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE categories SET name = $2, description = $3 WHERE id = $1
	`, id, name, description)
	if err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}
	return nil
}

// Delete removes a category by ID. Expenses referencing it are set to
// uncategorized and budgets referencing it are removed, both at the
// database level.
func (r *CategoryRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return nil
}

// scanCategories is a helper to scan category rows.
func scanCategories(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
},
) ([]models.Category, error) {
	var categories []models.Category
	for rows.Next() {
		var cat models.Category
		if err := rows.Scan(&cat.ID, &cat.OwnerID, &cat.Name, &cat.Description, &cat.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, cat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}
	return categories, nil
}
