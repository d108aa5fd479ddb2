package repository

import (
	"context"
	"fmt"

	"gitlab.com/yelinaung/finance-tracker/internal/database"
	"gitlab.com/yelinaung/finance-tracker/internal/models"
)

// SavingsGoalRepository handles savings goal database operations.
type SavingsGoalRepository struct {
	db database.PGXDB
}

// NewSavingsGoalRepository creates a new SavingsGoalRepository.
func NewSavingsGoalRepository(db database.PGXDB) *SavingsGoalRepository {
	return &SavingsGoalRepository{db: db}
}

// Create adds a new savings goal.
func (r *SavingsGoalRepository) Create(ctx context.Context, goal *models.SavingsGoal) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO savings_goals (owner_id, goal_name, target_amount, current_amount, deadline)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, goal.OwnerID, goal.GoalName, goal.TargetAmount, goal.CurrentAmount,
		models.DateOnly(goal.Deadline),
	).Scan(&goal.ID, &goal.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create savings goal: %w", err)
	}
	return nil
}

// GetByIDForOwner retrieves one of the owner's savings goals by ID.
func (r *SavingsGoalRepository) GetByIDForOwner(ctx context.Context, ownerID, id int64) (*models.SavingsGoal, error) {
	var g models.SavingsGoal
	err := r.db.QueryRow(ctx, `
		SELECT id, owner_id, goal_name, target_amount, current_amount, deadline, created_at
		FROM savings_goals WHERE id = $1 AND owner_id = $2
	`, id, ownerID).Scan(&g.ID, &g.OwnerID, &g.GoalName, &g.TargetAmount,
		&g.CurrentAmount, &g.Deadline, &g.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get savings goal: %w", err)
	}
	return &g, nil
}

// ListByOwner retrieves all savings goals for a user in insertion order.
func (r *SavingsGoalRepository) ListByOwner(ctx context.Context, ownerID int64) ([]models.SavingsGoal, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, owner_id, goal_name, target_amount, current_amount, deadline, created_at
		FROM savings_goals WHERE owner_id = $1
		ORDER BY id
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query savings goals: %w", err)
	}
	defer rows.Close()

	var goals []models.SavingsGoal
	for rows.Next() {
		var g models.SavingsGoal
		if err := rows.Scan(&g.ID, &g.OwnerID, &g.GoalName, &g.TargetAmount,
			&g.CurrentAmount, &g.Deadline, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan savings goal: %w", err)
		}
		goals = append(goals, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating savings goals: %w", err)
	}
	return goals, nil
}

// Update modifies one of the owner's savings goals. Returns false when the
// goal does not exist or belongs to another user.
func (r *SavingsGoalRepository) Update(ctx context.Context, goal *models.SavingsGoal) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE savings_goals SET
			goal_name = $3,
			target_amount = $4,
			current_amount = $5,
			deadline = $6
		WHERE id = $1 AND owner_id = $2
	`, goal.ID, goal.OwnerID, goal.GoalName, goal.TargetAmount, goal.CurrentAmount,
		models.DateOnly(goal.Deadline))
	if err != nil {
		return false, fmt.Errorf("failed to update savings goal: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// Delete removes one of the owner's savings goals. Returns false when the
// goal does not exist or belongs to another user.
func (r *SavingsGoalRepository) Delete(ctx context.Context, ownerID, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM savings_goals WHERE id = $1 AND owner_id = $2
	`, id, ownerID)
	if err != nil {
		return false, fmt.Errorf("failed to delete savings goal: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
