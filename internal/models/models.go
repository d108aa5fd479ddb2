// Package models defines the domain entities for the finance tracker.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaxCategoryNameLength is the maximum allowed length for category names.
const MaxCategoryNameLength = 100

// MaxGoalNameLength is the maximum allowed length for savings goal names.
const MaxGoalNameLength = 200

// User represents a registered account.
type User struct {
	ID           int64
	Username     string
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Category represents an expense category. A nil OwnerID marks a shared
// default category, visible to every user until they shadow it with an
// owned category of the same name.
type Category struct {
	ID          int64
	OwnerID     *int64
	Name        string
	Description string
	CreatedAt   time.Time
}

// IsDefault reports whether the category is a shared default.
func (c *Category) IsDefault() bool {
	return c.OwnerID == nil
}

// OwnedBy reports whether the category belongs to the given user.
func (c *Category) OwnedBy(userID int64) bool {
	return c.OwnerID != nil && *c.OwnerID == userID
}

// Expense represents a single expense entry. CategoryID is nullable:
// deleting a category keeps its expenses around as uncategorized.
type Expense struct {
	ID          int64
	OwnerID     int64
	Amount      decimal.Decimal
	CategoryID  *int64
	Category    *Category
	Description string
	OccurredOn  time.Time
	CreatedAt   time.Time
}

// Income represents a single income entry.
type Income struct {
	ID          int64
	OwnerID     int64
	Amount      decimal.Decimal
	Description string
	OccurredOn  time.Time
	CreatedAt   time.Time
}

// Budget caps spending for one category over a date window.
// At most one budget exists per (owner, category) pair.
type Budget struct {
	ID         int64
	OwnerID    int64
	CategoryID int64
	Category   *Category
	Amount     decimal.Decimal
	StartDate  time.Time
	EndDate    time.Time
	CreatedAt  time.Time
}

// Contains reports whether day falls inside the budget window.
// Both ends are inclusive, so StartDate == EndDate is a valid one-day window.
func (b *Budget) Contains(day time.Time) bool {
	d := DateOnly(day)
	return !d.Before(DateOnly(b.StartDate)) && !d.After(DateOnly(b.EndDate))
}

// SavingsGoal tracks progress toward a savings target with a deadline.
type SavingsGoal struct {
	ID            int64
	OwnerID       int64
	GoalName      string
	TargetAmount  decimal.Decimal
	CurrentAmount decimal.Decimal
	Deadline      time.Time
	CreatedAt     time.Time
}

// AmountToGoal returns the amount still missing to reach the target.
func (g *SavingsGoal) AmountToGoal() decimal.Decimal {
	return g.TargetAmount.Sub(g.CurrentAmount)
}

// DaysToDeadline returns the number of calendar days between now and the
// deadline. The value is negative once the deadline has passed.
func (g *SavingsGoal) DaysToDeadline(now time.Time) int {
	return int(DateOnly(g.Deadline).Sub(DateOnly(now)).Hours() / 24)
}

// DeadlinePassed reports whether the deadline is behind now.
func (g *SavingsGoal) DeadlinePassed(now time.Time) bool {
	return g.DaysToDeadline(now) < 0
}

// DateOnly strips the time-of-day portion, keeping the calendar date in UTC.
// All date comparisons in budgets and dashboards operate on date-only values.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
