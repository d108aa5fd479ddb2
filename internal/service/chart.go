package service

import (
	"fmt"
	"sort"

	"github.com/go-analyze/charts"
	"github.com/shopspring/decimal"
	"gitlab.com/yelinaung/finance-tracker/internal/models"
)

// UncategorizedLabel buckets expenses whose category was deleted.
const UncategorizedLabel = "Uncategorized"

// RenderExpenseChart creates a pie chart showing expense breakdown by
// category. Returns PNG image bytes.
func RenderExpenseChart(expenses []models.Expense, title string) ([]byte, error) {
	if len(expenses) == 0 {
		return nil, fmt.Errorf("no expenses to chart")
	}

	totals := totalsByCategory(expenses)

	names := make([]string, 0, len(totals))
	for name := range totals {
		names = append(names, name)
	}
	sort.Strings(names)

	values := make([]float64, 0, len(names))
	for _, name := range names {
		values = append(values, totals[name].InexactFloat64())
	}

	p, err := charts.PieRender(
		values,
		charts.TitleOptionFunc(charts.TitleOption{Text: title}),
		charts.LegendLabelsOptionFunc(names),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create chart: %w", err)
	}

	buf, err := p.Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}

	return buf, nil
}

// totalsByCategory groups expenses and returns per-category totals.
func totalsByCategory(expenses []models.Expense) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal)

	for _, expense := range expenses {
		name := UncategorizedLabel
		if expense.Category != nil {
			name = expense.Category.Name
		}

		if existing, ok := totals[name]; ok {
			totals[name] = existing.Add(expense.Amount)
		} else {
			totals[name] = expense.Amount
		}
	}

	return totals
}
