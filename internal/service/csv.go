package service

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"gitlab.com/yelinaung/finance-tracker/internal/models"
)

// ExpensesCSV renders a user's expenses as a CSV export.
func ExpensesCSV(expenses []models.Expense) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	header := []string{"ID", "Date", "Amount", "Category", "Description"}
	if err := writer.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	for i := range expenses {
		categoryName := UncategorizedLabel
		if expenses[i].Category != nil {
			categoryName = expenses[i].Category.Name
		}

		row := []string{
			strconv.FormatInt(expenses[i].ID, 10),
			expenses[i].OccurredOn.Format("2006-01-02"),
			expenses[i].Amount.StringFixed(2),
			categoryName,
			expenses[i].Description,
		}

		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}
