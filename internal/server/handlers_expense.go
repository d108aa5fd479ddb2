package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"gitlab.com/yelinaung/finance-tracker/internal/models"
	"gitlab.com/yelinaung/finance-tracker/internal/service"
)

type expenseRequest struct {
	Amount      string `json:"amount"`
	CategoryID  *int64 `json:"category_id"`
	Description string `json:"description"`
	Date        string `json:"date"`
}

// parseAmount parses a non-negative decimal amount from a request field.
func parseAmount(field, value string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, &service.ValidationError{Field: field, Reason: "must be a decimal number"}
	}
	if amount.IsNegative() {
		return decimal.Zero, &service.ValidationError{Field: field, Reason: "must not be negative"}
	}
	return amount, nil
}

func (s *Server) expenseFromRequest(r *http.Request, ownerID int64, req *expenseRequest) (*models.Expense, error) {
	amount, err := parseAmount("amount", req.Amount)
	if err != nil {
		return nil, err
	}
	occurredOn, err := parseDate("date", req.Date)
	if err != nil {
		return nil, err
	}
	if req.CategoryID != nil {
		if _, err := s.categoryService.VisibleByID(r.Context(), ownerID, *req.CategoryID); err != nil {
			return nil, err
		}
	}
	return &models.Expense{
		OwnerID:     ownerID,
		Amount:      amount,
		CategoryID:  req.CategoryID,
		Description: req.Description,
		OccurredOn:  occurredOn,
	}, nil
}

// handleListExpenses lists the user's expenses, newest first. With month or
// year query parameters it narrows to that month.
func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	var (
		expenses []models.Expense
		err      error
	)
	if r.URL.Query().Get("month") != "" || r.URL.Query().Get("year") != "" {
		year, month, perr := monthYearParams(r, time.Now())
		if perr != nil {
			writeError(w, perr)
			return
		}
		from, to := service.MonthWindow(year, month)
		expenses, err = s.expenses.ListByOwnerAndRange(r.Context(), user.ID, from, to)
	} else {
		expenses, err = s.expenses.ListByOwner(r.Context(), user.ID)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toExpenseResponses(expenses))
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	var req expenseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	expense, err := s.expenseFromRequest(r, user.ID, &req)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.expenses.Create(r.Context(), expense); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toExpenseResponse(expense))
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req expenseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	expense, err := s.expenseFromRequest(r, user.ID, &req)
	if err != nil {
		writeError(w, err)
		return
	}
	expense.ID = id

	ok, err := s.expenses.Update(r.Context(), expense)
	if err != nil {
		writeError(w, err)
		return
	}
	if !ok {
		writeError(w, service.ErrNotFound)
		return
	}
	writeJSON(w, http.StatusOK, toExpenseResponse(expense))
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	ok, err := s.expenses.Delete(r.Context(), user.ID, id)
	if err != nil {
		writeError(w, err)
		return
	}
	if !ok {
		writeError(w, service.ErrNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleExportExpenses streams the user's full expense history as CSV.
func (s *Server) handleExportExpenses(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	expenses, err := s.expenses.ListByOwner(r.Context(), user.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	data, err := service.ExpensesCSV(expenses)
	if err != nil {
		writeError(w, err)
		return
	}

	filename := fmt.Sprintf("expenses_%s.csv", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		return
	}
}
