package server

import (
	"net/http"
	"time"
)

type budgetRequest struct {
	CategoryID int64  `json:"category_id"`
	Amount     string `json:"amount"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
}

func (req *budgetRequest) dates() (time.Time, time.Time, error) {
	start, err := parseDate("start_date", req.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := parseDate("end_date", req.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

// handleListBudgets returns every budget with its spend-to-date over the
// budget's own window.
func (s *Server) handleListBudgets(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	statuses, err := s.budgetService.ListStatuses(r.Context(), user.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBudgetStatusResponses(statuses))
}

func (s *Server) handleCreateBudget(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	var req budgetRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	amount, err := parseAmount("amount", req.Amount)
	if err != nil {
		writeError(w, err)
		return
	}
	start, end, err := req.dates()
	if err != nil {
		writeError(w, err)
		return
	}

	budget, err := s.budgetService.Create(r.Context(), user.ID, req.CategoryID, amount, start, end)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toBudgetResponse(budget))
}

func (s *Server) handleUpdateBudget(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req budgetRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	amount, err := parseAmount("amount", req.Amount)
	if err != nil {
		writeError(w, err)
		return
	}
	start, end, err := req.dates()
	if err != nil {
		writeError(w, err)
		return
	}

	budget, err := s.budgetService.Update(r.Context(), user.ID, id, req.CategoryID, amount, start, end)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBudgetResponse(budget))
}

func (s *Server) handleDeleteBudget(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := s.budgetService.Delete(r.Context(), user.ID, id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
