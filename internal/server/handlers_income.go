package server

import (
	"net/http"
	"time"

	"gitlab.com/yelinaung/finance-tracker/internal/models"
	"gitlab.com/yelinaung/finance-tracker/internal/service"
)

type incomeRequest struct {
	Amount      string `json:"amount"`
	Description string `json:"description"`
	Date        string `json:"date"`
}

func incomeFromRequest(ownerID int64, req *incomeRequest) (*models.Income, error) {
	amount, err := parseAmount("amount", req.Amount)
	if err != nil {
		return nil, err
	}
	occurredOn, err := parseDate("date", req.Date)
	if err != nil {
		return nil, err
	}
	return &models.Income{
		OwnerID:     ownerID,
		Amount:      amount,
		Description: req.Description,
		OccurredOn:  occurredOn,
	}, nil
}

func (s *Server) handleListIncomes(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	var (
		incomes []models.Income
		err     error
	)
	if r.URL.Query().Get("month") != "" || r.URL.Query().Get("year") != "" {
		year, month, perr := monthYearParams(r, time.Now())
		if perr != nil {
			writeError(w, perr)
			return
		}
		from, to := service.MonthWindow(year, month)
		incomes, err = s.incomes.ListByOwnerAndRange(r.Context(), user.ID, from, to)
	} else {
		incomes, err = s.incomes.ListByOwner(r.Context(), user.ID)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toIncomeResponses(incomes))
}

func (s *Server) handleCreateIncome(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	var req incomeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	income, err := incomeFromRequest(user.ID, &req)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.incomes.Create(r.Context(), income); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toIncomeResponse(income))
}

func (s *Server) handleUpdateIncome(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req incomeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	income, err := incomeFromRequest(user.ID, &req)
	if err != nil {
		writeError(w, err)
		return
	}
	income.ID = id

	ok, err := s.incomes.Update(r.Context(), income)
	if err != nil {
		writeError(w, err)
		return
	}
	if !ok {
		writeError(w, service.ErrNotFound)
		return
	}
	writeJSON(w, http.StatusOK, toIncomeResponse(income))
}

func (s *Server) handleDeleteIncome(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	ok, err := s.incomes.Delete(r.Context(), user.ID, id)
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
