package server

import (
	"net/http"
	"time"

	"gitlab.com/yelinaung/finance-tracker/internal/service"
)

// handleDashboard returns the monthly overview: totals, recent expenses,
// budget statuses over the month, and savings goal progress. Defaults to
// the current month; month and year query parameters select another one.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	now := time.Now()
	year, month, err := monthYearParams(r, now)
	if err != nil {
		writeError(w, err)
		return
	}

	snap, err := s.dashboardService.Snapshot(r.Context(), user.ID, year, month, now)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toDashboardResponse(snap))
}

// handleDashboardChart renders the month's expense breakdown by category
// as a PNG pie chart. A month with no expenses has nothing to chart.
func (s *Server) handleDashboardChart(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	year, month, err := monthYearParams(r, time.Now())
	if err != nil {
		writeError(w, err)
		return
	}

	from, to := service.MonthWindow(year, month)
	expenses, err := s.expenses.ListByOwnerAndRange(r.Context(), user.ID, from, to)
	if err != nil {
		writeError(w, err)
		return
	}
	if len(expenses) == 0 {
		writeErrorMessage(w, http.StatusNotFound, "no expenses in this month")
		return
	}

	png, err := service.RenderExpenseChart(expenses, monthTitle(year, month))
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(png); err != nil {
		return
	}
}
