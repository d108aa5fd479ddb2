package server

import (
	"net/http"
	"strings"
	"time"

	"gitlab.com/yelinaung/finance-tracker/internal/models"
	"gitlab.com/yelinaung/finance-tracker/internal/service"
)

type goalRequest struct {
	GoalName      string `json:"goal_name"`
	TargetAmount  string `json:"target_amount"`
	CurrentAmount string `json:"current_amount"`
	Deadline      string `json:"deadline"`
}

func goalFromRequest(ownerID int64, req *goalRequest) (*models.SavingsGoal, error) {
	name := strings.TrimSpace(req.GoalName)
	if name == "" {
		return nil, &service.ValidationError{Field: "goal_name", Reason: "must not be empty"}
	}
	if len(name) > models.MaxGoalNameLength {
		return nil, &service.ValidationError{Field: "goal_name", Reason: "must be at most 200 characters"}
	}
	target, err := parseAmount("target_amount", req.TargetAmount)
	if err != nil {
		return nil, err
	}
	current, err := parseAmount("current_amount", req.CurrentAmount)
	if err != nil {
		return nil, err
	}
	deadline, err := parseDate("deadline", req.Deadline)
	if err != nil {
		return nil, err
	}
	return &models.SavingsGoal{
		OwnerID:       ownerID,
		GoalName:      name,
		TargetAmount:  target,
		CurrentAmount: current,
		Deadline:      deadline,
	}, nil
}

// handleListGoals returns every savings goal annotated with progress and
// deadline distance as of today.
func (s *Server) handleListGoals(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	goals, err := s.goals.ListByOwner(r.Context(), user.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	now := time.Now()
	statuses := make([]service.GoalStatus, 0, len(goals))
	for _, g := range goals {
		statuses = append(statuses, service.GoalStatus{
			Goal:           g,
			AmountToGoal:   g.AmountToGoal(),
			DaysToDeadline: g.DaysToDeadline(now),
			DeadlinePassed: g.DeadlinePassed(now),
		})
	}
	writeJSON(w, http.StatusOK, toGoalStatusResponses(statuses))
}

func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	var req goalRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	goal, err := goalFromRequest(user.ID, &req)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.goals.Create(r.Context(), goal); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toGoalResponse(goal))
}

func (s *Server) handleUpdateGoal(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req goalRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	goal, err := goalFromRequest(user.ID, &req)
	if err != nil {
		writeError(w, err)
		return
	}
	goal.ID = id

	ok, err := s.goals.Update(r.Context(), goal)
	if err != nil {
		writeError(w, err)
		return
	}
	if !ok {
		writeError(w, service.ErrNotFound)
		return
	}
	writeJSON(w, http.StatusOK, toGoalResponse(goal))
}

func (s *Server) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	ok, err := s.goals.Delete(r.Context(), user.ID, id)
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
