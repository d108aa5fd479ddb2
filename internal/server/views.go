package server

import (
	"strconv"

	"github.com/shopspring/decimal"
	"gitlab.com/yelinaung/finance-tracker/internal/models"
	"gitlab.com/yelinaung/finance-tracker/internal/service"
)

// Response shapes for the JSON API. Dates render as YYYY-MM-DD and money
// as fixed two-decimal strings.

const dateLayout = "2006-01-02"

type userResponse struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type sessionResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type categoryResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Default     bool   `json:"default"`
}

type expenseResponse struct {
	ID          int64             `json:"id"`
	Amount      string            `json:"amount"`
	Category    *categoryResponse `json:"category"`
	Description string            `json:"description"`
	Date        string            `json:"date"`
}

type incomeResponse struct {
	ID          int64  `json:"id"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
	Date        string `json:"date"`
}

type budgetResponse struct {
	ID        int64            `json:"id"`
	Category  categoryResponse `json:"category"`
	Amount    string           `json:"amount"`
	StartDate string           `json:"start_date"`
	EndDate   string           `json:"end_date"`
}

type budgetStatusResponse struct {
	budgetResponse
	ValueSpent string `json:"value_spent"`
	Available  string `json:"budget_available"`
}

type goalResponse struct {
	ID            int64  `json:"id"`
	GoalName      string `json:"goal_name"`
	TargetAmount  string `json:"target_amount"`
	CurrentAmount string `json:"current_amount"`
	Deadline      string `json:"deadline"`
}

type goalStatusResponse struct {
	goalResponse
	AmountToGoal   string `json:"amount_to_goal"`
	DaysToDeadline int    `json:"days_to_deadline"`
	DeadlineLabel  string `json:"deadline_label"`
}

type dashboardResponse struct {
	Year           int                    `json:"year"`
	Month          int                    `json:"month"`
	TotalIncome    string                 `json:"total_income"`
	TotalExpenses  string                 `json:"total_expenses"`
	Balance        string                 `json:"balance"`
	RecentExpenses []expenseResponse      `json:"recent_expenses"`
	Budgets        []budgetStatusResponse `json:"budgets"`
	SavingsGoals   []goalStatusResponse   `json:"savings_goals"`
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}

func toCategoryResponse(c *models.Category) categoryResponse {
	return categoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Default:     c.IsDefault(),
	}
}

func toCategoryResponses(cats []models.Category) []categoryResponse {
	out := make([]categoryResponse, 0, len(cats))
	for i := range cats {
		out = append(out, toCategoryResponse(&cats[i]))
	}
	return out
}

func toExpenseResponse(e *models.Expense) expenseResponse {
	resp := expenseResponse{
		ID:          e.ID,
		Amount:      money(e.Amount),
		Description: e.Description,
		Date:        e.OccurredOn.Format(dateLayout),
	}
	if e.Category != nil {
		cat := toCategoryResponse(e.Category)
		resp.Category = &cat
	}
	return resp
}

func toExpenseResponses(expenses []models.Expense) []expenseResponse {
	out := make([]expenseResponse, 0, len(expenses))
	for i := range expenses {
		out = append(out, toExpenseResponse(&expenses[i]))
	}
	return out
}

func toIncomeResponse(in *models.Income) incomeResponse {
	return incomeResponse{
		ID:          in.ID,
		Amount:      money(in.Amount),
		Description: in.Description,
		Date:        in.OccurredOn.Format(dateLayout),
	}
}

func toIncomeResponses(incomes []models.Income) []incomeResponse {
	out := make([]incomeResponse, 0, len(incomes))
	for i := range incomes {
		out = append(out, toIncomeResponse(&incomes[i]))
	}
	return out
}

func toBudgetResponse(b *models.Budget) budgetResponse {
	resp := budgetResponse{
		ID:        b.ID,
		Amount:    money(b.Amount),
		StartDate: b.StartDate.Format(dateLayout),
		EndDate:   b.EndDate.Format(dateLayout),
	}
	if b.Category != nil {
		resp.Category = toCategoryResponse(b.Category)
	}
	return resp
}

func toBudgetStatusResponse(st *service.BudgetStatus) budgetStatusResponse {
	return budgetStatusResponse{
		budgetResponse: toBudgetResponse(&st.Budget),
		ValueSpent:     money(st.ValueSpent),
		Available:      money(st.Available),
	}
}

func toBudgetStatusResponses(statuses []service.BudgetStatus) []budgetStatusResponse {
	out := make([]budgetStatusResponse, 0, len(statuses))
	for i := range statuses {
		out = append(out, toBudgetStatusResponse(&statuses[i]))
	}
	return out
}

func toGoalResponse(g *models.SavingsGoal) goalResponse {
	return goalResponse{
		ID:            g.ID,
		GoalName:      g.GoalName,
		TargetAmount:  money(g.TargetAmount),
		CurrentAmount: money(g.CurrentAmount),
		Deadline:      g.Deadline.Format(dateLayout),
	}
}

func toGoalStatusResponse(st *service.GoalStatus) goalStatusResponse {
	label := deadlineLabel(st.DaysToDeadline)
	return goalStatusResponse{
		goalResponse:   toGoalResponse(&st.Goal),
		AmountToGoal:   money(st.AmountToGoal),
		DaysToDeadline: st.DaysToDeadline,
		DeadlineLabel:  label,
	}
}

func toGoalStatusResponses(statuses []service.GoalStatus) []goalStatusResponse {
	out := make([]goalStatusResponse, 0, len(statuses))
	for i := range statuses {
		out = append(out, toGoalStatusResponse(&statuses[i]))
	}
	return out
}

// deadlineLabel renders the deadline distance for display. A negative day
// count is a passed deadline, not an error state.
func deadlineLabel(days int) string {
	switch {
	case days < 0:
		return "Deadline passed"
	case days == 0:
		return "Due today"
	case days == 1:
		return "1 day left"
	default:
		return strconv.Itoa(days) + " days left"
	}
}

func toDashboardResponse(snap *service.Snapshot) dashboardResponse {
	return dashboardResponse{
		Year:           snap.Year,
		Month:          int(snap.Month),
		TotalIncome:    money(snap.TotalIncome),
		TotalExpenses:  money(snap.TotalExpenses),
		Balance:        money(snap.Balance),
		RecentExpenses: toExpenseResponses(snap.RecentExpenses),
		Budgets:        toBudgetStatusResponses(snap.Budgets),
		SavingsGoals:   toGoalStatusResponses(snap.SavingsGoals),
	}
}
