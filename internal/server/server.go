// Package server exposes the finance tracker over a JSON HTTP API.
//
// Authentication, session handling, and rendering live at this boundary;
// the business rules live in internal/service. Every data-touching route
// is scoped to the authenticated user.
package server

import (
	"net/http"

	"gitlab.com/yelinaung/finance-tracker/internal/auth"
	"gitlab.com/yelinaung/finance-tracker/internal/config"
	"gitlab.com/yelinaung/finance-tracker/internal/database"
	"gitlab.com/yelinaung/finance-tracker/internal/repository"
	"gitlab.com/yelinaung/finance-tracker/internal/service"
)

// Server wires repositories, services, and routes.
type Server struct {
	cfg    *config.Config
	tokens *auth.TokenManager

	users      *repository.UserRepository
	categories *repository.CategoryRepository
	expenses   *repository.ExpenseRepository
	incomes    *repository.IncomeRepository
	goals      *repository.SavingsGoalRepository

	categoryService  *service.CategoryService
	budgetService    *service.BudgetService
	dashboardService *service.DashboardService

	mux *http.ServeMux
}

// New creates a Server on top of the given database handle.
func New(cfg *config.Config, db database.PGXDB) *Server {
	users := repository.NewUserRepository(db)
	categories := repository.NewCategoryRepository(db)
	expenses := repository.NewExpenseRepository(db)
	incomes := repository.NewIncomeRepository(db)
	budgets := repository.NewBudgetRepository(db)
	goals := repository.NewSavingsGoalRepository(db)

	s := &Server{
		cfg:    cfg,
		tokens: auth.NewTokenManager(cfg.JWTSecret, cfg.SessionTTL),

		users:      users,
		categories: categories,
		expenses:   expenses,
		incomes:    incomes,
		goals:      goals,

		categoryService:  service.NewCategoryService(categories),
		budgetService:    service.NewBudgetService(budgets, expenses, categories),
		dashboardService: service.NewDashboardService(incomes, expenses, budgets, goals),

		mux: http.NewServeMux(),
	}
	s.routes()
	return s
}

// Handler returns the HTTP handler with request logging applied.
func (s *Server) Handler() http.Handler {
	return requestLogger(s.mux)
}

func (s *Server) routes() {
	s.mux.HandleFunc("POST /api/register", s.handleRegister)
	s.mux.HandleFunc("POST /api/login", s.handleLogin)

	s.mux.Handle("GET /api/categories", s.requireUser(s.handleListCategories))
	s.mux.Handle("POST /api/categories", s.requireUser(s.handleCreateCategory))
	s.mux.Handle("PUT /api/categories/{id}", s.requireUser(s.handleEditCategory))
	s.mux.Handle("DELETE /api/categories/{id}", s.requireUser(s.handleDeleteCategory))

	s.mux.Handle("GET /api/expenses", s.requireUser(s.handleListExpenses))
	s.mux.Handle("GET /api/expenses/export", s.requireUser(s.handleExportExpenses))
	s.mux.Handle("POST /api/expenses", s.requireUser(s.handleCreateExpense))
	s.mux.Handle("PUT /api/expenses/{id}", s.requireUser(s.handleUpdateExpense))
	s.mux.Handle("DELETE /api/expenses/{id}", s.requireUser(s.handleDeleteExpense))

	s.mux.Handle("GET /api/incomes", s.requireUser(s.handleListIncomes))
	s.mux.Handle("POST /api/incomes", s.requireUser(s.handleCreateIncome))
	s.mux.Handle("PUT /api/incomes/{id}", s.requireUser(s.handleUpdateIncome))
	s.mux.Handle("DELETE /api/incomes/{id}", s.requireUser(s.handleDeleteIncome))

	s.mux.Handle("GET /api/budgets", s.requireUser(s.handleListBudgets))
	s.mux.Handle("POST /api/budgets", s.requireUser(s.handleCreateBudget))
	s.mux.Handle("PUT /api/budgets/{id}", s.requireUser(s.handleUpdateBudget))
	s.mux.Handle("DELETE /api/budgets/{id}", s.requireUser(s.handleDeleteBudget))

	s.mux.Handle("GET /api/savings-goals", s.requireUser(s.handleListGoals))
	s.mux.Handle("POST /api/savings-goals", s.requireUser(s.handleCreateGoal))
	s.mux.Handle("PUT /api/savings-goals/{id}", s.requireUser(s.handleUpdateGoal))
	s.mux.Handle("DELETE /api/savings-goals/{id}", s.requireUser(s.handleDeleteGoal))

	s.mux.Handle("GET /api/dashboard", s.requireUser(s.handleDashboard))
	s.mux.Handle("GET /api/dashboard/chart", s.requireUser(s.handleDashboardChart))
}
