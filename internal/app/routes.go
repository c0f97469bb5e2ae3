package app

import (
	"github.com/gorilla/mux"
	"github.com/chuwg/taskflow/internal/config"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Calendar events
	r.HandleFunc("/api/calendar/event", deps.CalendarHandler.CreateEvent).Methods("POST")
	r.HandleFunc("/api/calendar/event", deps.CalendarHandler.GetEvents).Methods("GET")
	r.HandleFunc("/api/calendar/event/{eventId}", deps.CalendarHandler.UpdateEvent).Methods("PUT")
	r.HandleFunc("/api/calendar/event/{eventId}", deps.CalendarHandler.DeleteEvent).Methods("DELETE")

	// Calendar grids
	r.HandleFunc("/api/calendar/month", deps.CalendarHandler.GetMonth).Methods("GET")
	r.HandleFunc("/api/calendar/week", deps.CalendarHandler.GetWeek).Methods("GET")
	r.HandleFunc("/api/calendar/day", deps.CalendarHandler.GetDay).Methods("GET")

	// Todos
	r.HandleFunc("/api/todo", deps.TodoHandler.CreateTodo).Methods("POST")
	r.HandleFunc("/api/todo", deps.TodoHandler.GetTodos).Methods("GET")
	r.HandleFunc("/api/todo/stats", deps.TodoHandler.GetStats).Methods("GET")
	r.HandleFunc("/api/todo/template", deps.TodoHandler.CreateTemplate).Methods("POST")
	r.HandleFunc("/api/todo/template", deps.TodoHandler.GetTemplates).Methods("GET")
	r.HandleFunc("/api/todo/template/{templateId}", deps.TodoHandler.UpdateTemplate).Methods("PUT")
	r.HandleFunc("/api/todo/template/{templateId}", deps.TodoHandler.DeleteTemplate).Methods("DELETE")
	r.HandleFunc("/api/todo/template/{templateId}/instantiate", deps.TodoHandler.InstantiateTemplate).Methods("POST")
	r.HandleFunc("/api/todo/{todoId}", deps.TodoHandler.GetTodo).Methods("GET")
	r.HandleFunc("/api/todo/{todoId}", deps.TodoHandler.UpdateTodo).Methods("PUT")
	r.HandleFunc("/api/todo/{todoId}", deps.TodoHandler.DeleteTodo).Methods("DELETE")
	r.HandleFunc("/api/todo/{todoId}/toggle", deps.TodoHandler.ToggleTodo).Methods("POST")
	r.HandleFunc("/api/todo/{todoId}/duplicate", deps.TodoHandler.DuplicateTodo).Methods("POST")

	// Transactions
	r.HandleFunc("/api/transaction", deps.FinanceHandler.CreateTransaction).Methods("POST")
	r.HandleFunc("/api/transaction", deps.FinanceHandler.GetTransactions).Methods("GET")
	r.HandleFunc("/api/transaction/{transactionId}", deps.FinanceHandler.GetTransaction).Methods("GET")
	r.HandleFunc("/api/transaction/{transactionId}", deps.FinanceHandler.UpdateTransaction).Methods("PUT")
	r.HandleFunc("/api/transaction/{transactionId}", deps.FinanceHandler.DeleteTransaction).Methods("DELETE")

	// Accounts
	r.HandleFunc("/api/account", deps.FinanceHandler.CreateAccount).Methods("POST")
	r.HandleFunc("/api/account", deps.FinanceHandler.GetAccounts).Methods("GET")
	r.HandleFunc("/api/account/{accountId}", deps.FinanceHandler.UpdateAccount).Methods("PUT")
	r.HandleFunc("/api/account/{accountId}", deps.FinanceHandler.DeleteAccount).Methods("DELETE")

	// Categories
	r.HandleFunc("/api/category", deps.FinanceHandler.CreateCategory).Methods("POST")
	r.HandleFunc("/api/category", deps.FinanceHandler.GetCategories).Methods("GET")
	r.HandleFunc("/api/category/{categoryId}", deps.FinanceHandler.UpdateCategory).Methods("PUT")
	r.HandleFunc("/api/category/{categoryId}", deps.FinanceHandler.DeleteCategory).Methods("DELETE")

	// Budgets
	r.HandleFunc("/api/budget", deps.FinanceHandler.CreateBudget).Methods("POST")
	r.HandleFunc("/api/budget", deps.FinanceHandler.GetBudgets).Methods("GET")
	r.HandleFunc("/api/budget/{budgetId}", deps.FinanceHandler.UpdateBudget).Methods("PUT")
	r.HandleFunc("/api/budget/{budgetId}", deps.FinanceHandler.DeleteBudget).Methods("DELETE")

	// Goals
	r.HandleFunc("/api/goal", deps.FinanceHandler.CreateGoal).Methods("POST")
	r.HandleFunc("/api/goal", deps.FinanceHandler.GetGoals).Methods("GET")
	r.HandleFunc("/api/goal/{goalId}", deps.FinanceHandler.UpdateGoal).Methods("PUT")
	r.HandleFunc("/api/goal/{goalId}", deps.FinanceHandler.DeleteGoal).Methods("DELETE")

	// Reports and stats
	r.HandleFunc("/api/report", deps.FinanceHandler.GetReport).Queries("from", "{from}", "to", "{to}").Methods("GET")
	r.HandleFunc("/api/finance/stats", deps.FinanceHandler.GetStats).Methods("GET")

	// Notes
	r.HandleFunc("/api/note", deps.NoteHandler.CreateNote).Methods("POST")
	r.HandleFunc("/api/note", deps.NoteHandler.GetNotes).Methods("GET")
	r.HandleFunc("/api/note/{noteId}", deps.NoteHandler.GetNote).Methods("GET")
	r.HandleFunc("/api/note/{noteId}", deps.NoteHandler.UpdateNote).Methods("PUT")
	r.HandleFunc("/api/note/{noteId}", deps.NoteHandler.DeleteNote).Methods("DELETE")

	// Google integration
	r.HandleFunc("/api/integrations/google/auth/login", deps.GoogleAuth.OAuthLogin).Methods("GET")
	r.HandleFunc("/api/integrations/google/auth/callback", deps.GoogleAuth.OAuthCallback).Methods("GET")
	r.HandleFunc("/api/integrations/google/auth/logout", deps.GoogleAuth.OAuthLogout).Methods("DELETE")
	r.HandleFunc("/api/integrations/google/export", deps.GoogleHandler.Export).Queries("from", "{from}", "to", "{to}").Methods("POST")
}
