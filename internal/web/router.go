package web

import (
	"taskboard/internal/auth"
	"taskboard/internal/task"
	"taskboard/middleware"

	"github.com/gorilla/mux"
)

// SetupRoutes wires the JSON API and the browser client onto one router
func (h *WebHandler) SetupRoutes(m *middleware.Middleware, authHandlers *auth.AuthHandlers, taskHandlers *task.TaskHandlers) *mux.Router {
	r := mux.NewRouter()

	// JSON API
	r.HandleFunc("/auth/register", authHandlers.RegisterHandler).Methods("POST")
	r.HandleFunc("/auth/login", authHandlers.LoginHandler).Methods("POST")
	r.HandleFunc("/auth/verify", authHandlers.VerifyHandler).Methods("GET")

	r.HandleFunc("/tasks", m.AuthMiddleware(taskHandlers.GetTasks)).Methods("GET")
	r.HandleFunc("/tasks", m.AuthMiddleware(taskHandlers.CreateTask)).Methods("POST")
	r.HandleFunc("/tasks/{id:[0-9]+}", m.AuthMiddleware(taskHandlers.UpdateTask)).Methods("PUT")
	r.HandleFunc("/tasks/{id:[0-9]+}", m.AuthMiddleware(taskHandlers.DeleteTask)).Methods("DELETE")

	// Browser client
	r.HandleFunc("/", h.Index).Methods("GET")
	r.HandleFunc("/login", h.Login).Methods("GET", "POST")
	r.HandleFunc("/register", h.Register).Methods("GET", "POST")
	r.HandleFunc("/logout", h.Logout).Methods("POST")
	r.HandleFunc("/web/tasks", h.CreateTask).Methods("POST")
	r.HandleFunc("/web/tasks/{id:[0-9]+}/toggle", h.ToggleTask).Methods("POST")
	r.HandleFunc("/web/tasks/{id:[0-9]+}/delete", h.DeleteTask).Methods("POST")

	return r
}
