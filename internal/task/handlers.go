package task

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"taskboard/internal/auth"
	"taskboard/models"

	"github.com/gorilla/mux"
)

// CreateTaskRequest is the request body for POST /tasks
type CreateTaskRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
}

// UpdateTaskRequest is the request body for PUT /tasks/{id}
type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	IsComplete  *bool   `json:"isComplete"`
}

// TaskHandlers exposes the task service over HTTP
type TaskHandlers struct {
	Service *Service
}

// NewTaskHandlers creates HTTP handlers backed by the given service
func NewTaskHandlers(service *Service) *TaskHandlers {
	return &TaskHandlers{Service: service}
}

// GetTasks handles GET /tasks
func (h *TaskHandlers) GetTasks(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "No token provided")
		return
	}

	tasks := []*models.Task{}
	found, err := h.Service.ListForUser(r.Context(), claims.ID)
	if err != nil {
		log.Printf("list tasks failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if found != nil {
		tasks = found
	}

	writeJSON(w, http.StatusOK, tasks)
}

// CreateTask handles POST /tasks
func (h *TaskHandlers) CreateTask(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "No token provided")
		return
	}

	var req CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	created, err := h.Service.Create(r.Context(), claims.ID, req.Title, req.Description)
	if err != nil {
		if errors.Is(err, ErrTitleRequired) {
			writeError(w, http.StatusBadRequest, "Title is required")
			return
		}
		log.Printf("create task failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// UpdateTask handles PUT /tasks/{id}
func (h *TaskHandlers) UpdateTask(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "No token provided")
		return
	}

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid task id")
		return
	}

	var req UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	updated, err := h.Service.Update(r.Context(), claims.ID, id, UpdateInput{
		Title:       req.Title,
		Description: req.Description,
		IsComplete:  req.IsComplete,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrNotAuthorized):
			writeError(w, http.StatusForbidden, "Not authorized")
		case errors.Is(err, ErrTitleRequired):
			writeError(w, http.StatusBadRequest, "Title is required")
		default:
			log.Printf("update task failed: %v", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// DeleteTask handles DELETE /tasks/{id}
func (h *TaskHandlers) DeleteTask(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "No token provided")
		return
	}

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid task id")
		return
	}

	if err := h.Service.Delete(r.Context(), claims.ID, id); err != nil {
		if errors.Is(err, ErrNotAuthorized) {
			writeError(w, http.StatusForbidden, "Not authorized")
			return
		}
		log.Printf("delete task failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Task deleted"})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
