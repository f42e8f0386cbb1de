package web

import (
	"embed"
	"html/template"
	"log"
	"net/http"
	"strconv"

	"taskboard/internal/auth"
	"taskboard/internal/task"
	"taskboard/models"

	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"
)

//go:embed templates/*.html
var templateFS embed.FS

const sessionName = "taskboard-session"

// WebHandler renders the server-side browser client. The issued bearer token
// lives in the cookie session and is re-verified on every page load, so the
// browser client goes through the same token checks as API callers.
type WebHandler struct {
	authService  *auth.Service
	taskService  *task.Service
	templates    *template.Template
	sessionStore *sessions.CookieStore
}

// PageData is the payload handed to every page template
type PageData struct {
	User  *auth.Claims
	Tasks []*models.Task
	Error string
	Flash string
}

// NewWebHandler creates the browser-client handler set
func NewWebHandler(authService *auth.Service, taskService *task.Service, sessionSecret []byte) *WebHandler {
	templates := template.Must(template.ParseFS(templateFS, "templates/*.html"))
	store := sessions.NewCookieStore(sessionSecret)
	store.Options.HttpOnly = true

	return &WebHandler{
		authService:  authService,
		taskService:  taskService,
		templates:    templates,
		sessionStore: store,
	}
}

// sessionToken returns the bearer token held in the cookie session, if any
func (h *WebHandler) sessionToken(r *http.Request) string {
	session, _ := h.sessionStore.Get(r, sessionName)
	token, _ := session.Values["token"].(string)
	return token
}

// claimsFromSession verifies the session token and returns its claims
func (h *WebHandler) claimsFromSession(r *http.Request) *auth.Claims {
	token := h.sessionToken(r)
	if token == "" {
		return nil
	}
	claims, err := h.authService.Verify(token)
	if err != nil {
		return nil
	}
	return claims
}

// Index renders the task list, or redirects to /login without a valid session
func (h *WebHandler) Index(w http.ResponseWriter, r *http.Request) {
	claims := h.claimsFromSession(r)
	if claims == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	tasks, err := h.taskService.ListForUser(r.Context(), claims.ID)
	if err != nil {
		log.Printf("web: list tasks failed: %v", err)
		h.render(w, "tasks.html", PageData{User: claims, Error: "Failed to load tasks"})
		return
	}

	data := PageData{User: claims, Tasks: tasks}
	if msg := r.URL.Query().Get("error"); msg != "" {
		data.Error = msg
	}
	h.render(w, "tasks.html", data)
}

// Login renders the login form and handles its submission
func (h *WebHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		h.render(w, "login.html", PageData{})
		return
	}

	username := r.FormValue("username")
	password := r.FormValue("password")

	token, err := h.authService.Login(r.Context(), username, password)
	if err != nil {
		h.render(w, "login.html", PageData{Error: "Invalid credentials"})
		return
	}

	session, _ := h.sessionStore.Get(r, sessionName)
	session.Values["token"] = token
	if err := session.Save(r, w); err != nil {
		log.Printf("web: session save failed: %v", err)
		h.render(w, "login.html", PageData{Error: "Failed to start session"})
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Register renders the registration form and handles its submission
func (h *WebHandler) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		h.render(w, "register.html", PageData{})
		return
	}

	username := r.FormValue("username")
	password := r.FormValue("password")

	if _, err := h.authService.Register(r.Context(), username, password); err != nil {
		msg := "Registration failed"
		switch err {
		case auth.ErrMissingCredentials:
			msg = "Username and password required"
		case auth.ErrUserExists:
			msg = "User already exists"
		}
		h.render(w, "register.html", PageData{Error: msg})
		return
	}

	h.render(w, "login.html", PageData{Flash: "Account created, please log in"})
}

// Logout clears the session and returns to the login page
func (h *WebHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session, _ := h.sessionStore.Get(r, sessionName)
	delete(session.Values, "token")
	session.Options.MaxAge = -1
	session.Save(r, w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// CreateTask handles the add-task form on the task list page
func (h *WebHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	claims := h.claimsFromSession(r)
	if claims == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	title := r.FormValue("title")
	var description *string
	if d := r.FormValue("description"); d != "" {
		description = &d
	}

	if _, err := h.taskService.Create(r.Context(), claims.ID, title, description); err != nil {
		if err == task.ErrTitleRequired {
			http.Redirect(w, r, "/?error=Title+is+required", http.StatusSeeOther)
			return
		}
		log.Printf("web: create task failed: %v", err)
		http.Redirect(w, r, "/?error=Failed+to+create+task", http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// ToggleTask flips a task's completion flag
func (h *WebHandler) ToggleTask(w http.ResponseWriter, r *http.Request) {
	claims := h.claimsFromSession(r)
	if claims == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	complete := r.FormValue("isComplete") != "true"
	_, err = h.taskService.Update(r.Context(), claims.ID, id, task.UpdateInput{IsComplete: &complete})
	if err != nil {
		log.Printf("web: toggle task failed: %v", err)
		http.Redirect(w, r, "/?error=Failed+to+update+task", http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// DeleteTask removes a task from the task list page
func (h *WebHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	claims := h.claimsFromSession(r)
	if claims == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if err := h.taskService.Delete(r.Context(), claims.ID, id); err != nil {
		log.Printf("web: delete task failed: %v", err)
		http.Redirect(w, r, "/?error=Failed+to+delete+task", http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *WebHandler) render(w http.ResponseWriter, name string, data PageData) {
	if err := h.templates.ExecuteTemplate(w, name, data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
