package adapthttp

import (
	"net/http"

	"taskhub/internal/app"
)

// Server is the driving HTTP adapter that routes requests to application
// services and renders the HTML views.
type Server struct {
	tasks      *app.TaskService
	auth       *app.AuthService
	oidcConfig OIDCConfig
	views      *views
}

// New creates a Server wired to the given application services.
func New(ts *app.TaskService, as *app.AuthService, oidc OIDCConfig) (*Server, error) {
	v, err := newViews()
	if err != nil {
		return nil, err
	}
	return &Server{tasks: ts, auth: as, oidcConfig: oidc, views: v}, nil
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	mux.HandleFunc("GET /{$}", s.requireUser(s.handleHome))
	mux.HandleFunc("GET /tasks", s.requireUser(s.handleHome))
	mux.HandleFunc("POST /tasks", s.requireUser(s.handleAddTask))
	mux.HandleFunc("GET /tasks/add", s.requireUser(s.handleAddForm))
	mux.HandleFunc("GET /tasks/edit/{id}", s.requireUser(s.handleEditForm))
	mux.HandleFunc("POST /tasks/edit/{id}", s.requireUser(s.handleEdit))
	mux.HandleFunc("POST /tasks/complete/{id}", s.requireUser(s.handleComplete))
	mux.HandleFunc("POST /tasks/cancel/{id}", s.requireUser(s.handleCancel))
	mux.HandleFunc("POST /tasks/delete/{id}", s.requireUser(s.handleDelete))

	mux.HandleFunc("GET /login", s.handleLoginForm)
	mux.HandleFunc("POST /login", s.handleLogin)
	mux.HandleFunc("GET /logout", s.handleLogout)
	mux.HandleFunc("GET /register", s.handleRegisterForm)
	mux.HandleFunc("POST /register", s.handleRegister)

	if s.oidcConfig.Enabled {
		mux.HandleFunc("GET /login/sso", s.handleSSOLogin)
		mux.HandleFunc("GET /login/sso/callback", s.handleSSOCallback)
	}

	// Anything unmatched above lands here.
	mux.HandleFunc("/", s.handleNotFound)

	return withNoCache(s.loggingMiddleware(s.recoverMiddleware(s.sessionMiddleware(mux))))
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.views.render(w, http.StatusNotFound, "404", viewData{LoggedInUser: currentUser(r)})
}
