// Package adapthttp implements the HTTP adapter for the application.
package adapthttp

import (
	"errors"
	"net/http"

	"taskhub/internal/app"
)

func (s *Server) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	s.views.render(w, http.StatusOK, "login", viewData{SSOEnabled: s.oidcConfig.Enabled})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	err := s.auth.Login(r.Context(), sessionFrom(r.Context()), r.PostFormValue("username"))
	if errors.Is(err, app.ErrUnknownUser) || errors.Is(err, app.ErrEmptyUsername) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "User does not exist. Please register first."})
		return
	}
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if sess := sessionFrom(r.Context()); sess != nil {
		if err := s.auth.Logout(r.Context(), sess); err != nil {
			s.renderError(w, r, err)
			return
		}
	}
	http.Redirect(w, r, "/login", http.StatusFound)
}

func (s *Server) handleRegisterForm(w http.ResponseWriter, r *http.Request) {
	s.views.render(w, http.StatusOK, "register", viewData{})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	err := s.auth.Register(r.Context(), r.PostFormValue("username"))
	if errors.Is(err, app.ErrUserExists) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "User already exists. Please log in."})
		return
	}
	if errors.Is(err, app.ErrEmptyUsername) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Username must not be empty."})
		return
	}
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
