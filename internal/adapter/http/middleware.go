package adapthttp

import (
	"context"
	"log"
	"net/http"
	"time"

	"taskhub/internal/app"
	"taskhub/internal/domain"
)

type contextKey string

const sessionContextKey contextKey = "session"

const sessionCookie = "sid"

// sessionMiddleware attaches a server-side session to every request,
// creating one on first contact. The session id travels in an HttpOnly
// cookie; activity slides the expiry forward.
func (s *Server) sessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var id string
		if c, err := r.Cookie(sessionCookie); err == nil {
			id = c.Value
		}

		sess, err := s.auth.EnsureSession(r.Context(), id)
		if err != nil {
			s.renderError(w, r, err)
			return
		}

		if sess.ID != id {
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookie,
				Value:    sess.ID,
				Path:     "/",
				HttpOnly: true,
				MaxAge:   int(app.SessionTTL.Seconds()),
			})
		}
		if sess.LoggedIn() {
			_ = s.auth.Touch(r.Context(), sess)
		}

		ctx := context.WithValue(r.Context(), sessionContextKey, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireUser gates a handler behind a logged-in session; anonymous
// requests are redirected to the login flow.
func (s *Server) requireUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !sessionFrom(r.Context()).LoggedIn() {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
		next(w, r)
	}
}

func sessionFrom(ctx context.Context) *domain.Session {
	sess, _ := ctx.Value(sessionContextKey).(*domain.Session)
	return sess
}

// currentUser returns the logged-in username, or "" for anonymous requests.
func currentUser(r *http.Request) string {
	if sess := sessionFrom(r.Context()); sess != nil {
		return sess.Username
	}
	return ""
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// loggingMiddleware logs method, path, status and duration per request.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)
		log.Printf("%s %s %d %s", r.Method, r.URL.Path, rec.status, time.Since(start))
	})
}

// recoverMiddleware turns handler panics into the 500 view.
func (s *Server) recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("panic serving %s %s: %v", r.Method, r.URL.Path, rec)
				s.views.render(w, http.StatusInternalServerError, "500", viewData{})
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func withNoCache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}
