package adapthttp

import (
	"encoding/json"
	"log"
	"net/http"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// renderError logs the failure and serves the generic 500 view. Storage
// errors are not retried or partially recovered; the prior file contents
// stay on disk.
func (s *Server) renderError(w http.ResponseWriter, r *http.Request, err error) {
	log.Printf("error serving %s %s: %v", r.Method, r.URL.Path, err)
	s.views.render(w, http.StatusInternalServerError, "500", viewData{LoggedInUser: currentUser(r)})
}
