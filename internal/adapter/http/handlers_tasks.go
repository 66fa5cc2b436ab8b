package adapthttp

import (
	"errors"
	"net/http"

	"taskhub/internal/app"
)

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	tasks, err := s.tasks.List(r.Context(), user)
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	s.views.render(w, http.StatusOK, "home", viewData{LoggedInUser: user, Tasks: tasks})
}

func (s *Server) handleAddForm(w http.ResponseWriter, r *http.Request) {
	s.views.render(w, http.StatusOK, "add-task", viewData{LoggedInUser: currentUser(r)})
}

func (s *Server) handleAddTask(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	draft := app.TaskDraft{
		Title:       r.PostFormValue("title"),
		Description: r.PostFormValue("description"),
		DueDate:     r.PostFormValue("due_date"),
		Priority:    r.PostFormValue("priority"),
	}
	if _, err := s.tasks.Add(r.Context(), currentUser(r), draft); err != nil {
		s.renderError(w, r, err)
		return
	}
	http.Redirect(w, r, "/tasks", http.StatusSeeOther)
}

func (s *Server) handleEditForm(w http.ResponseWriter, r *http.Request) {
	task, err := s.tasks.Get(r.Context(), currentUser(r), r.PathValue("id"))
	if errors.Is(err, app.ErrTaskNotFound) {
		http.Error(w, "Task not found", http.StatusNotFound)
		return
	}
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	s.views.render(w, http.StatusOK, "edit-task", viewData{LoggedInUser: currentUser(r), Task: task})
}

func (s *Server) handleEdit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	edit := app.TaskEdit{
		Title:          r.PostFormValue("title"),
		Description:    r.PostFormValue("description"),
		DueDate:        r.PostFormValue("due_date"),
		Priority:       r.PostFormValue("priority"),
		CompletionDate: r.PostFormValue("completion_date"),
	}
	err := s.tasks.Edit(r.Context(), currentUser(r), r.PathValue("id"), edit)
	s.finishMutation(w, r, err)
}

func (s *Server) handleComplete(w http.ResponseWriter, r *http.Request) {
	err := s.tasks.Complete(r.Context(), currentUser(r), r.PathValue("id"))
	s.finishMutation(w, r, err)
}

func (s *Server) handleCancel(w http.ResponseWriter, r *http.Request) {
	err := s.tasks.Cancel(r.Context(), currentUser(r), r.PathValue("id"))
	s.finishMutation(w, r, err)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	err := s.tasks.Remove(r.Context(), currentUser(r), r.PathValue("id"))
	s.finishMutation(w, r, err)
}

// finishMutation maps the outcome of a task mutation to the shared
// redirect-or-404 contract.
func (s *Server) finishMutation(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, app.ErrTaskNotFound) {
		http.Error(w, "Task not found", http.StatusNotFound)
		return
	}
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	http.Redirect(w, r, "/tasks", http.StatusSeeOther)
}
