package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/locallibrary/catalog-server/internal/domain"
	"github.com/locallibrary/catalog-server/internal/forms"
	"github.com/locallibrary/catalog-server/internal/service"
)

type instanceListData struct {
	Title     string
	Instances []*service.InstanceListItem
}

type instanceDetailData struct {
	Title    string
	Instance *domain.BookInstance
	Book     *domain.Book
}

type instanceFormData struct {
	Title    string
	Instance *domain.BookInstance
	Books    []*domain.Book
	Statuses []domain.Status
	Errors   []string
}

// handleListInstances serves the book copy list with books resolved.
// GET /catalog/bookinstances
func (s *Server) handleListInstances(w http.ResponseWriter, r *http.Request) {
	items, err := s.services.Instances.List(r.Context())
	if err != nil {
		s.serveError(w, r, err)
		return
	}

	s.renderer.render(w, http.StatusOK, "instance_list.html", instanceListData{
		Title:     "Book Instance List",
		Instances: items,
	})
}

// handleGetInstance serves a book copy's detail page.
// GET /catalog/bookinstance/{id}
func (s *Server) handleGetInstance(w http.ResponseWriter, r *http.Request) {
	detail, err := s.services.Instances.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.serveError(w, r, err)
		return
	}

	s.renderer.render(w, http.StatusOK, "instance_detail.html", instanceDetailData{
		Title:    "Copy: " + detail.Instance.ID,
		Instance: detail.Instance,
		Book:     detail.Book,
	})
}

// instanceFormPage assembles the form data for a draft copy.
func (s *Server) instanceFormPage(r *http.Request, title string, draft *domain.BookInstance, errors []string) (*instanceFormData, error) {
	books, err := s.services.Instances.FormData(r.Context())
	if err != nil {
		return nil, err
	}

	return &instanceFormData{
		Title:    title,
		Instance: draft,
		Books:    books,
		Statuses: domain.Statuses(),
		Errors:   errors,
	}, nil
}

// handleCreateInstanceForm serves the blank book copy form.
// GET /catalog/bookinstance/create
func (s *Server) handleCreateInstanceForm(w http.ResponseWriter, r *http.Request) {
	page, err := s.instanceFormPage(r, "Create BookInstance", &domain.BookInstance{}, nil)
	if err != nil {
		s.serveError(w, r, err)
		return
	}
	s.renderer.render(w, http.StatusOK, "instance_form.html", page)
}

// handleCreateInstance validates and persists a new book copy.
// POST /catalog/bookinstance/create
func (s *Server) handleCreateInstance(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.renderError(w, http.StatusBadRequest, "Malformed form submission")
		return
	}

	instance, violations, err := s.services.Instances.Create(r.Context(), forms.FromURLValues(r.PostForm))
	if err != nil {
		s.serveError(w, r, err)
		return
	}
	if !violations.Empty() {
		page, err := s.instanceFormPage(r, "Create BookInstance", instance, violations.Messages())
		if err != nil {
			s.serveError(w, r, err)
			return
		}
		s.renderer.render(w, http.StatusOK, "instance_form.html", page)
		return
	}

	http.Redirect(w, r, instance.URL(), http.StatusSeeOther)
}

// handleUpdateInstanceForm serves the copy form pre-filled with the
// stored values.
// GET /catalog/bookinstance/{id}/update
func (s *Server) handleUpdateInstanceForm(w http.ResponseWriter, r *http.Request) {
	detail, err := s.services.Instances.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.serveError(w, r, err)
		return
	}

	page, err := s.instanceFormPage(r, "Update BookInstance", detail.Instance, nil)
	if err != nil {
		s.serveError(w, r, err)
		return
	}
	s.renderer.render(w, http.StatusOK, "instance_form.html", page)
}

// handleUpdateInstance validates and replaces an existing book copy.
// POST /catalog/bookinstance/{id}/update
func (s *Server) handleUpdateInstance(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.renderError(w, http.StatusBadRequest, "Malformed form submission")
		return
	}

	instance, violations, err := s.services.Instances.Update(r.Context(), chi.URLParam(r, "id"), forms.FromURLValues(r.PostForm))
	if err != nil {
		s.serveError(w, r, err)
		return
	}
	if !violations.Empty() {
		page, err := s.instanceFormPage(r, "Update BookInstance", instance, violations.Messages())
		if err != nil {
			s.serveError(w, r, err)
			return
		}
		s.renderer.render(w, http.StatusOK, "instance_form.html", page)
		return
	}

	http.Redirect(w, r, instance.URL(), http.StatusSeeOther)
}

// handleDeleteInstanceForm serves the delete confirmation page. Copies
// have no dependents, so the delete always goes through.
// GET /catalog/bookinstance/{id}/delete
func (s *Server) handleDeleteInstanceForm(w http.ResponseWriter, r *http.Request) {
	detail, err := s.services.Instances.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.serveError(w, r, err)
		return
	}

	s.renderer.render(w, http.StatusOK, "instance_delete.html", instanceDetailData{
		Title:    "Delete BookInstance",
		Instance: detail.Instance,
		Book:     detail.Book,
	})
}

// handleDeleteInstance deletes a book copy.
// POST /catalog/bookinstance/{id}/delete
func (s *Server) handleDeleteInstance(w http.ResponseWriter, r *http.Request) {
	if err := s.services.Instances.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.serveError(w, r, err)
		return
	}

	http.Redirect(w, r, "/catalog/bookinstances", http.StatusSeeOther)
}
