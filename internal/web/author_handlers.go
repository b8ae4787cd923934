package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/locallibrary/catalog-server/internal/domain"
	errs "github.com/locallibrary/catalog-server/internal/errors"
	"github.com/locallibrary/catalog-server/internal/forms"
)

type authorListData struct {
	Title   string
	Authors []*domain.Author
}

type authorDetailData struct {
	Title  string
	Author *domain.Author
	Books  []*domain.Book
}

type authorFormData struct {
	Title  string
	Author *domain.Author
	Errors []string
}

// handleListAuthors serves the author list.
// GET /catalog/authors
func (s *Server) handleListAuthors(w http.ResponseWriter, r *http.Request) {
	authors, err := s.services.Authors.List(r.Context())
	if err != nil {
		s.serveError(w, r, err)
		return
	}

	s.renderer.render(w, http.StatusOK, "author_list.html", authorListData{
		Title:   "Author List",
		Authors: authors,
	})
}

// handleGetAuthor serves an author's detail page with their books.
// GET /catalog/author/{id}
func (s *Server) handleGetAuthor(w http.ResponseWriter, r *http.Request) {
	detail, err := s.services.Authors.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.serveError(w, r, err)
		return
	}

	s.renderer.render(w, http.StatusOK, "author_detail.html", authorDetailData{
		Title:  "Author: " + detail.Author.Name(),
		Author: detail.Author,
		Books:  detail.Books,
	})
}

// handleCreateAuthorForm serves the blank author form.
// GET /catalog/author/create
func (s *Server) handleCreateAuthorForm(w http.ResponseWriter, _ *http.Request) {
	s.renderer.render(w, http.StatusOK, "author_form.html", authorFormData{
		Title:  "Create Author",
		Author: &domain.Author{},
	})
}

// handleCreateAuthor validates and persists a new author.
// POST /catalog/author/create
func (s *Server) handleCreateAuthor(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.renderError(w, http.StatusBadRequest, "Malformed form submission")
		return
	}

	author, violations, err := s.services.Authors.Create(r.Context(), forms.FromURLValues(r.PostForm))
	if err != nil {
		s.serveError(w, r, err)
		return
	}
	if !violations.Empty() {
		s.renderer.render(w, http.StatusOK, "author_form.html", authorFormData{
			Title:  "Create Author",
			Author: author,
			Errors: violations.Messages(),
		})
		return
	}

	http.Redirect(w, r, author.URL(), http.StatusSeeOther)
}

// handleUpdateAuthorForm serves the author form pre-filled with the
// stored values.
// GET /catalog/author/{id}/update
func (s *Server) handleUpdateAuthorForm(w http.ResponseWriter, r *http.Request) {
	detail, err := s.services.Authors.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.serveError(w, r, err)
		return
	}

	s.renderer.render(w, http.StatusOK, "author_form.html", authorFormData{
		Title:  "Update Author",
		Author: detail.Author,
	})
}

// handleUpdateAuthor validates and replaces an existing author.
// POST /catalog/author/{id}/update
func (s *Server) handleUpdateAuthor(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.renderError(w, http.StatusBadRequest, "Malformed form submission")
		return
	}

	author, violations, err := s.services.Authors.Update(r.Context(), chi.URLParam(r, "id"), forms.FromURLValues(r.PostForm))
	if err != nil {
		s.serveError(w, r, err)
		return
	}
	if !violations.Empty() {
		s.renderer.render(w, http.StatusOK, "author_form.html", authorFormData{
			Title:  "Update Author",
			Author: author,
			Errors: violations.Messages(),
		})
		return
	}

	http.Redirect(w, r, author.URL(), http.StatusSeeOther)
}

// handleDeleteAuthorForm serves the delete confirmation page, listing
// the books that block the delete.
// GET /catalog/author/{id}/delete
func (s *Server) handleDeleteAuthorForm(w http.ResponseWriter, r *http.Request) {
	detail, err := s.services.Authors.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.serveError(w, r, err)
		return
	}

	s.renderer.render(w, http.StatusOK, "author_delete.html", authorDetailData{
		Title:  "Delete Author",
		Author: detail.Author,
		Books:  detail.Books,
	})
}

// handleDeleteAuthor deletes an author, or re-shows the confirmation
// page when books still reference them.
// POST /catalog/author/{id}/delete
func (s *Server) handleDeleteAuthor(w http.ResponseWriter, r *http.Request) {
	authorID := chi.URLParam(r, "id")

	err := s.services.Authors.Delete(r.Context(), authorID)
	if err == nil {
		http.Redirect(w, r, "/catalog/authors", http.StatusSeeOther)
		return
	}
	if !errs.Is(err, errs.ErrHasDependents) {
		s.serveError(w, r, err)
		return
	}

	detail, err := s.services.Authors.Get(r.Context(), authorID)
	if err != nil {
		s.serveError(w, r, err)
		return
	}
	s.renderer.render(w, http.StatusOK, "author_delete.html", authorDetailData{
		Title:  "Delete Author",
		Author: detail.Author,
		Books:  detail.Books,
	})
}
