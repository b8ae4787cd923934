package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/locallibrary/catalog-server/internal/domain"
	errs "github.com/locallibrary/catalog-server/internal/errors"
	"github.com/locallibrary/catalog-server/internal/forms"
	"github.com/locallibrary/catalog-server/internal/service"
)

type bookListData struct {
	Title string
	Books []*service.BookListItem
}

type bookDetailData struct {
	Title     string
	Book      *domain.Book
	Author    *domain.Author
	Genres    []*domain.Genre
	Instances []*domain.BookInstance
}

// genreOption is a selectable genre with its checked state for the
// book form.
type genreOption struct {
	Genre   *domain.Genre
	Checked bool
}

type bookFormData struct {
	Title   string
	Book    *domain.Book
	Authors []*domain.Author
	Genres  []genreOption
	Errors  []string
}

type bookDeleteData struct {
	Title     string
	Book      *domain.Book
	Instances []*domain.BookInstance
}

// handleListBooks serves the book list with authors resolved.
// GET /catalog/books
func (s *Server) handleListBooks(w http.ResponseWriter, r *http.Request) {
	items, err := s.services.Books.List(r.Context())
	if err != nil {
		s.serveError(w, r, err)
		return
	}

	s.renderer.render(w, http.StatusOK, "book_list.html", bookListData{
		Title: "Book List",
		Books: items,
	})
}

// handleGetBook serves a book's detail page with author, genres, and
// copies resolved.
// GET /catalog/book/{id}
func (s *Server) handleGetBook(w http.ResponseWriter, r *http.Request) {
	detail, err := s.services.Books.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.serveError(w, r, err)
		return
	}

	s.renderer.render(w, http.StatusOK, "book_detail.html", bookDetailData{
		Title:     detail.Book.Title,
		Book:      detail.Book,
		Author:    detail.Author,
		Genres:    detail.Genres,
		Instances: detail.Instances,
	})
}

// bookFormPage assembles the form data for a draft, marking the
// draft's genres as checked.
func (s *Server) bookFormPage(r *http.Request, title string, draft *domain.Book, errors []string) (*bookFormData, error) {
	formData, err := s.services.Books.FormData(r.Context())
	if err != nil {
		return nil, err
	}

	options := make([]genreOption, len(formData.Genres))
	for i, g := range formData.Genres {
		options[i] = genreOption{Genre: g, Checked: draft.HasGenre(g.ID)}
	}

	return &bookFormData{
		Title:   title,
		Book:    draft,
		Authors: formData.Authors,
		Genres:  options,
		Errors:  errors,
	}, nil
}

// handleCreateBookForm serves the blank book form.
// GET /catalog/book/create
func (s *Server) handleCreateBookForm(w http.ResponseWriter, r *http.Request) {
	page, err := s.bookFormPage(r, "Create Book", &domain.Book{}, nil)
	if err != nil {
		s.serveError(w, r, err)
		return
	}
	s.renderer.render(w, http.StatusOK, "book_form.html", page)
}

// handleCreateBook validates and persists a new book.
// POST /catalog/book/create
func (s *Server) handleCreateBook(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.renderError(w, http.StatusBadRequest, "Malformed form submission")
		return
	}

	book, violations, err := s.services.Books.Create(r.Context(), forms.FromURLValues(r.PostForm))
	if err != nil {
		s.serveError(w, r, err)
		return
	}
	if !violations.Empty() {
		page, err := s.bookFormPage(r, "Create Book", book, violations.Messages())
		if err != nil {
			s.serveError(w, r, err)
			return
		}
		s.renderer.render(w, http.StatusOK, "book_form.html", page)
		return
	}

	http.Redirect(w, r, book.URL(), http.StatusSeeOther)
}

// handleUpdateBookForm serves the book form pre-filled with the stored
// values.
// GET /catalog/book/{id}/update
func (s *Server) handleUpdateBookForm(w http.ResponseWriter, r *http.Request) {
	detail, err := s.services.Books.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.serveError(w, r, err)
		return
	}

	page, err := s.bookFormPage(r, "Update Book", detail.Book, nil)
	if err != nil {
		s.serveError(w, r, err)
		return
	}
	s.renderer.render(w, http.StatusOK, "book_form.html", page)
}

// handleUpdateBook validates and replaces an existing book.
// POST /catalog/book/{id}/update
func (s *Server) handleUpdateBook(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.renderError(w, http.StatusBadRequest, "Malformed form submission")
		return
	}

	book, violations, err := s.services.Books.Update(r.Context(), chi.URLParam(r, "id"), forms.FromURLValues(r.PostForm))
	if err != nil {
		s.serveError(w, r, err)
		return
	}
	if !violations.Empty() {
		page, err := s.bookFormPage(r, "Update Book", book, violations.Messages())
		if err != nil {
			s.serveError(w, r, err)
			return
		}
		s.renderer.render(w, http.StatusOK, "book_form.html", page)
		return
	}

	http.Redirect(w, r, book.URL(), http.StatusSeeOther)
}

// handleDeleteBookForm serves the delete confirmation page, listing
// the copies that block the delete.
// GET /catalog/book/{id}/delete
func (s *Server) handleDeleteBookForm(w http.ResponseWriter, r *http.Request) {
	detail, err := s.services.Books.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.serveError(w, r, err)
		return
	}

	s.renderer.render(w, http.StatusOK, "book_delete.html", bookDeleteData{
		Title:     "Delete Book",
		Book:      detail.Book,
		Instances: detail.Instances,
	})
}

// handleDeleteBook deletes a book, or re-shows the confirmation page
// when copies of it still exist.
// POST /catalog/book/{id}/delete
func (s *Server) handleDeleteBook(w http.ResponseWriter, r *http.Request) {
	bookID := chi.URLParam(r, "id")

	err := s.services.Books.Delete(r.Context(), bookID)
	if err == nil {
		http.Redirect(w, r, "/catalog/books", http.StatusSeeOther)
		return
	}
	if !errs.Is(err, errs.ErrHasDependents) {
		s.serveError(w, r, err)
		return
	}

	detail, err := s.services.Books.Get(r.Context(), bookID)
	if err != nil {
		s.serveError(w, r, err)
		return
	}
	s.renderer.render(w, http.StatusOK, "book_delete.html", bookDeleteData{
		Title:     "Delete Book",
		Book:      detail.Book,
		Instances: detail.Instances,
	})
}
