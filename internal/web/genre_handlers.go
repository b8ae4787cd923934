package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/locallibrary/catalog-server/internal/domain"
	errs "github.com/locallibrary/catalog-server/internal/errors"
	"github.com/locallibrary/catalog-server/internal/forms"
)

type genreListData struct {
	Title  string
	Genres []*domain.Genre
}

type genreDetailData struct {
	Title string
	Genre *domain.Genre
	Books []*domain.Book
}

type genreFormData struct {
	Title  string
	Genre  *domain.Genre
	Errors []string
}

// handleListGenres serves the genre list.
// GET /catalog/genres
func (s *Server) handleListGenres(w http.ResponseWriter, r *http.Request) {
	genres, err := s.services.Genres.List(r.Context())
	if err != nil {
		s.serveError(w, r, err)
		return
	}

	s.renderer.render(w, http.StatusOK, "genre_list.html", genreListData{
		Title:  "Genre List",
		Genres: genres,
	})
}

// handleGetGenre serves a genre's detail page with its books.
// GET /catalog/genre/{id}
func (s *Server) handleGetGenre(w http.ResponseWriter, r *http.Request) {
	detail, err := s.services.Genres.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.serveError(w, r, err)
		return
	}

	s.renderer.render(w, http.StatusOK, "genre_detail.html", genreDetailData{
		Title: "Genre: " + detail.Genre.Name,
		Genre: detail.Genre,
		Books: detail.Books,
	})
}

// handleCreateGenreForm serves the blank genre form.
// GET /catalog/genre/create
func (s *Server) handleCreateGenreForm(w http.ResponseWriter, _ *http.Request) {
	s.renderer.render(w, http.StatusOK, "genre_form.html", genreFormData{
		Title: "Create Genre",
		Genre: &domain.Genre{},
	})
}

// handleCreateGenre validates and persists a new genre. Submitting a
// name that already exists redirects to the existing genre.
// POST /catalog/genre/create
func (s *Server) handleCreateGenre(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.renderError(w, http.StatusBadRequest, "Malformed form submission")
		return
	}

	genre, violations, err := s.services.Genres.Create(r.Context(), forms.FromURLValues(r.PostForm))
	if err != nil {
		s.serveError(w, r, err)
		return
	}
	if !violations.Empty() {
		s.renderer.render(w, http.StatusOK, "genre_form.html", genreFormData{
			Title:  "Create Genre",
			Genre:  genre,
			Errors: violations.Messages(),
		})
		return
	}

	http.Redirect(w, r, genre.URL(), http.StatusSeeOther)
}

// handleUpdateGenreForm serves the genre form pre-filled with the
// stored values.
// GET /catalog/genre/{id}/update
func (s *Server) handleUpdateGenreForm(w http.ResponseWriter, r *http.Request) {
	detail, err := s.services.Genres.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.serveError(w, r, err)
		return
	}

	s.renderer.render(w, http.StatusOK, "genre_form.html", genreFormData{
		Title: "Update Genre",
		Genre: detail.Genre,
	})
}

// handleUpdateGenre validates and replaces an existing genre.
// POST /catalog/genre/{id}/update
func (s *Server) handleUpdateGenre(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.renderError(w, http.StatusBadRequest, "Malformed form submission")
		return
	}

	genre, violations, err := s.services.Genres.Update(r.Context(), chi.URLParam(r, "id"), forms.FromURLValues(r.PostForm))
	if err != nil {
		s.serveError(w, r, err)
		return
	}
	if !violations.Empty() {
		s.renderer.render(w, http.StatusOK, "genre_form.html", genreFormData{
			Title:  "Update Genre",
			Genre:  genre,
			Errors: violations.Messages(),
		})
		return
	}

	http.Redirect(w, r, genre.URL(), http.StatusSeeOther)
}

// handleDeleteGenreForm serves the delete confirmation page, listing
// the books that block the delete.
// GET /catalog/genre/{id}/delete
func (s *Server) handleDeleteGenreForm(w http.ResponseWriter, r *http.Request) {
	detail, err := s.services.Genres.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.serveError(w, r, err)
		return
	}

	s.renderer.render(w, http.StatusOK, "genre_delete.html", genreDetailData{
		Title: "Delete Genre",
		Genre: detail.Genre,
		Books: detail.Books,
	})
}

// handleDeleteGenre deletes a genre, or re-shows the confirmation page
// when books are still tagged with it.
// POST /catalog/genre/{id}/delete
func (s *Server) handleDeleteGenre(w http.ResponseWriter, r *http.Request) {
	genreID := chi.URLParam(r, "id")

	err := s.services.Genres.Delete(r.Context(), genreID)
	if err == nil {
		http.Redirect(w, r, "/catalog/genres", http.StatusSeeOther)
		return
	}
	if !errs.Is(err, errs.ErrHasDependents) {
		s.serveError(w, r, err)
		return
	}

	detail, err := s.services.Genres.Get(r.Context(), genreID)
	if err != nil {
		s.serveError(w, r, err)
		return
	}
	s.renderer.render(w, http.StatusOK, "genre_delete.html", genreDetailData{
		Title: "Delete Genre",
		Genre: detail.Genre,
		Books: detail.Books,
	})
}
