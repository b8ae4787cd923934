package web

import (
	"net/http"

	"github.com/locallibrary/catalog-server/internal/service"
)

// indexPageData contains data for the home page template.
type indexPageData struct {
	Title  string
	Counts *service.Counts
}

// handleIndex serves the home page with catalog record counts.
// GET /catalog
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	counts, err := s.services.Catalog.Counts(r.Context())
	if err != nil {
		s.serveError(w, r, err)
		return
	}

	s.renderer.render(w, http.StatusOK, "index.html", indexPageData{
		Title:  "Local Library Home",
		Counts: counts,
	})
}
