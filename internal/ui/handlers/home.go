package handlers

import (
	"net/http"

	"github.com/komfort-mfg/komfort-admin/internal/ui/routes"
	"github.com/komfort-mfg/komfort-admin/internal/ui/templates"
)

// HandleHome renders the start page with a card per section
func (h *HandlerService) HandleHome(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, templates.HomePage())
}

// HandleNotFound renders the page for unknown paths
func (h *HandlerService) HandleNotFound(w http.ResponseWriter, r *http.Request) {
	r = r.WithContext(routes.WithRoute(r.Context(), routes.NotFoundRoute))
	h.renderPageStatus(w, r, http.StatusNotFound, templates.NotFoundPage())
}
