package controllers

import (
	"net/http"

	"jiansou/backend/app/dto"
	"jiansou/backend/app/middleware"
	"jiansou/backend/app/services"

	"github.com/rs/zerolog"
)

type QuickLinkController struct {
	Links *services.QuickLinkService
	Log   zerolog.Logger
}

func NewQuickLinkController(links *services.QuickLinkService, log zerolog.Logger) *QuickLinkController {
	return &QuickLinkController{Links: links, Log: log}
}

// List GET /api/quick-links?category=...
func (c *QuickLinkController) List(w http.ResponseWriter, r *http.Request) {
	owner := services.Owner(middleware.CurrentUser(r.Context()))
	links, err := c.Links.List(r.Context(), owner, r.URL.Query().Get("category"))
	if err != nil {
		writeServiceError(w, c.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, links)
}

// Create POST /api/quick-links
func (c *QuickLinkController) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.QuickLinkRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	link, err := c.Links.Create(r.Context(), middleware.CurrentUser(r.Context()).ID, req)
	if err != nil {
		writeServiceError(w, c.Log, err)
		return
	}
	writeJSON(w, http.StatusCreated, link)
}

// Update PUT /api/quick-links/{id}
func (c *QuickLinkController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var patch dto.QuickLinkPatch
	if !decodeJSON(w, r, &patch) {
		return
	}
	link, err := c.Links.Update(r.Context(), middleware.CurrentUser(r.Context()).ID, id, patch)
	if err != nil {
		writeServiceError(w, c.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, link)
}

// Delete DELETE /api/quick-links/{id}
func (c *QuickLinkController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := c.Links.Delete(r.Context(), middleware.CurrentUser(r.Context()).ID, id); err != nil {
		writeServiceError(w, c.Log, err)
		return
	}
	writeMessage(w, "quick link deleted")
}

// Categories GET /api/categories and /api/quick-links/categories
func (c *QuickLinkController) Categories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, c.Links.Categories())
}
