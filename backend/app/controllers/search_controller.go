package controllers

import (
	"net/http"
	"strconv"

	"jiansou/backend/app/dto"
	"jiansou/backend/app/middleware"
	"jiansou/backend/app/services"

	"github.com/rs/zerolog"
)

type SearchController struct {
	Search *services.SearchService
	Log    zerolog.Logger
}

func NewSearchController(search *services.SearchService, log zerolog.Logger) *SearchController {
	return &SearchController{Search: search, Log: log}
}

// Do POST /api/search
func (c *SearchController) Do(w http.ResponseWriter, r *http.Request) {
	var req dto.SearchRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	resp, err := c.Search.Search(r.Context(), middleware.CurrentUser(r.Context()).ID, req)
	if err != nil {
		writeServiceError(w, c.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// History GET /api/search-history?limit=10
func (c *SearchController) History(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			writeJSONError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = v
	}
	hist, err := c.Search.History(r.Context(), middleware.CurrentUser(r.Context()).ID, limit)
	if err != nil {
		writeServiceError(w, c.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, hist)
}

// ClearHistory DELETE /api/search-history
func (c *SearchController) ClearHistory(w http.ResponseWriter, r *http.Request) {
	n, err := c.Search.ClearHistory(r.Context(), middleware.CurrentUser(r.Context()).ID)
	if err != nil {
		writeServiceError(w, c.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "search history cleared", "deleted": n})
}
