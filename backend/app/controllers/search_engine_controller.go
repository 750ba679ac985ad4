package controllers

import (
	"net/http"
	"strconv"

	"jiansou/backend/app/dto"
	"jiansou/backend/app/middleware"
	"jiansou/backend/app/services"

	"github.com/rs/zerolog"
)

type SearchEngineController struct {
	Engines *services.SearchEngineService
	Log     zerolog.Logger
}

func NewSearchEngineController(engines *services.SearchEngineService, log zerolog.Logger) *SearchEngineController {
	return &SearchEngineController{Engines: engines, Log: log}
}

// List GET /api/search-engines?active_only=true
func (c *SearchEngineController) List(w http.ResponseWriter, r *http.Request) {
	activeOnly := true
	if raw := r.URL.Query().Get("active_only"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid active_only")
			return
		}
		activeOnly = v
	}
	owner := services.Owner(middleware.CurrentUser(r.Context()))
	engines, err := c.Engines.List(r.Context(), owner, activeOnly)
	if err != nil {
		writeServiceError(w, c.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, engines)
}

// Default GET /api/search-engines/default
func (c *SearchEngineController) Default(w http.ResponseWriter, r *http.Request) {
	owner := services.Owner(middleware.CurrentUser(r.Context()))
	e, err := c.Engines.GetDefault(r.Context(), owner)
	if err != nil {
		writeServiceError(w, c.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

// Create POST /api/search-engines
func (c *SearchEngineController) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.SearchEngineRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	e, err := c.Engines.Create(r.Context(), middleware.CurrentUser(r.Context()).ID, req)
	if err != nil {
		writeServiceError(w, c.Log, err)
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

// Update PUT /api/search-engines/{id}
func (c *SearchEngineController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var patch dto.SearchEnginePatch
	if !decodeJSON(w, r, &patch) {
		return
	}
	e, err := c.Engines.Update(r.Context(), middleware.CurrentUser(r.Context()).ID, id, patch)
	if err != nil {
		writeServiceError(w, c.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

// Delete DELETE /api/search-engines/{id}
func (c *SearchEngineController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := c.Engines.Delete(r.Context(), middleware.CurrentUser(r.Context()).ID, id); err != nil {
		writeServiceError(w, c.Log, err)
		return
	}
	writeMessage(w, "search engine deleted")
}
