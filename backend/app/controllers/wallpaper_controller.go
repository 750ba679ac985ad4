package controllers

import (
	"io"
	"net/http"
	"strconv"

	"jiansou/backend/app/services"

	"github.com/rs/zerolog"
)

type WallpaperController struct {
	Wallpapers *services.WallpaperService
	Log        zerolog.Logger
}

func NewWallpaperController(wallpapers *services.WallpaperService, log zerolog.Logger) *WallpaperController {
	return &WallpaperController{Wallpapers: wallpapers, Log: log}
}

// Random GET /api/wallpaper/random?source=picsum&width=1920&height=1080&blur=0
func (c *WallpaperController) Random(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := services.WallpaperQuery{Source: q.Get("source")}
	for name, dst := range map[string]*int{"width": &query.Width, "height": &query.Height, "blur": &query.Blur} {
		raw := q.Get(name)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid "+name)
			return
		}
		*dst = v
	}
	wp, err := c.Wallpapers.Random(r.Context(), query)
	if err != nil {
		writeServiceError(w, c.Log, err)
		return
	}
	defer wp.Body.Close()
	w.Header().Set("Content-Type", wp.ContentType)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, wp.Body); err != nil {
		c.Log.Debug().Err(err).Msg("wallpaper stream interrupted")
	}
}

// Sources GET /api/wallpaper/sources
func (c *WallpaperController) Sources(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"sources": c.Wallpapers.Sources()})
}
