package controllers

import (
	"errors"
	"io"
	"net/http"

	"jiansou/backend/app/dto"
	"jiansou/backend/app/middleware"
	"jiansou/backend/app/services"

	"github.com/rs/zerolog"
)

type AvatarController struct {
	Avatars *services.AvatarService
	Log     zerolog.Logger
}

func NewAvatarController(avatars *services.AvatarService, log zerolog.Logger) *AvatarController {
	return &AvatarController{Avatars: avatars, Log: log}
}

// Upload POST /api/avatar/upload (multipart field "file")
func (c *AvatarController) Upload(w http.ResponseWriter, r *http.Request) {
	// body limit allows for the multipart envelope around a max-size file
	r.Body = http.MaxBytesReader(w, r.Body, c.Avatars.MaxSize()+1<<20)
	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeServiceError(w, c.Log, services.ErrFileTooLarge)
			return
		}
		writeJSONError(w, http.StatusBadRequest, "missing file")
		return
	}
	defer file.Close()
	content, err := io.ReadAll(file)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "failed to read file")
		return
	}
	url, err := c.Avatars.Upload(r.Context(), middleware.CurrentUser(r.Context()), header.Filename, content)
	if err != nil {
		writeServiceError(w, c.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.AvatarResponse{Success: true, Message: "avatar uploaded", AvatarURL: url})
}

// Delete DELETE /api/avatar
func (c *AvatarController) Delete(w http.ResponseWriter, r *http.Request) {
	if err := c.Avatars.Delete(r.Context(), middleware.CurrentUser(r.Context())); err != nil {
		writeServiceError(w, c.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.AvatarResponse{Success: true, Message: "avatar deleted"})
}

// Download GET /api/avatar/download/{filename}
func (c *AvatarController) Download(w http.ResponseWriter, r *http.Request) {
	body, ctype, err := c.Avatars.Open(r.Context(), r.PathValue("filename"))
	if err != nil {
		writeServiceError(w, c.Log, err)
		return
	}
	w.Header().Set("Content-Type", ctype)
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
