package controllers

import (
	"net/http"

	"gorm.io/gorm"
)

type HTTPController struct {
	DB *gorm.DB
}

func NewHTTPController(db *gorm.DB) *HTTPController {
	return &HTTPController{DB: db}
}

// Healthz GET /healthz
func (c *HTTPController) Healthz(w http.ResponseWriter, r *http.Request) {
	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err != nil || sqlDB.PingContext(r.Context()) != nil {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("database unavailable"))
			return
		}
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
