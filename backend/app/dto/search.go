package dto

import (
	"time"

	"jiansou/backend/app/models"
)

type SearchRequest struct {
	Query        string `json:"query"`
	SearchEngine string `json:"search_engine"`
}

type SearchResponse struct {
	SearchURL    string `json:"search_url"`
	SearchEngine string `json:"search_engine"`
	Query        string `json:"query"`
}

type SearchHistoryResponse struct {
	ID           uint      `json:"id"`
	Query        string    `json:"query"`
	SearchEngine string    `json:"search_engine"`
	CreatedAt    time.Time `json:"created_at"`
}

func SearchHistoryFromModel(h *models.SearchHistory) SearchHistoryResponse {
	return SearchHistoryResponse{ID: h.ID, Query: h.Query, SearchEngine: h.SearchEngine, CreatedAt: h.CreatedAt}
}
