package dto

import (
	"time"

	"jiansou/backend/app/models"
)

type SearchEngineRequest struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	URLTemplate string `json:"url_template"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
	IsActive    *bool  `json:"is_active"`
	IsDefault   bool   `json:"is_default"`
	SortOrder   int    `json:"sort_order"`
}

type SearchEnginePatch struct {
	DisplayName Optional[string] `json:"display_name"`
	URLTemplate Optional[string] `json:"url_template"`
	Icon        Optional[string] `json:"icon"`
	Color       Optional[string] `json:"color"`
	IsActive    Optional[bool]   `json:"is_active"`
	IsDefault   Optional[bool]   `json:"is_default"`
	SortOrder   Optional[int]    `json:"sort_order"`
}

type SearchEngineResponse struct {
	ID          uint         `json:"id"`
	Name        string       `json:"name"`
	DisplayName string       `json:"display_name"`
	URLTemplate string       `json:"url_template"`
	Icon        string       `json:"icon"`
	Color       string       `json:"color"`
	IsActive    bool         `json:"is_active"`
	IsDefault   bool         `json:"is_default"`
	SortOrder   int          `json:"sort_order"`
	Owner       models.Owner `json:"user_id"`
	CreatedAt   time.Time    `json:"created_at"`
}

func SearchEngineFromModel(e *models.SearchEngine) SearchEngineResponse {
	return SearchEngineResponse{
		ID:          e.ID,
		Name:        e.Name,
		DisplayName: e.DisplayName,
		URLTemplate: e.URLTemplate,
		Icon:        e.Icon,
		Color:       e.Color,
		IsActive:    e.IsActive,
		IsDefault:   e.IsDefault,
		SortOrder:   e.SortOrder,
		Owner:       models.UserOwner(e.UserID),
		CreatedAt:   e.CreatedAt,
	}
}
