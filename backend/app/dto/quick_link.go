package dto

import (
	"time"

	"jiansou/backend/app/models"
)

type QuickLinkRequest struct {
	Name     string `json:"name"`
	URL      string `json:"url"`
	Icon     string `json:"icon"`
	Color    string `json:"color"`
	Category string `json:"category"`
}

type QuickLinkPatch struct {
	Name     Optional[string] `json:"name"`
	URL      Optional[string] `json:"url"`
	Icon     Optional[string] `json:"icon"`
	Color    Optional[string] `json:"color"`
	Category Optional[string] `json:"category"`
}

// QuickLinkResponse serves both persisted rows and default-dataset entries;
// Owner tells them apart.
type QuickLinkResponse struct {
	ID        uint         `json:"id"`
	Name      string       `json:"name"`
	URL       string       `json:"url"`
	Icon      string       `json:"icon"`
	Color     string       `json:"color"`
	Category  string       `json:"category"`
	Owner     models.Owner `json:"user_id"`
	CreatedAt time.Time    `json:"created_at"`
}

func QuickLinkFromModel(l *models.QuickLink) QuickLinkResponse {
	return QuickLinkResponse{
		ID:        l.ID,
		Name:      l.Name,
		URL:       l.URL,
		Icon:      l.Icon,
		Color:     l.Color,
		Category:  l.Category,
		Owner:     models.UserOwner(l.UserID),
		CreatedAt: l.CreatedAt,
	}
}
