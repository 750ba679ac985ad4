package dto

type AvatarResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

type WallpaperSource struct {
	Name       string   `json:"name"`
	BaseURL    string   `json:"base_url"`
	Categories []string `json:"categories,omitempty"`
	Blur       bool     `json:"blur_support,omitempty"`
}
