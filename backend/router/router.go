package router

import (
	"net/http"

	"jiansou/backend/app/controllers"
	"jiansou/backend/app/middleware"
)

type Controllers struct {
	HTTP          *controllers.HTTPController
	Auth          *controllers.AuthController
	QuickLinks    *controllers.QuickLinkController
	SearchEngines *controllers.SearchEngineController
	Search        *controllers.SearchController
	Avatars       *controllers.AvatarController
	Wallpapers    *controllers.WallpaperController
}

func NewRouter(c Controllers, mw *middleware.Auth, loginLimit func(http.Handler) http.Handler) http.Handler {
	mux := http.NewServeMux()
	handle := func(pattern string, h http.Handler) {
		mux.Handle(pattern, middleware.WithRoute(pattern, h))
	}
	public := func(f http.HandlerFunc) http.Handler { return f }
	required := func(f http.HandlerFunc) http.Handler { return mw.RequireAuth(f) }
	optional := func(f http.HandlerFunc) http.Handler { return mw.OptionalAuth(f) }

	handle("GET /healthz", public(c.HTTP.Healthz))

	// auth
	handle("POST /api/auth/register", public(c.Auth.Register))
	handle("POST /api/auth/login", loginLimit(public(c.Auth.Login)))
	handle("GET /api/auth/me", required(c.Auth.Me))
	handle("PATCH /api/auth/me", required(c.Auth.UpdateMe))
	handle("POST /api/auth/password", required(c.Auth.ChangePassword))

	// quick links
	handle("GET /api/quick-links", optional(c.QuickLinks.List))
	handle("POST /api/quick-links", required(c.QuickLinks.Create))
	handle("PUT /api/quick-links/{id}", required(c.QuickLinks.Update))
	handle("DELETE /api/quick-links/{id}", required(c.QuickLinks.Delete))
	handle("GET /api/categories", public(c.QuickLinks.Categories))
	handle("GET /api/quick-links/categories", public(c.QuickLinks.Categories))

	// search engines
	handle("GET /api/search-engines", optional(c.SearchEngines.List))
	handle("GET /api/search-engines/default", optional(c.SearchEngines.Default))
	handle("POST /api/search-engines", required(c.SearchEngines.Create))
	handle("PUT /api/search-engines/{id}", required(c.SearchEngines.Update))
	handle("DELETE /api/search-engines/{id}", required(c.SearchEngines.Delete))

	// search
	handle("POST /api/search", required(c.Search.Do))
	handle("GET /api/search-history", required(c.Search.History))
	handle("DELETE /api/search-history", required(c.Search.ClearHistory))

	// avatars
	handle("POST /api/avatar/upload", required(c.Avatars.Upload))
	handle("DELETE /api/avatar", required(c.Avatars.Delete))
	handle("GET /api/avatar/download/{filename}", public(c.Avatars.Download))

	// wallpapers
	handle("GET /api/wallpaper/random", public(c.Wallpapers.Random))
	handle("GET /api/wallpaper/sources", public(c.Wallpapers.Sources))

	return mux
}
