// Package httpapi exposes the lounge over a JSON HTTP API.
//
// Clients are pollers: chat and playback state are re-fetched on an
// interval rather than pushed, so every handler is stateless and cheap.
package httpapi

import (
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/labstack/echo/v4"

	"github.com/SEUB66/sofartist-lounge/internal/app/chat"
	"github.com/SEUB66/sofartist-lounge/internal/app/jukebox"
	"github.com/SEUB66/sofartist-lounge/internal/app/library"
	"github.com/SEUB66/sofartist-lounge/internal/app/presence"
	"github.com/SEUB66/sofartist-lounge/internal/app/session"
	"github.com/SEUB66/sofartist-lounge/internal/domain/media"
	"github.com/SEUB66/sofartist-lounge/internal/domain/message"
	"github.com/SEUB66/sofartist-lounge/internal/domain/playback"
	"github.com/SEUB66/sofartist-lounge/internal/domain/user"
	"github.com/SEUB66/sofartist-lounge/internal/infra/objstore"
	"github.com/SEUB66/sofartist-lounge/internal/infra/store"
)

// Header names used by the API.
const (
	SessionTokenHeader = "X-Session-Token"
	AdminTokenHeader   = "X-Admin-Token"
)

// Server glues the application services to the HTTP surface.
type Server struct {
	sessions   *session.Manager
	presence   *presence.Tracker
	chat       *chat.Service
	library    *library.Service
	jukebox    *jukebox.Coordinator
	uploads    objstore.Broker
	store      *store.Store
	adminToken string
}

// Deps collects everything the server needs.
type Deps struct {
	Sessions   *session.Manager
	Presence   *presence.Tracker
	Chat       *chat.Service
	Library    *library.Service
	Jukebox    *jukebox.Coordinator
	Uploads    objstore.Broker
	Store      *store.Store
	AdminToken string
}

// NewServer creates the API server.
func NewServer(deps Deps) *Server {
	return &Server{
		sessions:   deps.Sessions,
		presence:   deps.Presence,
		chat:       deps.Chat,
		library:    deps.Library,
		jukebox:    deps.Jukebox,
		uploads:    deps.Uploads,
		store:      deps.Store,
		adminToken: deps.AdminToken,
	}
}

// Router builds the echo instance with all routes registered.
func (s *Server) Router() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	api := e.Group("/api")
	api.GET("/health", s.health)
	api.POST("/login", s.login)

	authed := api.Group("", s.requireSession)
	authed.POST("/logout", s.logout)
	authed.POST("/heartbeat", s.heartbeat)
	authed.GET("/users/online", s.onlineUsers)
	authed.GET("/messages", s.listMessages)
	authed.POST("/messages", s.postMessage)
	authed.GET("/media", s.listMedia)
	authed.POST("/media", s.shareMedia)
	authed.DELETE("/media/:id", s.deleteMedia)
	authed.POST("/uploads", s.presignUpload)

	// The playback surface is deliberately ungated: any connected client
	// may mutate the shared state.
	api.GET("/playback", s.getPlayback)
	api.POST("/playback/track", s.setTrack)
	api.POST("/playback/playing", s.setPlaying)
	api.POST("/playback/position", s.setPosition)

	admin := api.Group("/admin", s.requireAdmin)
	admin.GET("/users", s.adminListUsers)
	admin.DELETE("/messages/:id", s.adminDeleteMessage)
	admin.DELETE("/media/:id", s.adminDeleteMedia)
	admin.POST("/playback/reset", s.adminResetPlayback)

	return e
}

func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

// fail maps domain errors onto HTTP status codes.
func fail(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, user.ErrInvalidNickname),
		errors.Is(err, message.ErrInvalidBody),
		errors.Is(err, media.ErrInvalidKind),
		errors.Is(err, media.ErrInvalidURL),
		errors.Is(err, playback.ErrNegativePosition),
		errors.Is(err, playback.ErrNegativeTrackID),
		errors.Is(err, objstore.ErrUploadsDisabled):
		status = http.StatusBadRequest
	case errors.Is(err, session.ErrPasswordRequired),
		errors.Is(err, user.ErrWrongPassword),
		errors.Is(err, session.ErrNotAuthenticated):
		status = http.StatusUnauthorized
	case errors.Is(err, library.ErrNotOwner):
		status = http.StatusForbidden
	case errors.Is(err, media.ErrNotFound), errors.Is(err, user.ErrNotFound):
		status = http.StatusNotFound
	}
	return c.JSON(status, echo.Map{"error": err.Error()})
}
