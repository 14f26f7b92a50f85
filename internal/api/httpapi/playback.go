package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type setTrackRequest struct {
	// TrackID is an opaque index into each client's local track list.
	// Null clears the track and stops playback.
	TrackID *int64 `json:"track_id"`
}

type setPlayingRequest struct {
	IsPlaying bool `json:"is_playing"`
}

type setPositionRequest struct {
	PositionSeconds float64 `json:"position_seconds"`
}

// getPlayback returns the shared playback state, creating the default
// record on first read.
func (s *Server) getPlayback(c echo.Context) error {
	state, err := s.jukebox.State(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, state)
}

// setTrack switches the shared track. Position resets and the playing
// flag follows whether a track was selected.
func (s *Server) setTrack(c echo.Context) error {
	var req setTrackRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "track_id must be an integer or null"})
	}

	if err := s.jukebox.SetTrack(c.Request().Context(), req.TrackID); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// setPlaying flips only the shared play/pause flag.
func (s *Server) setPlaying(c echo.Context) error {
	var req setPlayingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "is_playing must be a boolean"})
	}

	if err := s.jukebox.SetPlaying(c.Request().Context(), req.IsPlaying); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// setPosition moves only the shared playhead (scrub/seek hook).
func (s *Server) setPosition(c echo.Context) error {
	var req setPositionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "position_seconds must be a number"})
	}

	if err := s.jukebox.SetPosition(c.Request().Context(), req.PositionSeconds); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
