package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
)

type adminUserView struct {
	ID          int64  `json:"id"`
	Nickname    string `json:"nickname"`
	IsAdmin     bool   `json:"is_admin"`
	HasPassword bool   `json:"has_password"`
	CreatedAt   string `json:"created_at"`
	LastSeenAt  string `json:"last_seen_at,omitempty"`
}

// adminListUsers lists every registered user.
func (s *Server) adminListUsers(c echo.Context) error {
	users, err := s.store.ListUsers(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}

	views := make([]adminUserView, len(users))
	for i, u := range users {
		v := adminUserView{
			ID:          u.ID,
			Nickname:    u.Nickname,
			IsAdmin:     u.IsAdmin,
			HasPassword: u.HasPassword(),
			CreatedAt:   u.CreatedAt.Format(time.RFC3339),
		}
		if u.LastSeenAt != nil {
			v.LastSeenAt = u.LastSeenAt.Format(time.RFC3339)
		}
		views[i] = v
	}
	return c.JSON(http.StatusOK, echo.Map{"users": views})
}

// adminDeleteMessage removes any chat message.
func (s *Server) adminDeleteMessage(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id must be an integer"})
	}
	if err := s.store.DeleteMessage(c.Request().Context(), id); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// adminDeleteMedia removes any shared link.
func (s *Server) adminDeleteMedia(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id must be an integer"})
	}
	if err := s.library.Remove(c.Request().Context(), id, 0, true); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// adminResetPlayback puts the shared playback state back to defaults.
func (s *Server) adminResetPlayback(c echo.Context) error {
	if err := s.store.ResetPlayback(c.Request().Context()); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
