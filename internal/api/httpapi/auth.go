package httpapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type loginRequest struct {
	Nickname string `json:"nickname"`
	Password string `json:"password"`
}

type userView struct {
	ID       int64  `json:"id"`
	Nickname string `json:"nickname"`
	IsAdmin  bool   `json:"is_admin"`
}

type loginResponse struct {
	Token string   `json:"token"`
	User  userView `json:"user"`
}

// login registers or authenticates a nickname and issues a session token.
func (s *Server) login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "malformed request body"})
	}

	token, u, err := s.sessions.Login(c.Request().Context(), req.Nickname, req.Password)
	if err != nil {
		return fail(c, err)
	}

	s.presence.Touch(u.ID, u.Nickname)

	return c.JSON(http.StatusOK, loginResponse{
		Token: token,
		User:  userView{ID: u.ID, Nickname: u.Nickname, IsAdmin: u.IsAdmin},
	})
}

// logout deletes the caller's session and drops them from presence.
func (s *Server) logout(c echo.Context) error {
	u := currentUser(c)
	token := c.Request().Header.Get(SessionTokenHeader)
	if err := s.sessions.Logout(c.Request().Context(), token); err != nil {
		return fail(c, err)
	}
	s.presence.Leave(u.ID)
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// heartbeat keeps the caller marked online between other requests.
func (s *Server) heartbeat(c echo.Context) error {
	u := currentUser(c)
	if err := s.store.TouchUser(c.Request().Context(), u.ID); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

// onlineUsers lists who is currently in the lounge.
func (s *Server) onlineUsers(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"users": s.presence.Online(),
		"count": s.presence.Count(),
	})
}
