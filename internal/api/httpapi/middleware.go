package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/SEUB66/sofartist-lounge/internal/domain/user"
)

// userContextKey is where the authenticated user lives in the echo context.
const userContextKey = "lounge.user"

// requireSession authenticates the session token header and records
// presence activity for the caller.
func (s *Server) requireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := c.Request().Header.Get(SessionTokenHeader)
		u, err := s.sessions.Authenticate(c.Request().Context(), token)
		if err != nil {
			return fail(c, err)
		}

		s.presence.Touch(u.ID, u.Nickname)
		c.Set(userContextKey, u)
		return next(c)
	}
}

// requireAdmin validates the static admin token header.
func (s *Server) requireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := c.Request().Header.Get(AdminTokenHeader)
		if token == "" || token != s.adminToken {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid admin token"})
		}
		return next(c)
	}
}

// currentUser returns the authenticated user set by requireSession.
func currentUser(c echo.Context) *user.User {
	u, _ := c.Get(userContextKey).(*user.User)
	return u
}
