package httpapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

type postMessageRequest struct {
	Body string `json:"body"`
}

// postMessage stores a chat message from the caller.
func (s *Server) postMessage(c echo.Context) error {
	var req postMessageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "malformed request body"})
	}

	msg, err := s.chat.Post(c.Request().Context(), currentUser(c).ID, req.Body)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, msg)
}

// listMessages serves the chat polling read: messages with id greater
// than the caller's high-water mark, oldest first.
func (s *Server) listMessages(c echo.Context) error {
	after := int64(0)
	if v := c.QueryParam("after"); v != "" {
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil || parsed < 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "after must be a non-negative integer"})
		}
		after = parsed
	}

	limit := 0
	if v := c.QueryParam("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "limit must be a positive integer"})
		}
		limit = parsed
	}

	msgs, err := s.chat.Since(c.Request().Context(), after, limit)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"messages": msgs})
}
