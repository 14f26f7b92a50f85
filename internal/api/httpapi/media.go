package httpapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

type shareMediaRequest struct {
	URL   string `json:"url"`
	Title string `json:"title"`
	Kind  string `json:"kind"`
}

// shareMedia adds a link to the shared library.
func (s *Server) shareMedia(c echo.Context) error {
	var req shareMediaRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "malformed request body"})
	}

	item, err := s.library.Share(c.Request().Context(), currentUser(c).ID, req.URL, req.Title, req.Kind)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, item)
}

// listMedia lists shared links, optionally filtered by kind.
func (s *Server) listMedia(c echo.Context) error {
	items, err := s.library.List(c.Request().Context(), c.QueryParam("kind"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"media": items})
}

// deleteMedia removes a link the caller owns.
func (s *Server) deleteMedia(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id must be an integer"})
	}

	u := currentUser(c)
	if err := s.library.Remove(c.Request().Context(), id, u.ID, u.IsAdmin); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

type presignUploadRequest struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
}

// presignUpload brokers a file upload: the response carries a presigned
// PUT URL the client uploads to directly.
func (s *Server) presignUpload(c echo.Context) error {
	var req presignUploadRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "malformed request body"})
	}
	if req.Filename == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "filename is required"})
	}

	upload, err := s.uploads.PresignUpload(c.Request().Context(), req.Filename, req.ContentType)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, upload)
}
