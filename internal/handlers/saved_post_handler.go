package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/korvo-dev/echofeed/backend/internal/middleware"
	"github.com/korvo-dev/echofeed/backend/internal/models"
	"github.com/korvo-dev/echofeed/backend/internal/render"
	"github.com/korvo-dev/echofeed/backend/internal/repositories"
)

// SavedPostHandler handles saved post HTTP requests
type SavedPostHandler struct {
	savedPostRepository repositories.SavedPostRepository
	log                 zerolog.Logger
}

// NewSavedPostHandler creates a new SavedPostHandler
func NewSavedPostHandler(savedPostRepo repositories.SavedPostRepository, log zerolog.Logger) *SavedPostHandler {
	return &SavedPostHandler{
		savedPostRepository: savedPostRepo,
		log:                 log,
	}
}

// RegisterSavedPostRoutes registers saved post routes
func (h *SavedPostHandler) RegisterSavedPostRoutes(g *echo.Group) {
	g.POST("/save", h.SavePost)
	g.POST("/saved", h.GetSavedPosts)
	g.GET("/saved", h.GetSavedPosts)
}

// SavePost persists a post into the current user's saved collection. The
// record is content-addressed, so re-saving the same item is a no-op.
func (h *SavedPostHandler) SavePost(c echo.Context) error {
	userID, ok := middleware.CurrentUser(c)
	if !ok {
		return c.NoContent(http.StatusUnauthorized)
	}

	var req models.SavePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	record, err := req.ToPost().ToRecord()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.savedPostRepository.SavePost(c.Request().Context(), record, userID); err != nil {
		h.log.Error().Err(err).Str("hash", record.Hash).Msg("saving post")
		return c.NoContent(http.StatusInternalServerError)
	}

	return c.HTML(http.StatusOK, render.SavedButtonFragment)
}

// GetSavedPosts renders the current user's saved collection as card
// fragments, newest first.
func (h *SavedPostHandler) GetSavedPosts(c echo.Context) error {
	userID, ok := middleware.CurrentUser(c)
	if !ok {
		return c.NoContent(http.StatusUnauthorized)
	}

	records, err := h.savedPostRepository.ListSavedByUser(c.Request().Context(), userID)
	if err != nil {
		h.log.Error().Err(err).Msg("listing saved posts")
		return c.NoContent(http.StatusInternalServerError)
	}

	posts := make([]models.Post, len(records))
	for i, r := range records {
		posts[i] = r.ToPost()
	}

	html, err := render.Cards(posts)
	if err != nil {
		h.log.Error().Err(err).Msg("rendering saved posts")
		return c.NoContent(http.StatusInternalServerError)
	}
	return c.HTML(http.StatusOK, html)
}
