package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/korvo-dev/echofeed/backend/internal/feed"
	"github.com/korvo-dev/echofeed/backend/internal/render"
)

// FeedHandler handles feed-related HTTP requests
type FeedHandler struct {
	aggregator *feed.Aggregator
	log        zerolog.Logger
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(aggregator *feed.Aggregator, log zerolog.Logger) *FeedHandler {
	return &FeedHandler{aggregator: aggregator, log: log}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feed", h.GetFeed)
}

// GetFeed assembles the ranked feed and returns the concatenated card
// fragments. Items whose detail fetch failed are dropped; their count is
// exposed in the X-Skipped-Items header.
func (h *FeedHandler) GetFeed(c echo.Context) error {
	result, err := h.aggregator.Aggregate(c.Request().Context())
	if err != nil {
		h.log.Error().Err(err).Msg("aggregating feed")
		return c.NoContent(http.StatusBadGateway)
	}

	html, err := render.Cards(result.Posts)
	if err != nil {
		h.log.Error().Err(err).Msg("rendering feed")
		return c.NoContent(http.StatusInternalServerError)
	}

	c.Response().Header().Set("X-Skipped-Items", strconv.Itoa(result.Skipped))
	return c.HTML(http.StatusOK, html)
}
