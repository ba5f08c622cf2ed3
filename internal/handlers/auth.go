package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/korvo-dev/echofeed/backend/internal/auth"
	"github.com/korvo-dev/echofeed/backend/internal/models"
	"github.com/korvo-dev/echofeed/backend/internal/render"
	"github.com/korvo-dev/echofeed/backend/internal/repositories"
)

// AuthHandler handles sign-up and sign-in.
type AuthHandler struct {
	userRepository repositories.UserRepository
	codec          *auth.Codec
	log            zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userRepo repositories.UserRepository, codec *auth.Codec, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		userRepository: userRepo,
		codec:          codec,
		log:            log,
	}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/sign-up", h.SignUp)
	g.POST("/sign-in", h.SignIn)
}

// SignUp creates an account and hands the caller its access key. The key is
// the only credential; there is no password.
func (h *AuthHandler) SignUp(c echo.Context) error {
	var req models.SignUpRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	userID := uuid.New()
	user := &models.User{
		ID:         userID,
		Username:   req.Username,
		Hash:       accessKey(userID),
		SavedPosts: models.Int64Array{},
	}

	if err := h.userRepository.CreateUser(c.Request().Context(), user); err != nil {
		h.log.Error().Err(err).Msg("creating user")
		return c.NoContent(http.StatusInternalServerError)
	}

	fragment, err := render.SignUpKey(user.Hash)
	if err != nil {
		h.log.Error().Err(err).Msg("rendering sign-up fragment")
		return c.NoContent(http.StatusInternalServerError)
	}
	return c.HTML(http.StatusOK, fragment)
}

// SignIn exchanges an access key for a bearer token.
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req models.SignInRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.userRepository.GetUserByHash(c.Request().Context(), req.Hash)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.NoContent(http.StatusUnauthorized)
		}
		h.log.Error().Err(err).Msg("looking up user by access key")
		return c.NoContent(http.StatusInternalServerError)
	}

	token, err := h.codec.Sign(user.ID)
	if err != nil {
		h.log.Error().Err(err).Msg("signing token")
		return c.NoContent(http.StatusInternalServerError)
	}

	c.Response().Header().Set("Set-Cookie", token)
	c.Response().Header().Set("HX-Location", "/")
	return c.String(http.StatusOK, token)
}

// accessKey derives the user's private key from its freshly minted id.
func accessKey(id uuid.UUID) string {
	return fmt.Sprintf("%#01x", xxhash.Sum64String(id.String()))
}
