package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/signalist/signalist-api/internal/api/middleware"
)

// SessionHandler exposes the server-resolved identity so the client session
// sync layer has one authoritative source of truth.
type SessionHandler struct{}

func NewSessionHandler() *SessionHandler {
	return &SessionHandler{}
}

type sessionResponse struct {
	Kind   string `json:"kind"`
	UserID string `json:"user_id,omitempty"`
	Email  string `json:"email,omitempty"`
	Role   string `json:"role,omitempty"`
}

// Get handles GET /api/session.
//
// @Summary      Resolve the caller's identity
// @Tags         session
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /api/session [get]
func (h *SessionHandler) Get(c echo.Context) error {
	identity := middleware.IdentityFrom(c)
	return c.JSON(http.StatusOK, sessionResponse{
		Kind:   string(identity.Kind),
		UserID: identity.UserID,
		Email:  identity.Email,
		Role:   identity.Role,
	})
}
