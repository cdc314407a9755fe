package handler

import (
	"net/http"

	"github.com/jefanko/app-updates/internal/auth"
	"go.uber.org/zap"
)

// AuthHandler reports who is signed in
type AuthHandler struct {
	logger *zap.Logger
}

func NewAuthHandler(logger *zap.Logger) *AuthHandler {
	return &AuthHandler{logger: logger}
}

// Me godoc
// @Summary Get the signed-in user
// @Tags Auth
// @Produce json
// @Success 200 {object} auth.UserContext
// @Failure 401 {object} domain.APIError
// @Router /auth/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userCtx, ok := auth.FromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "No user is signed in")
		return
	}
	respondJSON(w, http.StatusOK, userCtx)
}
