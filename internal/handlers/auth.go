package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/taskmanager/internal/services"
	"github.com/monocle-dev/taskmanager/internal/types"
	"github.com/monocle-dev/taskmanager/internal/utils"
)

type AuthHandler struct {
	auth         *services.AuthService
	cookieDomain string
}

func NewAuthHandler(authService *services.AuthService, cookieDomain string) *AuthHandler {
	return &AuthHandler{auth: authService, cookieDomain: cookieDomain}
}

func (h *AuthHandler) Login(ctx *gin.Context) {
	var req types.LoginRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, err)
		return
	}

	token, _, err := h.auth.Login(ctx.Request.Context(), req.Email, req.Password)

	if err != nil {
		respondError(ctx, err)
		return
	}

	h.setTokenCookie(ctx, token, h.auth.TokenTTL())

	ctx.JSON(http.StatusOK, types.TokenResponse{Token: token})
}

func (h *AuthHandler) Logout(ctx *gin.Context) {
	h.setTokenCookie(ctx, "", -1)

	ctx.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func (h *AuthHandler) Me(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "User not authenticated"})
		return
	}

	ctx.JSON(http.StatusOK, types.NewUserResponse(currentUser))
}

func (h *AuthHandler) setTokenCookie(ctx *gin.Context, token string, maxAge int) {
	http.SetCookie(ctx.Writer, &http.Cookie{
		Name:     types.TokenCookie,
		Value:    token,
		Path:     "/",
		Domain:   h.cookieDomain,
		MaxAge:   maxAge,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteNoneMode,
	})
}
