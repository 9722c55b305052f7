package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/aswin071/Expense-Tracker/internal/auth"
	dom "github.com/aswin071/Expense-Tracker/internal/domain"
	"github.com/aswin071/Expense-Tracker/internal/dto"
	"github.com/aswin071/Expense-Tracker/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// AuthHandler handles login, token refresh and logout.
type AuthHandler struct {
	userSvc *service.UserService
	tokens  *auth.TokenIssuer
	revoked *auth.RevocationStore // nil disables revocation
}

// NewAuthHandler returns a new AuthHandler. revoked may be nil.
func NewAuthHandler(userSvc *service.UserService, tokens *auth.TokenIssuer, revoked *auth.RevocationStore) *AuthHandler {
	return &AuthHandler{userSvc: userSvc, tokens: tokens, revoked: revoked}
}

// Login godoc
// @Summary      Login (OAuth2 password form)
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        username  formData  string  true  "Username"
// @Param        password  formData  string  true  "Password"
// @Success      200   {object}  dto.TokenResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindWith(&req, binding.Form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.login(c, req)
}

// LoginJSON godoc
// @Summary      Login (JSON)
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "Credentials"
// @Success      200   {object}  dto.TokenResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /auth/login-json [post]
func (h *AuthHandler) LoginJSON(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.login(c, req)
}

func (h *AuthHandler) login(c *gin.Context, req dto.LoginRequest) {
	user, err := h.userSvc.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	h.issue(c, user)
}

// Refresh godoc
// @Summary      Exchange a refresh token for a new token pair
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RefreshRequest  true  "Refresh token"
// @Success      200   {object}  dto.TokenResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	claims, ok := h.parseRefresh(c, req.RefreshToken)
	if !ok {
		return
	}
	userID, _ := claims.UserID()
	user, err := h.userSvc.GetByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			invalidToken(c)
			return
		}
		respondError(c, err)
		return
	}
	// The presented token is single use.
	claimed, err := h.revoke(c, claims)
	if err != nil {
		respondError(c, err)
		return
	}
	if !claimed {
		invalidToken(c)
		return
	}
	h.issue(c, user)
}

// Logout godoc
// @Summary      Revoke a refresh token
// @Tags         auth
// @Accept       json
// @Param        body  body  dto.RefreshRequest  true  "Refresh token"
// @Success      204
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	claims, ok := h.parseRefresh(c, req.RefreshToken)
	if !ok {
		return
	}
	if _, err := h.revoke(c, claims); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AuthHandler) issue(c *gin.Context, user dom.User) {
	if !user.IsActive {
		c.JSON(http.StatusForbidden, gin.H{"error": "user account is inactive"})
		return
	}
	pair, err := h.tokens.IssuePair(user)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    "bearer",
	})
}

func (h *AuthHandler) parseRefresh(c *gin.Context, raw string) (auth.Claims, bool) {
	claims, err := h.tokens.Parse(raw, auth.TypeRefresh)
	if err != nil {
		invalidToken(c)
		return auth.Claims{}, false
	}
	if h.revoked != nil {
		revoked, err := h.revoked.IsRevoked(c.Request.Context(), claims.ID)
		if err != nil {
			respondError(c, err)
			return auth.Claims{}, false
		}
		if revoked {
			invalidToken(c)
			return auth.Claims{}, false
		}
	}
	return claims, true
}

// revoke claims the token's jti. Without a revocation store every call claims it.
func (h *AuthHandler) revoke(c *gin.Context, claims auth.Claims) (bool, error) {
	if h.revoked == nil || claims.ExpiresAt == nil {
		return true, nil
	}
	return h.revoked.Revoke(c.Request.Context(), claims.ID, time.Until(claims.ExpiresAt.Time))
}

func invalidToken(c *gin.Context) {
	c.Header("WWW-Authenticate", "Bearer")
	c.JSON(http.StatusUnauthorized, gin.H{"error": "could not validate credentials"})
}
