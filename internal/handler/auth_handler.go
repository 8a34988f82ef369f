package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"meetme-api/internal/auth"
	"meetme-api/internal/middleware"
	"meetme-api/internal/model"
)

const refreshTokenCookie = "refresh_token"

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
}

func newUserResponse(u *model.User) userResponse {
	return userResponse{ID: u.ID, Name: u.Name, Email: u.Email, IsAdmin: u.IsAdmin}
}

func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}
	if req.Email == "" || req.Password == "" || req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "all fields required"})
		return
	}
	if len(req.Password) < 8 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "password too short"})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.log.Error().Err(err).Msg("hash password")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
		return
	}

	u := &model.User{
		ID:           uuid.New().String(),
		Email:        req.Email,
		PasswordHash: hash,
		Name:         req.Name,
	}

	if err := h.store.CreateUser(c.Request.Context(), u); err != nil {
		// unique violation = dup email, but don't reveal that
		h.log.Warn().Err(err).Msg("create user")
		c.JSON(http.StatusConflict, gin.H{"message": "registration failed"})
		return
	}

	if err := h.issueSession(c, u.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
		return
	}

	h.log.Info().Str("user_id", u.ID).Msg("user registered")
	c.JSON(http.StatusCreated, newUserResponse(u))
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "email and password required"})
		return
	}

	u, err := h.store.UserByEmail(c.Request.Context(), req.Email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid email or password"})
		return
	}
	if !auth.CheckPassword(u.PasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid email or password"})
		return
	}

	if err := h.issueSession(c, u.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
		return
	}

	h.log.Info().Str("user_id", u.ID).Msg("user logged in")
	c.JSON(http.StatusOK, newUserResponse(u))
}

func (h *Handler) Refresh(c *gin.Context) {
	raw, err := c.Cookie(refreshTokenCookie)
	if err != nil || raw == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "refresh token required"})
		return
	}

	rt, err := h.store.RefreshTokenByHash(c.Request.Context(), auth.HashRefreshToken(raw))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid refresh token"})
		return
	}
	if rt.Revoked || time.Now().After(rt.ExpiresAt) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid refresh token"})
		return
	}

	newRaw, newHash, err := auth.GenerateRefreshToken()
	if err != nil {
		h.log.Error().Err(err).Msg("generate refresh token")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
		return
	}
	newID := uuid.New().String()
	expiry := time.Now().Add(auth.RefreshTokenTTL)
	if err := h.store.RotateRefreshToken(c.Request.Context(), rt.ID, newID, rt.UserID, newHash, expiry); err != nil {
		h.log.Error().Err(err).Msg("rotate refresh token")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
		return
	}

	access, err := auth.MakeToken(rt.UserID, h.secret)
	if err != nil {
		h.log.Error().Err(err).Msg("make access token")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
		return
	}

	setAccessCookie(c, access)
	setRefreshCookie(c, newRaw)
	c.JSON(http.StatusOK, gin.H{"message": "token refreshed"})
}

func (h *Handler) Logout(c *gin.Context) {
	userID := middleware.UserID(c)
	if err := h.store.RevokeAllRefreshTokens(c.Request.Context(), userID); err != nil {
		h.log.Error().Err(err).Msg("revoke refresh tokens")
	}

	clearCookie(c, middleware.AccessTokenCookie)
	clearCookie(c, refreshTokenCookie)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

func (h *Handler) Profile(c *gin.Context) {
	u, err := h.store.UserByID(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "user not found"})
		return
	}
	c.JSON(http.StatusOK, newUserResponse(u))
}

// issueSession mints the access token and a fresh refresh token and sets
// both as http-only cookies.
func (h *Handler) issueSession(c *gin.Context, userID string) error {
	access, err := auth.MakeToken(userID, h.secret)
	if err != nil {
		h.log.Error().Err(err).Msg("make access token")
		return err
	}

	rawRefresh, tokenHash, err := auth.GenerateRefreshToken()
	if err != nil {
		h.log.Error().Err(err).Msg("generate refresh token")
		return err
	}
	expiry := time.Now().Add(auth.RefreshTokenTTL)
	if _, err := h.store.CreateRefreshToken(c.Request.Context(), userID, tokenHash, expiry); err != nil {
		h.log.Error().Err(err).Msg("store refresh token")
		return err
	}

	setAccessCookie(c, access)
	setRefreshCookie(c, rawRefresh)
	return nil
}

func setAccessCookie(c *gin.Context, token string) {
	c.SetCookie(middleware.AccessTokenCookie, token,
		int(auth.AccessTokenTTL.Seconds()), "/", "", false, true)
}

func setRefreshCookie(c *gin.Context, token string) {
	c.SetCookie(refreshTokenCookie, token,
		int(auth.RefreshTokenTTL.Seconds()), "/", "", false, true)
}

func clearCookie(c *gin.Context, name string) {
	c.SetCookie(name, "", -1, "/", "", false, true)
}
