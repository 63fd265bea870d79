package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cppla/postbox/middleware"
	"github.com/cppla/postbox/store"
	"github.com/cppla/postbox/utils"
	"github.com/cppla/postbox/validators"
)

// AuthController handles registration, login and logout.
type AuthController struct {
	users *store.UserStore
}

// NewAuthController creates an AuthController.
func NewAuthController(users *store.UserStore) *AuthController {
	return &AuthController{users: users}
}

// Register validates a sign-up payload and creates an active user.
// The response is the user without its password.
func (a *AuthController) Register(ctx *gin.Context) {
	payload, ok := bindPayload(ctx)
	if !ok {
		return
	}

	reg, err := validators.ValidateRegistration(payload)
	if err != nil {
		respondError(ctx, err)
		return
	}

	hash, err := utils.HashPassword(reg.Password)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50002, "failed to hash password")
		return
	}

	user := a.users.Add(reg.Username, reg.Email, hash, true)
	utils.Logger.Info("user registered", zap.Int("user_id", user.ID), zapRequestID(ctx))
	utils.Success(ctx, user)
}

// Login verifies email and password and issues a JWT whose subject is the user name.
func (a *AuthController) Login(ctx *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40003, "invalid request payload")
		return
	}

	ip := ctx.ClientIP()
	if utils.LoginIsBanned(ip) {
		utils.Error(ctx, http.StatusTooManyRequests, 42901, "too many failed logins, try again later")
		return
	}

	user, ok := a.users.GetByEmail(req.Email)
	if !ok {
		utils.LoginFailRecord(ip)
		utils.Error(ctx, http.StatusUnauthorized, 40106, "Bad username")
		return
	}
	if !utils.CheckPassword(user.Password, req.Password) {
		utils.LoginFailRecord(ip)
		utils.Error(ctx, http.StatusUnauthorized, 40107, "Bad password")
		return
	}
	utils.LoginReset(ip)

	token, err := utils.GenerateToken(user.ID, user.Name, utils.TokenTTL())
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50004, "failed to generate token")
		return
	}

	utils.Success(ctx, gin.H{
		"message":      "Hello, " + user.Name,
		"access_token": token,
	})
}

// Logout revokes the caller's token until it expires.
func (a *AuthController) Logout(ctx *gin.Context) {
	token := strings.TrimSpace(ctx.GetString(middleware.ContextTokenKey))
	claims, err := utils.ParseToken(token)
	if err != nil {
		utils.Error(ctx, http.StatusUnauthorized, 40105, "invalid token")
		return
	}

	expiresAt := time.Now().Add(utils.TokenTTL())
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	utils.BlacklistToken(token, expiresAt)
	utils.Success(ctx, gin.H{"message": "logged out"})
}
