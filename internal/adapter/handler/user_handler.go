package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/srgjo27/captainbook/internal/core/services"
)

type UserHandler struct {
	svc          *services.SessionService
	secureCookie bool
	log          zerolog.Logger
}

func NewUserHandler(svc *services.SessionService, secureCookie bool, log zerolog.Logger) *UserHandler {
	return &UserHandler{svc: svc, secureCookie: secureCookie, log: log}
}

// POST /users/register
func (h *UserHandler) Register(c *gin.Context) {
	var req services.RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid json body")
		return
	}

	session, err := h.svc.RegisterUser(c.Request.Context(), req)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	setSessionCookie(c, session.Token, session.ExpiresAt, h.secureCookie)
	c.JSON(http.StatusCreated, gin.H{"token": session.Token, "user": session.User})
}

// POST /users/login
func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid json body")
		return
	}

	session, err := h.svc.LoginUser(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	setSessionCookie(c, session.Token, session.ExpiresAt, h.secureCookie)
	c.JSON(http.StatusOK, gin.H{"token": session.Token, "user": session.User})
}

// GET /users/profile
func (h *UserHandler) Profile(c *gin.Context) {
	user, err := h.svc.UserProfile(c.Request.Context(), principalFrom(c).ID)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// POST /users/logout
func (h *UserHandler) Logout(c *gin.Context) {
	if err := h.svc.Logout(c.Request.Context(), principalFrom(c)); err != nil {
		writeError(c, h.log, err)
		return
	}
	clearSessionCookie(c, h.secureCookie)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
