package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/srgjo27/captainbook/internal/core/domain"
	"github.com/srgjo27/captainbook/internal/core/services"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CaptainHandler struct {
	svc          *services.SessionService
	secureCookie bool
	log          zerolog.Logger
}

func NewCaptainHandler(svc *services.SessionService, secureCookie bool, log zerolog.Logger) *CaptainHandler {
	return &CaptainHandler{svc: svc, secureCookie: secureCookie, log: log}
}

// POST /captains/register
func (h *CaptainHandler) Register(c *gin.Context) {
	var req services.RegisterCaptainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid json body")
		return
	}

	session, err := h.svc.RegisterCaptain(c.Request.Context(), req)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	setSessionCookie(c, session.Token, session.ExpiresAt, h.secureCookie)
	c.JSON(http.StatusCreated, gin.H{"token": session.Token, "captain": session.Captain})
}

// POST /captains/login
func (h *CaptainHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid json body")
		return
	}

	session, err := h.svc.LoginCaptain(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	setSessionCookie(c, session.Token, session.ExpiresAt, h.secureCookie)
	c.JSON(http.StatusOK, gin.H{"token": session.Token, "captain": session.Captain})
}

// GET /captains/profile
func (h *CaptainHandler) Profile(c *gin.Context) {
	captain, err := h.svc.CaptainProfile(c.Request.Context(), principalFrom(c).ID)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"captain": captain})
}

// PUT /captains/profile
func (h *CaptainHandler) UpdateProfile(c *gin.Context) {
	var req services.UpdateCaptainProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid json body")
		return
	}

	captain, err := h.svc.UpdateCaptainProfile(c.Request.Context(), principalFrom(c).ID, req)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Profile updated successfully", "captain": captain})
}

type statusRequest struct {
	Status domain.PresenceStatus `json:"status"`
}

// PATCH /captains/status
func (h *CaptainHandler) SetStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid json body")
		return
	}

	captain, err := h.svc.SetCaptainStatus(c.Request.Context(), principalFrom(c).ID, req.Status)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "captain": captain})
}

// GET /captains/logout
func (h *CaptainHandler) Logout(c *gin.Context) {
	if err := h.svc.Logout(c.Request.Context(), principalFrom(c)); err != nil {
		writeError(c, h.log, err)
		return
	}
	clearSessionCookie(c, h.secureCookie)
	c.JSON(http.StatusOK, gin.H{"message": "Logout successfully"})
}

func setSessionCookie(c *gin.Context, token string, expiresAt time.Time, secure bool) {
	maxAge := int(time.Until(expiresAt).Seconds())
	if maxAge < 0 {
		maxAge = 0
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(tokenCookie, token, maxAge, "/", "", secure, true)
}

func clearSessionCookie(c *gin.Context, secure bool) {
	c.SetCookie(tokenCookie, "", -1, "/", "", secure, true)
}
