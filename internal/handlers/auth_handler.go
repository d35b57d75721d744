package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/photo-studio/internal/auth"
	"github.com/BruksfildServices01/photo-studio/internal/dto"
	"github.com/BruksfildServices01/photo-studio/internal/middleware"
)

type AuthHandler struct {
	auth *auth.Service
}

func NewAuthHandler(svc *auth.Service) *AuthHandler {
	return &AuthHandler{auth: svc}
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	res := h.auth.Register(c.Request.Context(), req.Email, req.Password, req.DisplayName)
	if !res.OK() {
		respondAuthError(c, res)
		return
	}

	c.JSON(http.StatusCreated, res)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	res := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if !res.OK() {
		respondAuthError(c, res)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	res := h.auth.Logout(c.Request.Context(), c.GetString(middleware.ContextToken))
	if !res.OK() {
		respondAuthError(c, res)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *AuthHandler) PasswordReset(c *gin.Context) {
	var req dto.PasswordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	res := h.auth.ResetPassword(c.Request.Context(), req.Email)
	if !res.OK() {
		respondAuthError(c, res)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"message": "Enviamos as instruções para o seu email."})
}

func (h *AuthHandler) PasswordResetConfirm(c *gin.Context) {
	var req dto.PasswordResetConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	res := h.auth.ConfirmPasswordReset(c.Request.Context(), req.Token, req.Password)
	if !res.OK() {
		respondAuthError(c, res)
		return
	}

	c.Status(http.StatusNoContent)
}
