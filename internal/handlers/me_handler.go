package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/photo-studio/internal/auth"
	"github.com/BruksfildServices01/photo-studio/internal/middleware"
)

type MeHandler struct {
	auth *auth.Service
}

func NewMeHandler(svc *auth.Service) *MeHandler {
	return &MeHandler{auth: svc}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	res := h.auth.CurrentUser(c.Request.Context(), userID)
	if !res.OK() {
		respondAuthError(c, res)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": res.User})
}
