package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/photo-studio/internal/dto"
	"github.com/BruksfildServices01/photo-studio/internal/httpresp"
	ucStudio "github.com/BruksfildServices01/photo-studio/internal/usecase/studio"
)

type ClientHandler struct {
	studio *ucStudio.Studio
}

func NewClientHandler(studio *ucStudio.Studio) *ClientHandler {
	return &ClientHandler{studio: studio}
}

// ======================================================
// LIST CLIENTS
// ======================================================
func (h *ClientHandler) List(c *gin.Context) {
	httpresp.List(c, h.studio.ListClients(c.Query("query")))
}

// ======================================================
// CREATE
// ======================================================
func (h *ClientHandler) Create(c *gin.Context) {
	var req dto.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	created, err := h.studio.AddClient(c.Request.Context(), req.ToClient())
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.Created(c, created)
}

// ======================================================
// UPDATE (renomear propaga para as sessões)
// ======================================================
func (h *ClientHandler) Update(c *gin.Context) {
	var req dto.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	updated, err := h.studio.UpdateClient(c.Request.Context(), c.Param("id"), req.ToPatch())
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.OK(c, updated)
}

// ======================================================
// DELETE (cascata)
// ======================================================
func (h *ClientHandler) Delete(c *gin.Context) {
	if err := h.studio.DeleteClient(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	httpresp.NoContent(c)
}
