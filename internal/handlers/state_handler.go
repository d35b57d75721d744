package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/photo-studio/internal/httpresp"
	ucStudio "github.com/BruksfildServices01/photo-studio/internal/usecase/studio"
)

// StateHandler expõe o cache da camada de orquestração: listas, loading e
// a última mensagem de erro.
type StateHandler struct {
	studio *ucStudio.Studio
}

func NewStateHandler(studio *ucStudio.Studio) *StateHandler {
	return &StateHandler{studio: studio}
}

func (h *StateHandler) Get(c *gin.Context) {
	httpresp.OK(c, h.studio.State())
}

// Reload busca tudo do armazenamento de novo; sucesso limpa o lastError.
func (h *StateHandler) Reload(c *gin.Context) {
	if err := h.studio.Load(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}

	httpresp.OK(c, h.studio.State())
}
