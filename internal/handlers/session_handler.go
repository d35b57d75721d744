package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/photo-studio/internal/domain/studio"
	"github.com/BruksfildServices01/photo-studio/internal/dto"
	"github.com/BruksfildServices01/photo-studio/internal/httpresp"
	ucStudio "github.com/BruksfildServices01/photo-studio/internal/usecase/studio"
)

// ======================================================
// HANDLER
// ======================================================

type SessionHandler struct {
	studio *ucStudio.Studio
}

func NewSessionHandler(studio *ucStudio.Studio) *SessionHandler {
	return &SessionHandler{studio: studio}
}

// List aceita ?status= e ?payment_status= ("todos" desliga o filtro).
func (h *SessionHandler) List(c *gin.Context) {
	filter := domain.SessionFilter{
		Status:        c.Query("status"),
		PaymentStatus: c.Query("payment_status"),
	}

	sessions := h.studio.ListSessions(filter)
	httpresp.OK(c, dto.NewSessionListResponse(sessions, domain.SummarizeSessions(sessions)))
}

func (h *SessionHandler) Create(c *gin.Context) {
	var req dto.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	created, err := h.studio.AddSession(c.Request.Context(), req.ToSession())
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.Created(c, dto.NewSessionDTO(*created))
}

func (h *SessionHandler) Update(c *gin.Context) {
	var req dto.UpdateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	updated, err := h.studio.UpdateSession(c.Request.Context(), c.Param("id"), req.ToPatch())
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.OK(c, dto.NewSessionDTO(*updated))
}

func (h *SessionHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	updated, err := h.studio.UpdateSessionStatus(c.Request.Context(), c.Param("id"), domain.Status(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.OK(c, dto.NewSessionDTO(*updated))
}

func (h *SessionHandler) UpdatePaymentStatus(c *gin.Context) {
	var req dto.UpdatePaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	updated, err := h.studio.UpdatePaymentStatus(c.Request.Context(), c.Param("id"), domain.PaymentStatus(req.PaymentStatus))
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.OK(c, dto.NewSessionDTO(*updated))
}

func (h *SessionHandler) Delete(c *gin.Context) {
	if err := h.studio.DeleteSession(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	httpresp.NoContent(c)
}
