package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/photo-studio/internal/audit"
	"github.com/BruksfildServices01/photo-studio/internal/httperr"
	"github.com/BruksfildServices01/photo-studio/internal/timezone"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	reader audit.Reader
	loc    *time.Location
}

func NewAuditLogsHandler(reader audit.Reader, loc *time.Location) *AuditLogsHandler {
	return &AuditLogsHandler{reader: reader, loc: loc}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(audit.DefaultPageSize)))

	q := audit.Query{
		Action:   c.Query("action"),
		Entity:   c.Query("entity"),
		EntityID: c.Query("entity_id"),
		Page:     page,
		Limit:    limit,
	}.Normalize()

	// --------------------------------------------------
	// Período (datas de calendário no fuso do estúdio)
	// --------------------------------------------------

	if fromStr := c.Query("from"); fromStr != "" {
		if from, err := timezone.ParseDate(fromStr, h.loc); err == nil {
			q.From = from
		}
	}

	if toStr := c.Query("to"); toStr != "" {
		if to, err := timezone.ParseDate(toStr, h.loc); err == nil {
			q.To = to.AddDate(0, 0, 1)
		}
	}

	logs, total, err := h.reader.List(c.Request.Context(), q)
	if err != nil {
		httperr.Internal(c, "audit_list_failed", "Erro ao listar logs.")
		return
	}

	c.JSON(200, gin.H{
		"page":  q.Page,
		"limit": q.Limit,
		"total": total,
		"logs":  logs,
	})
}
