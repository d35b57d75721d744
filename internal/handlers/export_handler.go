package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/photo-studio/internal/domain/studio"
	"github.com/BruksfildServices01/photo-studio/internal/httperr"
	"github.com/BruksfildServices01/photo-studio/internal/httpresp"
	"github.com/BruksfildServices01/photo-studio/internal/infra/backup"
	"github.com/BruksfildServices01/photo-studio/internal/middleware"
	applog "github.com/BruksfildServices01/photo-studio/internal/log"
	ucStudio "github.com/BruksfildServices01/photo-studio/internal/usecase/studio"
)

type Exporter interface {
	Export(ctx context.Context, clients []domain.Client, sessions []domain.Session, actor string) (*backup.Result, error)
}

type ExportHandler struct {
	studio   *ucStudio.Studio
	exporter Exporter
}

func NewExportHandler(studio *ucStudio.Studio, exporter Exporter) *ExportHandler {
	return &ExportHandler{studio: studio, exporter: exporter}
}

func (h *ExportHandler) Export(c *gin.Context) {
	if h.exporter == nil {
		httperr.Unavailable(c, "export_disabled", "Exportação não configurada.")
		return
	}

	clients, sessions := h.studio.Snapshot()

	res, err := h.exporter.Export(c.Request.Context(), clients, sessions, c.GetString(middleware.ContextUserID))
	if err != nil {
		applog.FromGin(c, applog.Discard()).ErrorContext(c.Request.Context(), "export failed", applog.FieldError, err.Error())
		httperr.Internal(c, "export_failed", "Falha ao exportar dados. Por favor, tente novamente.")
		return
	}

	httpresp.Created(c, res)
}
