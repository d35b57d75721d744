package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/photo-studio/internal/domain/studio"
	"github.com/BruksfildServices01/photo-studio/internal/dto"
	"github.com/BruksfildServices01/photo-studio/internal/httpresp"
	ucStudio "github.com/BruksfildServices01/photo-studio/internal/usecase/studio"
)

const maxUpcoming = 50

type DashboardHandler struct {
	studio *ucStudio.Studio
}

func NewDashboardHandler(studio *ucStudio.Studio) *DashboardHandler {
	return &DashboardHandler{studio: studio}
}

// Get devolve os indicadores do mês e as próximas sessões (?limit=, padrão 5).
func (h *DashboardHandler) Get(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(domain.DefaultUpcomingLimit)))
	if err != nil || limit <= 0 {
		limit = domain.DefaultUpcomingLimit
	}
	if limit > maxUpcoming {
		limit = maxUpcoming
	}

	httpresp.OK(c, dto.NewDashboardResponse(
		h.studio.DashboardStats(),
		h.studio.UpcomingSessions(limit),
	))
}
