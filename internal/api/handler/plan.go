package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/vyntrixhost/portal_go_server/config"
	"github.com/vyntrixhost/portal_go_server/internal/model/dto"
	"github.com/vyntrixhost/portal_go_server/internal/pkg/response"
)

type PlanHandler struct {
	cfg *config.Config
}

func NewPlanHandler(cfg *config.Config) *PlanHandler {
	return &PlanHandler{cfg: cfg}
}

// List 套餐目录（公开接口）
// GET /api/v1/plans
func (h *PlanHandler) List(c *gin.Context) {
	plans := make([]dto.PlanInfo, 0, len(h.cfg.Plans))
	for _, p := range h.cfg.Plans {
		plans = append(plans, dto.PlanInfo{
			Name:         p.Name,
			Description:  p.Description,
			MonthlyPrice: p.MonthlyPrice,
			AnnualPrice:  p.AnnualPrice,
			Features:     p.Features,
			IsPopular:    p.IsPopular,
		})
	}

	response.Success(c, plans)
}
