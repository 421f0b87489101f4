package admin

import (
	"strconv"

	"github.com/shopadmin-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetDashboardSummary 获取仪表盘总览
func (h *Handler) GetDashboardSummary(c *gin.Context) {
	forceRefresh, _ := strconv.ParseBool(c.Query("refresh"))

	summary, err := h.DashboardService.GetSummary(c.Request.Context(), forceRefresh)
	if err != nil {
		respondError(c, response.CodeInternal, "获取仪表盘数据失败", err)
		return
	}
	response.Success(c, summary)
}
