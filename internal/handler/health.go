package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	appErrors "sudooom.mj.advisor/internal/errors"
	"sudooom.mj.advisor/internal/health"
	"sudooom.mj.advisor/pkg/response"
)

// HealthHandler 健康检查处理器
type HealthHandler struct {
	advisor Advisor
	checker *health.Checker
}

// NewHealthHandler 创建健康检查处理器
func NewHealthHandler(advisor Advisor, checker *health.Checker) *HealthHandler {
	return &HealthHandler{advisor: advisor, checker: checker}
}

// Health 进程存活
// @Summary  存活检查
// @Tags     健康
// @Produce  json
// @Success  200  {object}  response.Response
// @Router   /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	response.Success(c, gin.H{"status": health.StatusOK})
}

// Ready 依赖就绪检查
// @Summary  就绪检查
// @Tags     健康
// @Produce  json
// @Success  200  {object}  response.Response{data=health.Report}
// @Failure  503  {object}  response.Response{data=health.Report}
// @Router   /ready [get]
func (h *HealthHandler) Ready(c *gin.Context) {
	report := h.checker.Run(c.Request.Context())
	if !report.Healthy() {
		response.Unavailable(c, report)
		return
	}
	response.Success(c, report)
}

// Recommend 推荐打牌自检
// @Summary  推荐打牌自检
// @Tags     健康
// @Produce  json
// @Success  200  {object}  response.Response
// @Router   /recommend/health [get]
func (h *HealthHandler) Recommend(c *gin.Context) {
	h.report(c, "recommend", func(context.Context) error { return h.advisor.CheckRecommend() })
}

// Agarihai 听牌计算自检
// @Summary  听牌计算自检
// @Tags     健康
// @Produce  json
// @Success  200  {object}  response.Response
// @Router   /agarihai/health [get]
func (h *HealthHandler) Agarihai(c *gin.Context) {
	h.report(c, "agarihai", func(context.Context) error { return h.advisor.CheckAgarihai() })
}

// Score 点数计算自检
// @Summary  点数计算自检
// @Tags     健康
// @Produce  json
// @Success  200  {object}  response.Response
// @Router   /score/health [get]
func (h *HealthHandler) Score(c *gin.Context) {
	h.report(c, "score", h.advisor.CheckScore)
}

func (h *HealthHandler) report(c *gin.Context, service string, check func(context.Context) error) {
	if err := check(c.Request.Context()); err != nil {
		response.ErrorWithMsg(c, appErrors.GetCode(err), service+" unhealthy: "+appErrors.GetMessage(err))
		return
	}
	response.Success(c, gin.H{"service": service, "status": "healthy"})
}
