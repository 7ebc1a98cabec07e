package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"sudooom.mj.advisor/internal/middleware"
	"sudooom.mj.advisor/internal/model"
	"sudooom.mj.advisor/internal/scoring"
	"sudooom.mj.advisor/internal/service"
	"sudooom.mj.advisor/pkg/response"
)

// Advisor 牌效建议服务接口
type Advisor interface {
	Recommend(ctx context.Context, hand, clientID string) (*service.RecommendResponse, error)
	Analyze(ctx context.Context, hand, clientID string) (*service.AnalyzeResponse, error)
	Agarihai(ctx context.Context, hand, clientID string) (*service.AgarihaiResponse, error)
	Evaluate(ctx context.Context, hand, clientID string) (*service.EvaluateResponse, error)
	Score(ctx context.Context, req *service.ScoreRequest, clientID string) (*scoring.Response, error)
	GetRecord(ctx context.Context, id int64) (*model.AnalysisRecord, error)
	ListRecords(ctx context.Context, operation model.Operation, limit int) ([]*model.AnalysisRecord, error)
	CheckRecommend() error
	CheckAgarihai() error
	CheckScore(ctx context.Context) error
}

// AdvisorHandler 牌效分析处理器
type AdvisorHandler struct {
	advisor Advisor
}

// NewAdvisorHandler 创建牌效分析处理器
func NewAdvisorHandler(advisor Advisor) *AdvisorHandler {
	return &AdvisorHandler{advisor: advisor}
}

// Recommend 推荐打牌
// @Summary      推荐打牌
// @Description  14 张手牌中推荐打出的一张
// @Tags         牌效
// @Accept       json
// @Produce      json
// @Param        request body service.HandRequest true "手牌，如 123456789m1122p1z"
// @Success      200  {object}  response.Response{data=service.RecommendResponse}
// @Failure      200  {object}  response.Response
// @Router       /recommend [post]
func (h *AdvisorHandler) Recommend(c *gin.Context) {
	var req service.HandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithMsg(c, response.CodeInvalidParams, err.Error())
		return
	}

	resp, err := h.advisor.Recommend(c.Request.Context(), req.Hand, middleware.GetClientID(c))
	if err != nil {
		response.ErrorFromAppError(c, err)
		return
	}

	response.Success(c, resp)
}

// Analyze 全部候选打牌
// @Summary      候选打牌排名
// @Description  每种可打出的牌的向听数、进张与排名
// @Tags         牌效
// @Accept       json
// @Produce      json
// @Param        request body service.HandRequest true "14 张手牌"
// @Success      200  {object}  response.Response{data=service.AnalyzeResponse}
// @Failure      200  {object}  response.Response
// @Router       /analyze [post]
func (h *AdvisorHandler) Analyze(c *gin.Context) {
	var req service.HandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithMsg(c, response.CodeInvalidParams, err.Error())
		return
	}

	resp, err := h.advisor.Analyze(c.Request.Context(), req.Hand, middleware.GetClientID(c))
	if err != nil {
		response.ErrorFromAppError(c, err)
		return
	}

	response.Success(c, resp)
}

// Agarihai 听牌计算
// @Summary      听牌计算
// @Description  13 张手牌的向听数，听牌时给出待牌
// @Tags         牌效
// @Accept       json
// @Produce      json
// @Param        request body service.HandRequest true "13 张手牌"
// @Success      200  {object}  response.Response{data=service.AgarihaiResponse}
// @Failure      200  {object}  response.Response
// @Router       /agarihai [post]
func (h *AdvisorHandler) Agarihai(c *gin.Context) {
	var req service.HandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithMsg(c, response.CodeInvalidParams, err.Error())
		return
	}

	resp, err := h.advisor.Agarihai(c.Request.Context(), req.Hand, middleware.GetClientID(c))
	if err != nil {
		response.ErrorFromAppError(c, err)
		return
	}

	response.Success(c, resp)
}

// Shanten 向听评估
// @Summary      向听评估
// @Description  13 或 14 张手牌的最小向听数及全部最优拆解
// @Tags         牌效
// @Accept       json
// @Produce      json
// @Param        request body service.HandRequest true "13 或 14 张手牌"
// @Success      200  {object}  response.Response{data=service.EvaluateResponse}
// @Failure      200  {object}  response.Response
// @Router       /shanten [post]
func (h *AdvisorHandler) Shanten(c *gin.Context) {
	var req service.HandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithMsg(c, response.CodeInvalidParams, err.Error())
		return
	}

	resp, err := h.advisor.Evaluate(c.Request.Context(), req.Hand, middleware.GetClientID(c))
	if err != nil {
		response.ErrorFromAppError(c, err)
		return
	}

	response.Success(c, resp)
}

// Score 点数计算
// @Summary      点数计算
// @Description  调用外部计算器计算役与点数
// @Tags         点数
// @Accept       json
// @Produce      json
// @Param        request body service.ScoreRequest true "和了形及场况"
// @Success      200  {object}  response.Response{data=scoring.Response}
// @Failure      200  {object}  response.Response
// @Router       /score/calculate [post]
func (h *AdvisorHandler) Score(c *gin.Context) {
	var req service.ScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithMsg(c, response.CodeInvalidParams, err.Error())
		return
	}

	resp, err := h.advisor.Score(c.Request.Context(), &req, middleware.GetClientID(c))
	if err != nil {
		response.ErrorFromAppError(c, err)
		return
	}

	response.Success(c, resp)
}
