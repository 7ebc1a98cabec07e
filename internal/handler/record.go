package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"sudooom.mj.advisor/internal/model"
	"sudooom.mj.advisor/pkg/response"
)

const defaultRecordLimit = 20

// ListRecords 最近的分析记录
// @Summary      分析记录列表
// @Tags         记录
// @Produce      json
// @Param        operation query string false "操作类型"
// @Param        limit     query int    false "数量，默认 20，最多 100"
// @Success      200  {object}  response.Response{data=[]model.AnalysisRecord}
// @Router       /records [get]
func (h *AdvisorHandler) ListRecords(c *gin.Context) {
	limit := defaultRecordLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			response.ErrorWithMsg(c, response.CodeInvalidParams, "limit must be a positive integer")
			return
		}
		limit = n
	}

	records, err := h.advisor.ListRecords(c.Request.Context(), model.Operation(c.Query("operation")), limit)
	if err != nil {
		response.ErrorFromAppError(c, err)
		return
	}

	response.Success(c, records)
}

// GetRecord 获取单条分析记录
// @Summary      分析记录详情
// @Tags         记录
// @Produce      json
// @Param        id   path  string  true  "记录 ID"
// @Success      200  {object}  response.Response{data=model.AnalysisRecord}
// @Failure      200  {object}  response.Response
// @Router       /records/{id} [get]
func (h *AdvisorHandler) GetRecord(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ErrorWithMsg(c, response.CodeInvalidParams, "invalid record id")
		return
	}

	record, err := h.advisor.GetRecord(c.Request.Context(), id)
	if err != nil {
		response.ErrorFromAppError(c, err)
		return
	}

	response.Success(c, record)
}
