package admin

import (
	"errors"

	"github.com/shopadmin-next/internal/http/response"
	"github.com/shopadmin-next/internal/repository"
	"github.com/shopadmin-next/internal/service"

	"github.com/gin-gonic/gin"
)

// GetAdminTriggeredDiscounts 获取触发折扣列表
func (h *Handler) GetAdminTriggeredDiscounts(c *gin.Context) {
	page, pageSize := parsePagination(c)

	createdFrom, err := parseTimeNullable(c.Query("created_from"))
	if err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}
	createdTo, err := parseTimeNullable(c.Query("created_to"))
	if err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	discounts, total, err := h.TriggeredDiscountService.List(repository.TriggeredDiscountListFilter{
		Page:        page,
		PageSize:    pageSize,
		CustomerID:  parseUintQuery(c, "customer_id"),
		CampaignID:  parseUintQuery(c, "campaign_id"),
		OrderID:     parseUintQuery(c, "order_id"),
		Status:      c.Query("status"),
		CreatedFrom: createdFrom,
		CreatedTo:   createdTo,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "获取触发折扣列表失败", err)
		return
	}

	pagination := response.BuildPagination(page, pageSize, total)
	response.SuccessWithPage(c, discounts, pagination)
}

// GetAdminTriggeredDiscount 获取触发折扣详情
func (h *Handler) GetAdminTriggeredDiscount(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	td, err := h.TriggeredDiscountService.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrTriggeredDiscountNotFound) {
			respondError(c, response.CodeNotFound, "触发折扣记录不存在", nil)
			return
		}
		respondError(c, response.CodeInternal, "获取触发折扣失败", err)
		return
	}
	response.Success(c, td)
}

// UpdateTriggerStatusRequest 推进触发折扣状态请求
type UpdateTriggerStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateTriggeredDiscountStatus 推进触发折扣状态
func (h *Handler) UpdateTriggeredDiscountStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateTriggerStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	td, err := h.TriggeredDiscountService.TransitionStatus(id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTriggeredDiscountNotFound):
			respondError(c, response.CodeNotFound, "触发折扣记录不存在", nil)
		case errors.Is(err, service.ErrInvalidStatusTransition):
			respondError(c, response.CodeConflict, "状态流转不允许", nil)
		default:
			respondError(c, response.CodeInternal, "更新触发折扣状态失败", err)
		}
		return
	}
	response.Success(c, td)
}
