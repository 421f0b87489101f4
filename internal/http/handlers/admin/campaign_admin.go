package admin

import (
	"errors"

	"github.com/shopadmin-next/internal/http/response"
	"github.com/shopadmin-next/internal/models"
	"github.com/shopadmin-next/internal/repository"
	"github.com/shopadmin-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// CampaignRequest 创建/更新营销活动请求
type CampaignRequest struct {
	Title          string  `json:"title" binding:"required"`
	Description    string  `json:"description"`
	DiscountType   string  `json:"discount_type" binding:"required"`
	DiscountValue  float64 `json:"discount_value" binding:"required"`
	ConditionType  string  `json:"condition_type" binding:"required"`
	ConditionValue float64 `json:"condition_value"`
	CouponPrefix   string  `json:"coupon_prefix"`
	IsActive       *bool   `json:"is_active"`
	StartsAt       string  `json:"starts_at"`
	EndsAt         string  `json:"ends_at"`
}

func (h *Handler) bindCampaignInput(c *gin.Context, req CampaignRequest) (service.CampaignInput, bool) {
	startsAt, err := parseTimeNullable(req.StartsAt)
	if err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return service.CampaignInput{}, false
	}
	endsAt, err := parseTimeNullable(req.EndsAt)
	if err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return service.CampaignInput{}, false
	}

	return service.CampaignInput{
		Title:          req.Title,
		Description:    req.Description,
		DiscountType:   req.DiscountType,
		DiscountValue:  models.NewMoneyFromDecimal(decimal.NewFromFloat(req.DiscountValue)),
		ConditionType:  req.ConditionType,
		ConditionValue: models.NewMoneyFromDecimal(decimal.NewFromFloat(req.ConditionValue)),
		CouponPrefix:   req.CouponPrefix,
		IsActive:       req.IsActive,
		StartsAt:       startsAt,
		EndsAt:         endsAt,
	}, true
}

// GetAdminCampaigns 获取营销活动列表
func (h *Handler) GetAdminCampaigns(c *gin.Context) {
	page, pageSize := parsePagination(c)

	isActive, err := parseBoolQuery(c, "is_active")
	if err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	campaigns, total, err := h.CampaignAdminService.List(repository.CampaignListFilter{
		Page:     page,
		PageSize: pageSize,
		Search:   c.Query("search"),
		IsActive: isActive,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "获取活动列表失败", err)
		return
	}

	pagination := response.BuildPagination(page, pageSize, total)
	response.SuccessWithPage(c, campaigns, pagination)
}

// GetAdminCampaign 获取营销活动详情
func (h *Handler) GetAdminCampaign(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	campaign, err := h.CampaignAdminService.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrCampaignNotFound) {
			respondError(c, response.CodeNotFound, "营销活动不存在", nil)
			return
		}
		respondError(c, response.CodeInternal, "获取活动失败", err)
		return
	}
	response.Success(c, campaign)
}

// CreateCampaign 创建营销活动
func (h *Handler) CreateCampaign(c *gin.Context) {
	var req CampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	input, ok := h.bindCampaignInput(c, req)
	if !ok {
		return
	}

	campaign, err := h.CampaignAdminService.Create(input)
	if err != nil {
		if errors.Is(err, service.ErrCampaignInvalid) {
			respondError(c, response.CodeBadRequest, "营销活动参数无效", nil)
			return
		}
		respondError(c, response.CodeInternal, "创建活动失败", err)
		return
	}
	response.Success(c, campaign)
}

// UpdateCampaign 更新营销活动
func (h *Handler) UpdateCampaign(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req CampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	input, ok := h.bindCampaignInput(c, req)
	if !ok {
		return
	}

	campaign, err := h.CampaignAdminService.Update(id, input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCampaignNotFound):
			respondError(c, response.CodeNotFound, "营销活动不存在", nil)
		case errors.Is(err, service.ErrCampaignInvalid):
			respondError(c, response.CodeBadRequest, "营销活动参数无效", nil)
		default:
			respondError(c, response.CodeInternal, "更新活动失败", err)
		}
		return
	}
	response.Success(c, campaign)
}

// DeleteCampaign 删除营销活动（软删除）
func (h *Handler) DeleteCampaign(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.CampaignAdminService.Delete(id); err != nil {
		if errors.Is(err, service.ErrCampaignNotFound) {
			respondError(c, response.CodeNotFound, "营销活动不存在", nil)
			return
		}
		respondError(c, response.CodeInternal, "删除活动失败", err)
		return
	}
	response.Success(c, nil)
}
