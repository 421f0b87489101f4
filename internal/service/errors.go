package service

import "errors"

// 业务错误哨兵，由 handler 层映射为统一响应码。
var (
	ErrNotFound           = errors.New("记录不存在")
	ErrInvalidCredentials = errors.New("邮箱或密码错误")
	ErrInvalidPassword    = errors.New("原密码错误")
	ErrWeakPassword       = errors.New("密码强度不足")

	ErrCategoryNotFound = errors.New("分类不存在")
	ErrCategoryInvalid  = errors.New("分类参数无效")
	ErrCategoryInUse    = errors.New("分类下仍有商品")
	ErrSlugTaken        = errors.New("slug 已被占用")

	ErrProductNotFound = errors.New("商品不存在")
	ErrProductInvalid  = errors.New("商品参数无效")
	ErrProductInactive = errors.New("商品已下架")

	ErrCustomerNotFound   = errors.New("客户不存在")
	ErrCustomerEmailTaken = errors.New("客户邮箱已存在")

	ErrOrderNotFound    = errors.New("订单不存在")
	ErrOrderInvalidItem = errors.New("订单项参数无效")
	ErrOrderBadStatus   = errors.New("订单状态无效")

	ErrCampaignNotFound = errors.New("营销活动不存在")
	ErrCampaignInvalid  = errors.New("营销活动参数无效")

	ErrTriggeredDiscountNotFound = errors.New("触发折扣记录不存在")
	ErrInvalidStatusTransition   = errors.New("状态流转不允许")
	ErrCouponCodeExhausted       = errors.New("兑换码生成重试次数耗尽")
)
