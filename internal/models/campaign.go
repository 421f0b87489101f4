package models

import (
	"time"

	"gorm.io/gorm"
)

// 营销活动折扣类型
const (
	CampaignDiscountPercentage = "percentage" // 按小计百分比折扣
	CampaignDiscountFixed      = "fixed"      // 固定金额折扣
)

// 营销活动触发条件类型
const (
	CampaignConditionQuantity = "quantity" // 订单商品总数量达标
	CampaignConditionAmount   = "amount"   // 订单小计金额达标
)

// Campaign 营销活动表
type Campaign struct {
	ID             uint           `gorm:"primarykey" json:"id"`                                 // 主键
	Title          string         `gorm:"not null" json:"title"`                                // 活动标题
	Description    string         `gorm:"type:text" json:"description"`                         // 活动描述
	DiscountType   string         `gorm:"type:varchar(20);not null" json:"discount_type"`       // 折扣类型（percentage/fixed）
	DiscountValue  Money          `gorm:"type:decimal(20,2);not null" json:"discount_value"`    // 折扣数值（百分比/固定金额）
	ConditionType  string         `gorm:"type:varchar(20);not null" json:"condition_type"`      // 条件类型（quantity/amount）
	ConditionValue Money          `gorm:"type:decimal(20,2);not null" json:"condition_value"`   // 条件阈值（数量/金额，含等于）
	CouponPrefix   string         `gorm:"type:varchar(50);not null" json:"coupon_prefix"`       // 兑换码前缀
	IsActive       bool           `gorm:"not null;index" json:"is_active"`                      // 是否启用（无列默认值，false 显式落库）
	StartsAt       *time.Time     `gorm:"index" json:"starts_at"`                               // 生效时间（空表示不限）
	EndsAt         *time.Time     `gorm:"index" json:"ends_at"`                                 // 失效时间（空表示不限）
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`                              // 创建时间
	UpdatedAt      time.Time      `json:"updated_at"`                                           // 更新时间
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`                                       // 软删除时间
}

// TableName 指定表名
func (Campaign) TableName() string {
	return "campaigns"
}
