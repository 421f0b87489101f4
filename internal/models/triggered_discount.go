package models

import (
	"time"

	"gorm.io/gorm"
)

// 触发折扣状态
const (
	TriggeredDiscountStatusPending   = "pending"   // 已触发，待跟进
	TriggeredDiscountStatusContacted = "contacted" // 已联系客户
	TriggeredDiscountStatusUsed      = "used"      // 已核销（终态）
)

// TriggeredDiscount 触发折扣记录表
//
// (order_id, campaign_id) 的唯一索引是同一订单同一活动只产生
// 一条记录的唯一保障，重复评估依赖它去重。
type TriggeredDiscount struct {
	ID             uint           `gorm:"primarykey" json:"id"`                                          // 主键
	CustomerID     uint           `gorm:"index;not null" json:"customer_id"`                             // 客户ID
	CampaignID     uint           `gorm:"uniqueIndex:idx_order_campaign;not null" json:"campaign_id"`    // 活动ID
	OrderID        uint           `gorm:"uniqueIndex:idx_order_campaign;not null" json:"order_id"`       // 订单ID
	CouponCode     string         `gorm:"uniqueIndex;not null" json:"coupon_code"`                       // 兑换码
	DiscountAmount Money          `gorm:"type:decimal(20,2);not null;default:0" json:"discount_amount"` // 折扣金额
	Status         string         `gorm:"type:varchar(20);not null;index" json:"status"`                 // 状态（pending/contacted/used）
	TriggeredAt    time.Time      `gorm:"index;not null" json:"triggered_at"`                            // 触发时间
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`                                       // 创建时间
	UpdatedAt      time.Time      `json:"updated_at"`                                                    // 更新时间
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`                                                // 软删除时间

	// 关联
	Customer Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"` // 客户信息
	Campaign Campaign `gorm:"foreignKey:CampaignID" json:"campaign,omitempty"` // 活动信息
	Order    Order    `gorm:"foreignKey:OrderID" json:"order,omitempty"`       // 订单信息
}

// TableName 指定表名
func (TriggeredDiscount) TableName() string {
	return "triggered_discounts"
}
