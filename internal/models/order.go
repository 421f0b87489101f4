package models

import (
	"time"

	"gorm.io/gorm"
)

// Order 订单表
type Order struct {
	ID             uint           `gorm:"primarykey" json:"id"`                                         // 主键
	InvoiceNo      string         `gorm:"uniqueIndex;not null" json:"invoice_no"`                       // 发票编号
	CustomerID     uint           `gorm:"index;not null" json:"customer_id"`                            // 客户ID
	Status         string         `gorm:"index;not null" json:"status"`                                 // 订单状态
	PaymentMethod  string         `gorm:"type:varchar(50)" json:"payment_method"`                       // 支付方式标签
	Subtotal       Money          `gorm:"type:decimal(20,2);not null;default:0" json:"subtotal"`        // 商品小计
	DiscountAmount Money          `gorm:"type:decimal(20,2);not null;default:0" json:"discount_amount"` // 优惠金额
	TotalAmount    Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"`    // 应付金额
	Notes          string         `gorm:"type:text" json:"notes"`                                       // 备注
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`                                      // 创建时间
	UpdatedAt      time.Time      `gorm:"index" json:"updated_at"`                                      // 更新时间
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`                                               // 软删除时间

	// 关联
	Customer Customer    `gorm:"foreignKey:CustomerID" json:"customer,omitempty"` // 客户信息
	Items    []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`       // 订单项
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
