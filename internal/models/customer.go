package models

import (
	"time"

	"gorm.io/gorm"
)

// Customer 客户表
type Customer struct {
	ID          uint           `gorm:"primarykey" json:"id"`                                    // 主键
	Name        string         `gorm:"not null" json:"name"`                                    // 客户姓名
	Email       string         `gorm:"uniqueIndex;not null" json:"email"`                       // 联系邮箱
	Phone       string         `gorm:"type:varchar(50)" json:"phone"`                           // 联系电话
	Address     string         `gorm:"type:text" json:"address"`                                // 收货地址
	TotalOrders int            `gorm:"not null;default:0" json:"total_orders"`                  // 累计订单数
	TotalSpent  Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_spent"` // 累计消费金额
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                                 // 创建时间
	UpdatedAt   time.Time      `json:"updated_at"`                                              // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                          // 软删除时间
}

// TableName 指定表名
func (Customer) TableName() string {
	return "customers"
}
