package repository

import "time"

// ProductListFilter 查询商品列表的过滤条件
type ProductListFilter struct {
	Page         int
	PageSize     int
	CategoryID   uint
	Search       string
	OnlyActive   bool
	WithCategory bool
}

// CustomerListFilter 查询客户列表的过滤条件
type CustomerListFilter struct {
	Page     int
	PageSize int
	Search   string
}

// OrderListFilter 查询订单列表的过滤条件
type OrderListFilter struct {
	Page        int
	PageSize    int
	CustomerID  uint
	Status      string
	InvoiceNo   string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// CampaignListFilter 查询营销活动列表的过滤条件
type CampaignListFilter struct {
	Page     int
	PageSize int
	Search   string
	IsActive *bool
}

// TriggeredDiscountListFilter 查询触发折扣列表的过滤条件
type TriggeredDiscountListFilter struct {
	Page        int
	PageSize    int
	CustomerID  uint
	CampaignID  uint
	OrderID     uint
	Status      string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}
