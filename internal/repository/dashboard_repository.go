package repository

import (
	"time"

	"github.com/shopadmin-next/internal/models"

	"gorm.io/gorm"
)

// DashboardRepository 仪表盘聚合查询接口
// 说明：仅聚合统计数据，不承载业务规则。
type DashboardRepository interface {
	GetOverview(startAt, endAt time.Time) (DashboardOverviewRow, error)
	GetOrderTrends(startAt, endAt time.Time) ([]DashboardOrderTrendRow, error)
	GetTopProducts(startAt, endAt time.Time, limit int) ([]DashboardProductRankingRow, error)
	GetOrderStatusDistribution(startAt, endAt time.Time) ([]DashboardStatusCountRow, error)
	GetTriggerStatusDistribution(startAt, endAt time.Time) ([]DashboardStatusCountRow, error)
}

// DashboardOverviewRow 仪表盘总览原始统计结果
type DashboardOverviewRow struct {
	OrdersTotal       int64
	RevenueTotal      float64
	DiscountTotal     float64
	CustomersTotal    int64
	NewCustomers      int64
	ActiveProducts    int64
	TriggersTotal     int64
	PendingTriggers   int64
	TriggeredDiscount float64
}

// DashboardOrderTrendRow 订单趋势统计
type DashboardOrderTrendRow struct {
	Day         string
	OrdersTotal int64
	Revenue     float64
}

// DashboardProductRankingRow 商品排行原始行
type DashboardProductRankingRow struct {
	ProductID   uint
	ProductName string
	Orders      int64
	Quantity    int64
	Amount      float64
}

// DashboardStatusCountRow 状态分布原始行
type DashboardStatusCountRow struct {
	Status string
	Count  int64
}

// GormDashboardRepository GORM 仪表盘聚合实现
type GormDashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository 创建仪表盘仓库
func NewDashboardRepository(db *gorm.DB) *GormDashboardRepository {
	return &GormDashboardRepository{db: db}
}

// GetOverview 获取总览统计
func (r *GormDashboardRepository) GetOverview(startAt, endAt time.Time) (DashboardOverviewRow, error) {
	result := DashboardOverviewRow{}

	orderBase := func() *gorm.DB {
		return r.db.Model(&models.Order{}).
			Where("created_at >= ? AND created_at < ?", startAt, endAt)
	}

	if err := orderBase().Count(&result.OrdersTotal).Error; err != nil {
		return result, err
	}
	row := struct {
		Revenue  float64
		Discount float64
	}{}
	if err := orderBase().
		Select("COALESCE(SUM(total_amount), 0) AS revenue, COALESCE(SUM(discount_amount), 0) AS discount").
		Scan(&row).Error; err != nil {
		return result, err
	}
	result.RevenueTotal = row.Revenue
	result.DiscountTotal = row.Discount

	if err := r.db.Model(&models.Customer{}).Count(&result.CustomersTotal).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.Customer{}).
		Where("created_at >= ? AND created_at < ?", startAt, endAt).
		Count(&result.NewCustomers).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.Product{}).Where("is_active = ?", true).Count(&result.ActiveProducts).Error; err != nil {
		return result, err
	}

	triggerBase := func() *gorm.DB {
		return r.db.Model(&models.TriggeredDiscount{}).
			Where("triggered_at >= ? AND triggered_at < ?", startAt, endAt)
	}
	if err := triggerBase().Count(&result.TriggersTotal).Error; err != nil {
		return result, err
	}
	if err := triggerBase().
		Where("status = ?", models.TriggeredDiscountStatusPending).
		Count(&result.PendingTriggers).Error; err != nil {
		return result, err
	}
	amountRow := struct{ Amount float64 }{}
	if err := triggerBase().
		Select("COALESCE(SUM(discount_amount), 0) AS amount").
		Scan(&amountRow).Error; err != nil {
		return result, err
	}
	result.TriggeredDiscount = amountRow.Amount

	return result, nil
}

// GetOrderTrends 获取按天的订单趋势
func (r *GormDashboardRepository) GetOrderTrends(startAt, endAt time.Time) ([]DashboardOrderTrendRow, error) {
	rows := make([]DashboardOrderTrendRow, 0)
	dayExpr := sqlDayExpr(dbDialectName(r.db), "created_at")
	err := r.db.Model(&models.Order{}).
		Select(dayExpr+" AS day, COUNT(*) AS orders_total, COALESCE(SUM(total_amount), 0) AS revenue").
		Where("created_at >= ? AND created_at < ?", startAt, endAt).
		Group("day").
		Order("day asc").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// GetTopProducts 获取销量排行
func (r *GormDashboardRepository) GetTopProducts(startAt, endAt time.Time, limit int) ([]DashboardProductRankingRow, error) {
	if limit <= 0 {
		limit = 5
	}
	rows := make([]DashboardProductRankingRow, 0, limit)
	err := r.db.Model(&models.OrderItem{}).
		Select("order_items.product_id AS product_id, order_items.product_name AS product_name, COUNT(DISTINCT order_items.order_id) AS orders, COALESCE(SUM(order_items.quantity), 0) AS quantity, COALESCE(SUM(order_items.total_price), 0) AS amount").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.created_at >= ? AND orders.created_at < ?", startAt, endAt).
		Group("order_items.product_id, order_items.product_name").
		Order("quantity DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// GetOrderStatusDistribution 获取订单状态分布
func (r *GormDashboardRepository) GetOrderStatusDistribution(startAt, endAt time.Time) ([]DashboardStatusCountRow, error) {
	rows := make([]DashboardStatusCountRow, 0)
	err := r.db.Model(&models.Order{}).
		Select("status, COUNT(*) AS count").
		Where("created_at >= ? AND created_at < ?", startAt, endAt).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// GetTriggerStatusDistribution 获取触发折扣状态分布
func (r *GormDashboardRepository) GetTriggerStatusDistribution(startAt, endAt time.Time) ([]DashboardStatusCountRow, error) {
	rows := make([]DashboardStatusCountRow, 0)
	err := r.db.Model(&models.TriggeredDiscount{}).
		Select("status, COUNT(*) AS count").
		Where("triggered_at >= ? AND triggered_at < ?", startAt, endAt).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
