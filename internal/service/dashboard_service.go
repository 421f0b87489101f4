package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopadmin-next/internal/cache"
	"github.com/shopadmin-next/internal/config"
	"github.com/shopadmin-next/internal/repository"
)

// DashboardService 仪表盘服务
// 说明：聚合后台首页核心经营数据。
type DashboardService struct {
	repo repository.DashboardRepository
	cfg  *config.Config
}

// NewDashboardService 创建仪表盘服务
func NewDashboardService(repo repository.DashboardRepository, cfg *config.Config) *DashboardService {
	return &DashboardService{repo: repo, cfg: cfg}
}

// DashboardSummaryResponse 仪表盘总览响应
type DashboardSummaryResponse struct {
	From                string                    `json:"from"`
	To                  string                    `json:"to"`
	KPI                 DashboardKPI              `json:"kpi"`
	Trend               []DashboardTrendPoint     `json:"trend"`
	TopProducts         []DashboardProductRanking `json:"top_products"`
	OrderStatusCounts   []DashboardStatusCount    `json:"order_status_counts"`
	TriggerStatusCounts []DashboardStatusCount    `json:"trigger_status_counts"`
}

// DashboardKPI 仪表盘核心指标
type DashboardKPI struct {
	OrdersTotal       int64  `json:"orders_total"`
	RevenueTotal      string `json:"revenue_total"`
	DiscountTotal     string `json:"discount_total"`
	CustomersTotal    int64  `json:"customers_total"`
	NewCustomers      int64  `json:"new_customers"`
	ActiveProducts    int64  `json:"active_products"`
	TriggersTotal     int64  `json:"triggers_total"`
	PendingTriggers   int64  `json:"pending_triggers"`
	TriggeredDiscount string `json:"triggered_discount"`
}

// DashboardTrendPoint 趋势点
type DashboardTrendPoint struct {
	Date        string `json:"date"`
	OrdersTotal int64  `json:"orders_total"`
	Revenue     string `json:"revenue"`
}

// DashboardProductRanking 商品排行项
type DashboardProductRanking struct {
	ProductID   uint   `json:"product_id"`
	ProductName string `json:"product_name"`
	Orders      int64  `json:"orders"`
	Quantity    int64  `json:"quantity"`
	Amount      string `json:"amount"`
}

// DashboardStatusCount 状态分布项
type DashboardStatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// GetSummary 获取仪表盘总览（最近 N 天，短 TTL 缓存）
func (s *DashboardService) GetSummary(ctx context.Context, forceRefresh bool) (*DashboardSummaryResponse, error) {
	if s == nil || s.repo == nil {
		return &DashboardSummaryResponse{}, nil
	}

	days := s.cfg.Dashboard.TrendDays
	if days <= 0 {
		days = 30
	}
	now := time.Now()
	endAt := now.Add(time.Second)
	startAt := now.AddDate(0, 0, -days)

	cacheKey := fmt.Sprintf("dashboard:summary:%d", days)
	if !forceRefresh {
		var cached DashboardSummaryResponse
		hit, cacheErr := cache.GetJSON(ctx, cacheKey, &cached)
		if cacheErr == nil && hit {
			return &cached, nil
		}
	}

	overview, err := s.repo.GetOverview(startAt, endAt)
	if err != nil {
		return nil, err
	}
	trends, err := s.repo.GetOrderTrends(startAt, endAt)
	if err != nil {
		return nil, err
	}
	topProducts, err := s.repo.GetTopProducts(startAt, endAt, s.cfg.Dashboard.TopProductLimit)
	if err != nil {
		return nil, err
	}
	orderStatus, err := s.repo.GetOrderStatusDistribution(startAt, endAt)
	if err != nil {
		return nil, err
	}
	triggerStatus, err := s.repo.GetTriggerStatusDistribution(startAt, endAt)
	if err != nil {
		return nil, err
	}

	response := &DashboardSummaryResponse{
		From: startAt.Format(time.RFC3339),
		To:   now.Format(time.RFC3339),
		KPI: DashboardKPI{
			OrdersTotal:       overview.OrdersTotal,
			RevenueTotal:      formatMoneyValue(overview.RevenueTotal),
			DiscountTotal:     formatMoneyValue(overview.DiscountTotal),
			CustomersTotal:    overview.CustomersTotal,
			NewCustomers:      overview.NewCustomers,
			ActiveProducts:    overview.ActiveProducts,
			TriggersTotal:     overview.TriggersTotal,
			PendingTriggers:   overview.PendingTriggers,
			TriggeredDiscount: formatMoneyValue(overview.TriggeredDiscount),
		},
		Trend:               make([]DashboardTrendPoint, 0, len(trends)),
		TopProducts:         make([]DashboardProductRanking, 0, len(topProducts)),
		OrderStatusCounts:   make([]DashboardStatusCount, 0, len(orderStatus)),
		TriggerStatusCounts: make([]DashboardStatusCount, 0, len(triggerStatus)),
	}
	for _, row := range trends {
		response.Trend = append(response.Trend, DashboardTrendPoint{
			Date:        row.Day,
			OrdersTotal: row.OrdersTotal,
			Revenue:     formatMoneyValue(row.Revenue),
		})
	}
	for _, row := range topProducts {
		response.TopProducts = append(response.TopProducts, DashboardProductRanking{
			ProductID:   row.ProductID,
			ProductName: row.ProductName,
			Orders:      row.Orders,
			Quantity:    row.Quantity,
			Amount:      formatMoneyValue(row.Amount),
		})
	}
	for _, row := range orderStatus {
		response.OrderStatusCounts = append(response.OrderStatusCounts, DashboardStatusCount{Status: row.Status, Count: row.Count})
	}
	for _, row := range triggerStatus {
		response.TriggerStatusCounts = append(response.TriggerStatusCounts, DashboardStatusCount{Status: row.Status, Count: row.Count})
	}

	ttl := time.Duration(s.cfg.Dashboard.CacheTTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = time.Minute
	}
	_ = cache.SetJSON(ctx, cacheKey, response, ttl)
	return response, nil
}

func formatMoneyValue(value float64) string {
	return fmt.Sprintf("%.2f", value)
}
