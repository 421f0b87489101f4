package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/shopadmin-next/internal/constants"
	"github.com/shopadmin-next/internal/logger"
	"github.com/shopadmin-next/internal/models"
	"github.com/shopadmin-next/internal/queue"
	"github.com/shopadmin-next/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderService 订单业务服务
type OrderService struct {
	orderRepo      repository.OrderRepository
	productRepo    repository.ProductRepository
	customerRepo   repository.CustomerRepository
	triggerService *CampaignTriggerService
	queueClient    *queue.Client
}

// NewOrderService 创建订单服务
func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	triggerService *CampaignTriggerService,
	queueClient *queue.Client,
) *OrderService {
	return &OrderService{
		orderRepo:      orderRepo,
		productRepo:    productRepo,
		customerRepo:   customerRepo,
		triggerService: triggerService,
		queueClient:    queueClient,
	}
}

// OrderItemInput 订单项输入
type OrderItemInput struct {
	ProductID uint
	Quantity  int
}

// CreateOrderInput 创建订单输入
type CreateOrderInput struct {
	CustomerID     uint
	PaymentMethod  string
	Notes          string
	DiscountAmount models.Money
	Items          []OrderItemInput
}

// CreateOrderResult 创建订单结果（含触发评估结果）
type CreateOrderResult struct {
	Order           *models.Order    `json:"order"`
	CampaignResults []TriggerResult  `json:"campaign_triggers"`
	TriggerErrors   []TriggerFailure `json:"trigger_errors,omitempty"`
}

// Create 创建订单并评估营销活动触发。
// 订单落库与触发评估分属两个边界：订单提交成功后触发评估的
// 任何失败只记录并返回，不回滚订单。
func (s *OrderService) Create(input CreateOrderInput) (*CreateOrderResult, error) {
	if len(input.Items) == 0 {
		return nil, ErrOrderInvalidItem
	}

	customer, err := s.customerRepo.GetByID(input.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, ErrCustomerNotFound
	}

	// 商品快照与小计
	ids := make([]uint, 0, len(input.Items))
	for _, item := range input.Items {
		if item.ProductID == 0 || item.Quantity <= 0 {
			return nil, ErrOrderInvalidItem
		}
		ids = append(ids, item.ProductID)
	}
	products, err := s.productRepo.GetByIDs(ids)
	if err != nil {
		return nil, err
	}
	productByID := make(map[uint]*models.Product, len(products))
	for i := range products {
		productByID[products[i].ID] = &products[i]
	}

	subtotal := decimal.Zero
	items := make([]models.OrderItem, 0, len(input.Items))
	for _, item := range input.Items {
		product, ok := productByID[item.ProductID]
		if !ok {
			return nil, ErrProductNotFound
		}
		if !product.IsActive {
			return nil, ErrProductInactive
		}
		lineTotal := product.Price.Decimal.Mul(decimal.NewFromInt(int64(item.Quantity)))
		subtotal = subtotal.Add(lineTotal)
		items = append(items, models.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			UnitPrice:   product.Price,
			Quantity:    item.Quantity,
			TotalPrice:  models.NewMoneyFromDecimal(lineTotal),
		})
	}

	discount := input.DiscountAmount.Decimal
	if discount.LessThan(decimal.Zero) {
		return nil, ErrOrderInvalidItem
	}
	if discount.GreaterThan(subtotal) {
		discount = subtotal
	}
	total := subtotal.Sub(discount)

	order := &models.Order{
		InvoiceNo:      generateInvoiceNo(),
		CustomerID:     customer.ID,
		Status:         constants.OrderStatusPending,
		PaymentMethod:  strings.TrimSpace(input.PaymentMethod),
		Subtotal:       models.NewMoneyFromDecimal(subtotal),
		DiscountAmount: models.NewMoneyFromDecimal(discount),
		TotalAmount:    models.NewMoneyFromDecimal(total),
		Notes:          strings.TrimSpace(input.Notes),
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		customerRepo := s.customerRepo.WithTx(tx)

		if err := orderRepo.Create(order, items); err != nil {
			return err
		}
		return customerRepo.IncrementOrderStats(customer.ID, order.TotalAmount)
	})
	if err != nil {
		return nil, err
	}
	order.Items = items

	result := &CreateOrderResult{Order: order}

	// 触发评估失败不影响已提交的订单
	triggers, triggerErrs, err := s.triggerService.EvaluateOrder(order.ID)
	if err != nil {
		logger.Errorw("campaign_evaluation_failed",
			"order_id", order.ID,
			"error", err,
		)
		result.TriggerErrors = []TriggerFailure{newTriggerFailure(0, err)}
		return result, nil
	}
	result.CampaignResults = triggers
	result.TriggerErrors = triggerErrs
	return result, nil
}

// Get 获取订单详情
func (s *OrderService) Get(id uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// List 获取订单列表
func (s *OrderService) List(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.List(filter)
}

// UpdateStatus 更新订单状态
func (s *OrderService) UpdateStatus(id uint, status string) (*models.Order, error) {
	switch status {
	case constants.OrderStatusPending,
		constants.OrderStatusProcessing,
		constants.OrderStatusDelivered,
		constants.OrderStatusCanceled:
	default:
		return nil, ErrOrderBadStatus
	}

	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	if err := s.orderRepo.UpdateStatus(id, status); err != nil {
		return nil, err
	}
	previous := order.Status
	order.Status = status

	// 取消或撤销取消会改变客户统计口径，交给队列对账
	if previous != status &&
		(previous == constants.OrderStatusCanceled || status == constants.OrderStatusCanceled) {
		s.enqueueStatsRecalc(order.CustomerID)
	}
	return order, nil
}

func (s *OrderService) enqueueStatsRecalc(customerID uint) {
	if s.queueClient == nil {
		return
	}
	if err := s.queueClient.EnqueueCustomerStatsRecalc(customerID); err != nil {
		logger.Warnw("customer_stats_recalc_enqueue_failed",
			"customer_id", customerID,
			"error", err,
		)
	}
}

// generateInvoiceNo 生成发票编号：前缀 + 时间 + 随机数字
func generateInvoiceNo() string {
	now := time.Now().Format("20060102150405")
	return fmt.Sprintf("%s%s%s", constants.InvoiceNoPrefix, now, randNumeric(6))
}

func randNumeric(length int) string {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			b.WriteString("0")
			continue
		}
		b.WriteString(fmt.Sprintf("%d", n.Int64()))
	}
	return b.String()
}
