package service

import (
	"strings"
	"testing"

	"github.com/shopadmin-next/internal/config"
	"github.com/shopadmin-next/internal/constants"
	"github.com/shopadmin-next/internal/models"
	"github.com/shopadmin-next/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type orderServiceFixture struct {
	svc      *OrderService
	db       *gorm.DB
	customer *models.Customer
	active   *models.Product
	inactive *models.Product
}

func setupOrderServiceTest(t *testing.T) orderServiceFixture {
	t.Helper()
	db := openServiceTestDB(t)

	// 订单提交走 models.DB 事务
	prev := models.DB
	models.DB = db
	t.Cleanup(func() { models.DB = prev })

	orderRepo := repository.NewOrderRepository(db)
	productRepo := repository.NewProductRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	triggerSvc := NewCampaignTriggerService(
		&config.Config{},
		repository.NewCampaignRepository(db),
		orderRepo,
		repository.NewTriggeredDiscountRepository(db),
		nil,
	)
	svc := NewOrderService(orderRepo, productRepo, customerRepo, triggerSvc, nil)

	customer := &models.Customer{Name: "下单客户", Email: t.Name() + "@example.com"}
	if err := db.Create(customer).Error; err != nil {
		t.Fatalf("create customer failed: %v", err)
	}
	active := &models.Product{
		CategoryID: 1,
		Slug:       "active-" + strings.ToLower(t.Name()),
		Name:       "在售商品",
		Price:      models.NewMoneyFromDecimal(decimal.NewFromFloat(19.99)),
		Stock:      100,
		IsActive:   true,
	}
	if err := db.Create(active).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	inactive := &models.Product{
		CategoryID: 1,
		Slug:       "inactive-" + strings.ToLower(t.Name()),
		Name:       "下架商品",
		Price:      models.NewMoneyFromDecimal(decimal.NewFromFloat(9.99)),
		Stock:      100,
		IsActive:   false,
	}
	if err := db.Select("*").Create(inactive).Error; err != nil {
		t.Fatalf("create inactive product failed: %v", err)
	}
	return orderServiceFixture{svc: svc, db: db, customer: customer, active: active, inactive: inactive}
}

func TestOrderCreateComputesTotals(t *testing.T) {
	f := setupOrderServiceTest(t)

	result, err := f.svc.Create(CreateOrderInput{
		CustomerID:     f.customer.ID,
		PaymentMethod:  "  wire  ",
		DiscountAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(5)),
		Items: []OrderItemInput{
			{ProductID: f.active.ID, Quantity: 2},
		},
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	order := result.Order
	// 19.99 × 2 = 39.98，优惠 5 后应付 34.98
	if !order.Subtotal.Decimal.Equal(decimal.NewFromFloat(39.98)) {
		t.Fatalf("subtotal want 39.98 got %s", order.Subtotal.String())
	}
	if !order.DiscountAmount.Decimal.Equal(decimal.NewFromInt(5)) {
		t.Fatalf("discount want 5 got %s", order.DiscountAmount.String())
	}
	if !order.TotalAmount.Decimal.Equal(decimal.NewFromFloat(34.98)) {
		t.Fatalf("total want 34.98 got %s", order.TotalAmount.String())
	}
	if order.Status != constants.OrderStatusPending {
		t.Fatalf("status want pending got %s", order.Status)
	}
	if !strings.HasPrefix(order.InvoiceNo, constants.InvoiceNoPrefix) {
		t.Fatalf("invoice no want %s prefix got %s", constants.InvoiceNoPrefix, order.InvoiceNo)
	}
	if order.PaymentMethod != "wire" {
		t.Fatalf("payment method want trimmed got %q", order.PaymentMethod)
	}
	if len(order.Items) != 1 {
		t.Fatalf("items want 1 got %d", len(order.Items))
	}
	if order.Items[0].ProductName != f.active.Name {
		t.Fatalf("item snapshot name want %s got %s", f.active.Name, order.Items[0].ProductName)
	}
	if !order.Items[0].TotalPrice.Decimal.Equal(decimal.NewFromFloat(39.98)) {
		t.Fatalf("item total want 39.98 got %s", order.Items[0].TotalPrice.String())
	}

	// 客户累计统计随订单提交更新
	var customer models.Customer
	if err := f.db.First(&customer, f.customer.ID).Error; err != nil {
		t.Fatalf("reload customer failed: %v", err)
	}
	if customer.TotalOrders != 1 {
		t.Fatalf("total orders want 1 got %d", customer.TotalOrders)
	}
	if !customer.TotalSpent.Decimal.Equal(decimal.NewFromFloat(34.98)) {
		t.Fatalf("total spent want 34.98 got %s", customer.TotalSpent.String())
	}
}

func TestOrderCreateDiscountClampedToSubtotal(t *testing.T) {
	f := setupOrderServiceTest(t)

	result, err := f.svc.Create(CreateOrderInput{
		CustomerID:     f.customer.ID,
		DiscountAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(1000)),
		Items: []OrderItemInput{
			{ProductID: f.active.ID, Quantity: 1},
		},
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	order := result.Order
	if !order.DiscountAmount.Decimal.Equal(order.Subtotal.Decimal) {
		t.Fatalf("discount should clamp to subtotal, got %s vs %s", order.DiscountAmount.String(), order.Subtotal.String())
	}
	if !order.TotalAmount.Decimal.IsZero() {
		t.Fatalf("total want 0 got %s", order.TotalAmount.String())
	}
}

func TestOrderCreateValidation(t *testing.T) {
	f := setupOrderServiceTest(t)

	cases := []struct {
		name  string
		input CreateOrderInput
		want  error
	}{
		{
			name:  "空订单项",
			input: CreateOrderInput{CustomerID: f.customer.ID},
			want:  ErrOrderInvalidItem,
		},
		{
			name: "数量非法",
			input: CreateOrderInput{
				CustomerID: f.customer.ID,
				Items:      []OrderItemInput{{ProductID: f.active.ID, Quantity: 0}},
			},
			want: ErrOrderInvalidItem,
		},
		{
			name: "负数优惠",
			input: CreateOrderInput{
				CustomerID:     f.customer.ID,
				DiscountAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(-1)),
				Items:          []OrderItemInput{{ProductID: f.active.ID, Quantity: 1}},
			},
			want: ErrOrderInvalidItem,
		},
		{
			name: "客户不存在",
			input: CreateOrderInput{
				CustomerID: 99999,
				Items:      []OrderItemInput{{ProductID: f.active.ID, Quantity: 1}},
			},
			want: ErrCustomerNotFound,
		},
		{
			name: "商品不存在",
			input: CreateOrderInput{
				CustomerID: f.customer.ID,
				Items:      []OrderItemInput{{ProductID: 99999, Quantity: 1}},
			},
			want: ErrProductNotFound,
		},
		{
			name: "商品已下架",
			input: CreateOrderInput{
				CustomerID: f.customer.ID,
				Items:      []OrderItemInput{{ProductID: f.inactive.ID, Quantity: 1}},
			},
			want: ErrProductInactive,
		},
	}

	for _, tc := range cases {
		if _, err := f.svc.Create(tc.input); err != tc.want {
			t.Fatalf("%s: want %v got %v", tc.name, tc.want, err)
		}
	}
}

func TestOrderCreateEvaluatesCampaigns(t *testing.T) {
	f := setupOrderServiceTest(t)
	createTestCampaign(t, f.db, models.Campaign{
		Title:          "满额立减",
		DiscountType:   models.CampaignDiscountFixed,
		DiscountValue:  models.NewMoneyFromDecimal(decimal.NewFromInt(5)),
		ConditionType:  models.CampaignConditionAmount,
		ConditionValue: models.NewMoneyFromDecimal(decimal.NewFromInt(30)),
		CouponPrefix:   "AUTO",
		IsActive:       true,
	})

	result, err := f.svc.Create(CreateOrderInput{
		CustomerID: f.customer.ID,
		Items:      []OrderItemInput{{ProductID: f.active.ID, Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if len(result.TriggerErrors) != 0 {
		t.Fatalf("trigger errors want 0 got %d", len(result.TriggerErrors))
	}
	if len(result.CampaignResults) != 1 {
		t.Fatalf("campaign results want 1 got %d", len(result.CampaignResults))
	}
	td := result.CampaignResults[0].TriggeredDiscount
	if td.OrderID != result.Order.ID {
		t.Fatalf("trigger order binding want %d got %d", result.Order.ID, td.OrderID)
	}
	if td.Status != models.TriggeredDiscountStatusPending {
		t.Fatalf("trigger status want pending got %s", td.Status)
	}
	// 触发记录不回写订单金额
	if !result.Order.DiscountAmount.Decimal.IsZero() {
		t.Fatalf("order discount should stay 0, got %s", result.Order.DiscountAmount.String())
	}
}

func TestOrderUpdateStatus(t *testing.T) {
	f := setupOrderServiceTest(t)
	result, err := f.svc.Create(CreateOrderInput{
		CustomerID: f.customer.ID,
		Items:      []OrderItemInput{{ProductID: f.active.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	if _, err := f.svc.UpdateStatus(result.Order.ID, "shipped"); err != ErrOrderBadStatus {
		t.Fatalf("unknown status want ErrOrderBadStatus got %v", err)
	}
	if _, err := f.svc.UpdateStatus(99999, constants.OrderStatusProcessing); err != ErrOrderNotFound {
		t.Fatalf("missing order want ErrOrderNotFound got %v", err)
	}

	updated, err := f.svc.UpdateStatus(result.Order.ID, constants.OrderStatusProcessing)
	if err != nil {
		t.Fatalf("update status failed: %v", err)
	}
	if updated.Status != constants.OrderStatusProcessing {
		t.Fatalf("status want processing got %s", updated.Status)
	}

	var reloaded models.Order
	if err := f.db.First(&reloaded, result.Order.ID).Error; err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if reloaded.Status != constants.OrderStatusProcessing {
		t.Fatalf("persisted status want processing got %s", reloaded.Status)
	}

	// 取消订单：未配置队列时只更新状态，不触发对账任务
	canceled, err := f.svc.UpdateStatus(result.Order.ID, constants.OrderStatusCanceled)
	if err != nil {
		t.Fatalf("cancel order failed: %v", err)
	}
	if canceled.Status != constants.OrderStatusCanceled {
		t.Fatalf("status want canceled got %s", canceled.Status)
	}
	if err := f.db.First(&reloaded, result.Order.ID).Error; err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if reloaded.Status != constants.OrderStatusCanceled {
		t.Fatalf("persisted status want canceled got %s", reloaded.Status)
	}
}
