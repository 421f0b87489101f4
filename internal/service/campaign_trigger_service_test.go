package service

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopadmin-next/internal/config"
	"github.com/shopadmin-next/internal/models"
	"github.com/shopadmin-next/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func openServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.Customer{},
		&models.Order{},
		&models.OrderItem{},
		&models.Campaign{},
		&models.TriggeredDiscount{},
	); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return db
}

func setupTriggerServiceTest(t *testing.T) (*CampaignTriggerService, *gorm.DB) {
	t.Helper()
	db := openServiceTestDB(t)
	svc := NewCampaignTriggerService(
		&config.Config{},
		repository.NewCampaignRepository(db),
		repository.NewOrderRepository(db),
		repository.NewTriggeredDiscountRepository(db),
		nil,
	)
	return svc, db
}

var testOrderSeq uint32

func createTestOrder(t *testing.T, db *gorm.DB, subtotal string, quantities ...int) *models.Order {
	t.Helper()
	seq := atomic.AddUint32(&testOrderSeq, 1)
	customer := &models.Customer{Name: "测试客户", Email: fmt.Sprintf("%s-%d@example.com", t.Name(), seq)}
	if err := db.Create(customer).Error; err != nil {
		t.Fatalf("create customer failed: %v", err)
	}
	sub, err := decimal.NewFromString(subtotal)
	if err != nil {
		t.Fatalf("parse subtotal failed: %v", err)
	}
	order := &models.Order{
		InvoiceNo:  fmt.Sprintf("INV-%s-%d", t.Name(), seq),
		CustomerID: customer.ID,
		Status:     "pending",
		Subtotal:   models.NewMoneyFromDecimal(sub),
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	for i, qty := range quantities {
		item := models.OrderItem{
			OrderID:     order.ID,
			ProductID:   uint(i + 1),
			ProductName: fmt.Sprintf("商品%d", i+1),
			Quantity:    qty,
			UnitPrice:   models.NewMoneyFromDecimal(decimal.NewFromInt(1)),
			TotalPrice:  models.NewMoneyFromDecimal(decimal.NewFromInt(int64(qty))),
		}
		if err := db.Create(&item).Error; err != nil {
			t.Fatalf("create order item failed: %v", err)
		}
	}
	return order
}

func createTestCampaign(t *testing.T, db *gorm.DB, campaign models.Campaign) *models.Campaign {
	t.Helper()
	if err := db.Select("*").Create(&campaign).Error; err != nil {
		t.Fatalf("create campaign failed: %v", err)
	}
	return &campaign
}

func TestEvaluateOrderFixedDiscountOnQuantity(t *testing.T) {
	svc, db := setupTriggerServiceTest(t)
	order := createTestOrder(t, db, "59.98", 1, 1)
	campaign := createTestCampaign(t, db, models.Campaign{
		Title:          "多件立减",
		DiscountType:   models.CampaignDiscountFixed,
		DiscountValue:  models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
		ConditionType:  models.CampaignConditionQuantity,
		ConditionValue: models.NewMoneyFromDecimal(decimal.NewFromInt(2)),
		CouponPrefix:   "BULK",
		IsActive:       true,
	})

	results, failures, err := svc.EvaluateOrder(order.ID)
	if err != nil {
		t.Fatalf("evaluate order failed: %v", err)
	}
	if len(failures) != 0 {
		t.Fatalf("failures want 0 got %d", len(failures))
	}
	if len(results) != 1 {
		t.Fatalf("results want 1 got %d", len(results))
	}
	td := results[0].TriggeredDiscount
	if results[0].AlreadyExisted {
		t.Fatalf("first evaluation should create a new record")
	}
	if td.CampaignID != campaign.ID || td.OrderID != order.ID {
		t.Fatalf("record binding mismatch: campaign=%d order=%d", td.CampaignID, td.OrderID)
	}
	if !td.DiscountAmount.Decimal.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("discount want 10 got %s", td.DiscountAmount.String())
	}
	if td.Status != models.TriggeredDiscountStatusPending {
		t.Fatalf("status want pending got %s", td.Status)
	}
	if !strings.HasPrefix(td.CouponCode, "BULK-") {
		t.Fatalf("coupon code want BULK- prefix got %s", td.CouponCode)
	}

	// 重复评估幂等：返回已有记录，不新增
	results, failures, err = svc.EvaluateOrder(order.ID)
	if err != nil {
		t.Fatalf("re-evaluate order failed: %v", err)
	}
	if len(failures) != 0 {
		t.Fatalf("re-evaluate failures want 0 got %d", len(failures))
	}
	if len(results) != 1 || !results[0].AlreadyExisted {
		t.Fatalf("re-evaluation should return the existing record")
	}
	if results[0].TriggeredDiscount.ID != td.ID {
		t.Fatalf("record id want %d got %d", td.ID, results[0].TriggeredDiscount.ID)
	}
	var count int64
	if err := db.Model(&models.TriggeredDiscount{}).Count(&count).Error; err != nil {
		t.Fatalf("count records failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("records want 1 got %d", count)
	}
}

func TestEvaluateOrderPercentageRounding(t *testing.T) {
	svc, db := setupTriggerServiceTest(t)
	order := createTestOrder(t, db, "699.99", 1)
	createTestCampaign(t, db, models.Campaign{
		Title:          "满额九折",
		DiscountType:   models.CampaignDiscountPercentage,
		DiscountValue:  models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
		ConditionType:  models.CampaignConditionAmount,
		ConditionValue: models.NewMoneyFromDecimal(decimal.NewFromInt(100)),
		CouponPrefix:   "SPRING",
		IsActive:       true,
	})

	results, _, err := svc.EvaluateOrder(order.ID)
	if err != nil {
		t.Fatalf("evaluate order failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("results want 1 got %d", len(results))
	}
	// 699.99 × 10% = 69.999，入库保留 2 位小数
	if got := results[0].TriggeredDiscount.DiscountAmount.Decimal; !got.Equal(decimal.NewFromInt(70)) {
		t.Fatalf("discount want 70 got %s", got)
	}
}

func TestEvaluateOrderAmountThresholdInclusive(t *testing.T) {
	svc, db := setupTriggerServiceTest(t)
	createTestCampaign(t, db, models.Campaign{
		Title:          "满百打折",
		DiscountType:   models.CampaignDiscountPercentage,
		DiscountValue:  models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
		ConditionType:  models.CampaignConditionAmount,
		ConditionValue: models.NewMoneyFromDecimal(decimal.NewFromInt(100)),
		CouponPrefix:   "HUNDRED",
		IsActive:       true,
	})

	below := createTestOrder(t, db, "99.99", 1)
	results, _, err := svc.EvaluateOrder(below.ID)
	if err != nil {
		t.Fatalf("evaluate below-threshold order failed: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("below threshold should not trigger, got %d results", len(results))
	}

	exact := createTestOrder(t, db, "100.00", 1)
	results, _, err = svc.EvaluateOrder(exact.ID)
	if err != nil {
		t.Fatalf("evaluate exact-threshold order failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("exact threshold should trigger, got %d results", len(results))
	}
}

func TestEvaluateOrderQuantityThresholdInclusive(t *testing.T) {
	svc, db := setupTriggerServiceTest(t)
	createTestCampaign(t, db, models.Campaign{
		Title:          "两件立减",
		DiscountType:   models.CampaignDiscountFixed,
		DiscountValue:  models.NewMoneyFromDecimal(decimal.NewFromInt(5)),
		ConditionType:  models.CampaignConditionQuantity,
		ConditionValue: models.NewMoneyFromDecimal(decimal.NewFromInt(2)),
		CouponPrefix:   "PAIR",
		IsActive:       true,
	})

	below := createTestOrder(t, db, "50.00", 1)
	results, _, err := svc.EvaluateOrder(below.ID)
	if err != nil {
		t.Fatalf("evaluate below-threshold order failed: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("below threshold should not trigger, got %d results", len(results))
	}

	exact := createTestOrder(t, db, "50.00", 2)
	results, _, err = svc.EvaluateOrder(exact.ID)
	if err != nil {
		t.Fatalf("evaluate exact-threshold order failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("exact threshold should trigger, got %d results", len(results))
	}
}

func TestEvaluateOrderFixedDiscountCappedAtSubtotal(t *testing.T) {
	svc, db := setupTriggerServiceTest(t)
	order := createTestOrder(t, db, "5.00", 1)
	createTestCampaign(t, db, models.Campaign{
		Title:          "大额立减",
		DiscountType:   models.CampaignDiscountFixed,
		DiscountValue:  models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
		ConditionType:  models.CampaignConditionQuantity,
		ConditionValue: models.NewMoneyFromDecimal(decimal.NewFromInt(1)),
		IsActive:       true,
	})

	results, _, err := svc.EvaluateOrder(order.ID)
	if err != nil {
		t.Fatalf("evaluate order failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("results want 1 got %d", len(results))
	}
	td := results[0].TriggeredDiscount
	if !td.DiscountAmount.Decimal.Equal(decimal.NewFromInt(5)) {
		t.Fatalf("discount want 5 got %s", td.DiscountAmount.String())
	}
	// 前缀为空时回退默认前缀
	if !strings.HasPrefix(td.CouponCode, "SAVE-") {
		t.Fatalf("coupon code want SAVE- prefix got %s", td.CouponCode)
	}
}

func TestEvaluateOrderSkipsIneligibleCampaigns(t *testing.T) {
	svc, db := setupTriggerServiceTest(t)
	now := time.Now()
	pastStart := now.AddDate(0, -2, 0)
	pastEnd := now.AddDate(0, -1, 0)
	futureStart := now.AddDate(0, 1, 0)

	createTestCampaign(t, db, models.Campaign{
		Title:          "已结束",
		DiscountType:   models.CampaignDiscountFixed,
		DiscountValue:  models.NewMoneyFromDecimal(decimal.NewFromInt(5)),
		ConditionType:  models.CampaignConditionQuantity,
		ConditionValue: models.NewMoneyFromDecimal(decimal.NewFromInt(1)),
		IsActive:       true,
		StartsAt:       &pastStart,
		EndsAt:         &pastEnd,
	})
	createTestCampaign(t, db, models.Campaign{
		Title:          "未开始",
		DiscountType:   models.CampaignDiscountFixed,
		DiscountValue:  models.NewMoneyFromDecimal(decimal.NewFromInt(5)),
		ConditionType:  models.CampaignConditionQuantity,
		ConditionValue: models.NewMoneyFromDecimal(decimal.NewFromInt(1)),
		IsActive:       true,
		StartsAt:       &futureStart,
	})
	createTestCampaign(t, db, models.Campaign{
		Title:          "已停用",
		DiscountType:   models.CampaignDiscountFixed,
		DiscountValue:  models.NewMoneyFromDecimal(decimal.NewFromInt(5)),
		ConditionType:  models.CampaignConditionQuantity,
		ConditionValue: models.NewMoneyFromDecimal(decimal.NewFromInt(1)),
		IsActive:       false,
	})

	order := createTestOrder(t, db, "200.00", 5)
	results, failures, err := svc.EvaluateOrder(order.ID)
	if err != nil {
		t.Fatalf("evaluate order failed: %v", err)
	}
	if len(results) != 0 || len(failures) != 0 {
		t.Fatalf("ineligible campaigns should not trigger, got %d results %d failures", len(results), len(failures))
	}
}

func TestEvaluateOrderMultipleCampaigns(t *testing.T) {
	svc, db := setupTriggerServiceTest(t)
	order := createTestOrder(t, db, "150.00", 2, 1)
	createTestCampaign(t, db, models.Campaign{
		Title:          "满百打折",
		DiscountType:   models.CampaignDiscountPercentage,
		DiscountValue:  models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
		ConditionType:  models.CampaignConditionAmount,
		ConditionValue: models.NewMoneyFromDecimal(decimal.NewFromInt(100)),
		CouponPrefix:   "AMT",
		IsActive:       true,
	})
	createTestCampaign(t, db, models.Campaign{
		Title:          "满三件立减",
		DiscountType:   models.CampaignDiscountFixed,
		DiscountValue:  models.NewMoneyFromDecimal(decimal.NewFromInt(15)),
		ConditionType:  models.CampaignConditionQuantity,
		ConditionValue: models.NewMoneyFromDecimal(decimal.NewFromInt(3)),
		CouponPrefix:   "QTY",
		IsActive:       true,
	})

	results, failures, err := svc.EvaluateOrder(order.ID)
	if err != nil {
		t.Fatalf("evaluate order failed: %v", err)
	}
	if len(failures) != 0 {
		t.Fatalf("failures want 0 got %d", len(failures))
	}
	if len(results) != 2 {
		t.Fatalf("results want 2 got %d", len(results))
	}
	codes := map[string]bool{}
	for _, r := range results {
		codes[r.TriggeredDiscount.CouponCode] = true
	}
	if len(codes) != 2 {
		t.Fatalf("coupon codes should be unique per campaign")
	}
}

func TestEvaluateOrderFailureCarriesMessage(t *testing.T) {
	svc, db := setupTriggerServiceTest(t)
	order := createTestOrder(t, db, "200.00", 1)
	campaign := createTestCampaign(t, db, models.Campaign{
		Title:          "满百立减",
		DiscountType:   models.CampaignDiscountFixed,
		DiscountValue:  models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
		ConditionType:  models.CampaignConditionAmount,
		ConditionValue: models.NewMoneyFromDecimal(decimal.NewFromInt(100)),
		IsActive:       true,
	})
	if err := db.Migrator().DropTable(&models.TriggeredDiscount{}); err != nil {
		t.Fatalf("drop table failed: %v", err)
	}

	results, failures, err := svc.EvaluateOrder(order.ID)
	if err != nil {
		t.Fatalf("evaluate order failed: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("results want 0 got %d", len(results))
	}
	if len(failures) != 1 {
		t.Fatalf("failures want 1 got %d", len(failures))
	}
	f := failures[0]
	if f.CampaignID != campaign.ID {
		t.Fatalf("failure campaign want %d got %d", campaign.ID, f.CampaignID)
	}
	if f.Message == "" {
		t.Fatalf("failure message should carry the reason")
	}
	raw, err := json.Marshal(f)
	if err != nil {
		t.Fatalf("marshal failure failed: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal failure failed: %v", err)
	}
	if decoded["message"] != f.Message {
		t.Fatalf("serialized failure should include the message, got %s", raw)
	}
}

func TestEvaluateOrderNotFound(t *testing.T) {
	svc, _ := setupTriggerServiceTest(t)
	_, _, err := svc.EvaluateOrder(99999)
	if err != ErrOrderNotFound {
		t.Fatalf("want ErrOrderNotFound got %v", err)
	}
}
