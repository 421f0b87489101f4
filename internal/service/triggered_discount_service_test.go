package service

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopadmin-next/internal/models"
	"github.com/shopadmin-next/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var triggeredDiscountSeq uint32

func setupTriggeredDiscountServiceTest(t *testing.T) (*TriggeredDiscountService, *gorm.DB) {
	t.Helper()
	db := openServiceTestDB(t)
	return NewTriggeredDiscountService(repository.NewTriggeredDiscountRepository(db)), db
}

func createTriggeredDiscount(t *testing.T, db *gorm.DB, status string) *models.TriggeredDiscount {
	t.Helper()
	seq := atomic.AddUint32(&triggeredDiscountSeq, 1)
	td := &models.TriggeredDiscount{
		CustomerID:     1,
		CampaignID:     1,
		OrderID:        uint(seq),
		CouponCode:     fmt.Sprintf("TEST-%s-%d", status, seq),
		DiscountAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
		Status:         status,
		TriggeredAt:    time.Now(),
	}
	if err := db.Create(td).Error; err != nil {
		t.Fatalf("create triggered discount failed: %v", err)
	}
	return td
}

func TestTransitionStatusTable(t *testing.T) {
	svc, db := setupTriggeredDiscountServiceTest(t)

	cases := []struct {
		from    string
		to      string
		allowed bool
	}{
		{models.TriggeredDiscountStatusPending, models.TriggeredDiscountStatusContacted, true},
		{models.TriggeredDiscountStatusPending, models.TriggeredDiscountStatusUsed, true},
		{models.TriggeredDiscountStatusContacted, models.TriggeredDiscountStatusUsed, true},
		{models.TriggeredDiscountStatusPending, models.TriggeredDiscountStatusPending, false},
		{models.TriggeredDiscountStatusContacted, models.TriggeredDiscountStatusPending, false},
		{models.TriggeredDiscountStatusContacted, models.TriggeredDiscountStatusContacted, false},
		{models.TriggeredDiscountStatusUsed, models.TriggeredDiscountStatusPending, false},
		{models.TriggeredDiscountStatusUsed, models.TriggeredDiscountStatusContacted, false},
		{models.TriggeredDiscountStatusUsed, models.TriggeredDiscountStatusUsed, false},
	}

	for _, tc := range cases {
		td := createTriggeredDiscount(t, db, tc.from)
		got, err := svc.TransitionStatus(td.ID, tc.to)
		if tc.allowed {
			if err != nil {
				t.Fatalf("%s -> %s should be allowed, got %v", tc.from, tc.to, err)
			}
			if got.Status != tc.to {
				t.Fatalf("%s -> %s status want %s got %s", tc.from, tc.to, tc.to, got.Status)
			}
			var reloaded models.TriggeredDiscount
			if err := db.First(&reloaded, td.ID).Error; err != nil {
				t.Fatalf("reload failed: %v", err)
			}
			if reloaded.Status != tc.to {
				t.Fatalf("%s -> %s persisted status want %s got %s", tc.from, tc.to, tc.to, reloaded.Status)
			}
		} else {
			if err != ErrInvalidStatusTransition {
				t.Fatalf("%s -> %s want ErrInvalidStatusTransition got %v", tc.from, tc.to, err)
			}
		}
	}
}

func TestTransitionStatusRejectsUnknownTarget(t *testing.T) {
	svc, db := setupTriggeredDiscountServiceTest(t)
	td := createTriggeredDiscount(t, db, models.TriggeredDiscountStatusPending)

	if _, err := svc.TransitionStatus(td.ID, "redeemed"); err != ErrInvalidStatusTransition {
		t.Fatalf("unknown target want ErrInvalidStatusTransition got %v", err)
	}
}

func TestTransitionStatusNotFound(t *testing.T) {
	svc, _ := setupTriggeredDiscountServiceTest(t)
	if _, err := svc.TransitionStatus(99999, models.TriggeredDiscountStatusContacted); err != ErrTriggeredDiscountNotFound {
		t.Fatalf("want ErrTriggeredDiscountNotFound got %v", err)
	}
}

func TestTriggeredDiscountGet(t *testing.T) {
	svc, db := setupTriggeredDiscountServiceTest(t)
	td := createTriggeredDiscount(t, db, models.TriggeredDiscountStatusPending)

	got, err := svc.Get(td.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.CouponCode != td.CouponCode {
		t.Fatalf("coupon code want %s got %s", td.CouponCode, got.CouponCode)
	}

	if _, err := svc.Get(99999); err != ErrTriggeredDiscountNotFound {
		t.Fatalf("missing record want ErrTriggeredDiscountNotFound got %v", err)
	}
}
