package service

import (
	"testing"
	"time"

	"github.com/shopadmin-next/internal/models"
	"github.com/shopadmin-next/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupCampaignAdminServiceTest(t *testing.T) (*CampaignAdminService, *gorm.DB) {
	t.Helper()
	db := openServiceTestDB(t)
	return NewCampaignAdminService(repository.NewCampaignRepository(db)), db
}

func validCampaignInput() CampaignInput {
	return CampaignInput{
		Title:          "满额折扣",
		DiscountType:   models.CampaignDiscountPercentage,
		DiscountValue:  models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
		ConditionType:  models.CampaignConditionAmount,
		ConditionValue: models.NewMoneyFromDecimal(decimal.NewFromInt(100)),
	}
}

func TestCampaignCreateValidation(t *testing.T) {
	svc, _ := setupCampaignAdminServiceTest(t)
	starts := time.Now()
	endsBefore := starts.Add(-time.Hour)

	cases := []struct {
		name   string
		mutate func(*CampaignInput)
	}{
		{"空标题", func(in *CampaignInput) { in.Title = "   " }},
		{"未知折扣类型", func(in *CampaignInput) { in.DiscountType = "bogus" }},
		{"百分比为零", func(in *CampaignInput) {
			in.DiscountValue = models.NewMoneyFromDecimal(decimal.Zero)
		}},
		{"百分比超过100", func(in *CampaignInput) {
			in.DiscountValue = models.NewMoneyFromDecimal(decimal.NewFromInt(101))
		}},
		{"固定金额为零", func(in *CampaignInput) {
			in.DiscountType = models.CampaignDiscountFixed
			in.DiscountValue = models.NewMoneyFromDecimal(decimal.Zero)
		}},
		{"未知条件类型", func(in *CampaignInput) { in.ConditionType = "bogus" }},
		{"条件阈值为负", func(in *CampaignInput) {
			in.ConditionValue = models.NewMoneyFromDecimal(decimal.NewFromInt(-1))
		}},
		{"结束早于开始", func(in *CampaignInput) {
			in.StartsAt = &starts
			in.EndsAt = &endsBefore
		}},
	}

	for _, tc := range cases {
		input := validCampaignInput()
		tc.mutate(&input)
		if _, err := svc.Create(input); err != ErrCampaignInvalid {
			t.Fatalf("%s: want ErrCampaignInvalid got %v", tc.name, err)
		}
	}
}

func TestCampaignCreateDefaults(t *testing.T) {
	svc, _ := setupCampaignAdminServiceTest(t)

	input := validCampaignInput()
	input.Title = "  满额折扣  "
	input.CouponPrefix = " spring "
	campaign, err := svc.Create(input)
	if err != nil {
		t.Fatalf("create campaign failed: %v", err)
	}
	if campaign.Title != "满额折扣" {
		t.Fatalf("title want trimmed got %q", campaign.Title)
	}
	if campaign.CouponPrefix != "SPRING" {
		t.Fatalf("coupon prefix want SPRING got %s", campaign.CouponPrefix)
	}
	if !campaign.IsActive {
		t.Fatalf("is_active should default to true")
	}

	// 前缀缺省回退
	input = validCampaignInput()
	campaign, err = svc.Create(input)
	if err != nil {
		t.Fatalf("create campaign failed: %v", err)
	}
	if campaign.CouponPrefix != "SAVE" {
		t.Fatalf("coupon prefix want SAVE got %s", campaign.CouponPrefix)
	}
}

func TestCampaignCreateInactivePersisted(t *testing.T) {
	svc, db := setupCampaignAdminServiceTest(t)

	disabled := false
	input := validCampaignInput()
	input.IsActive = &disabled
	campaign, err := svc.Create(input)
	if err != nil {
		t.Fatalf("create campaign failed: %v", err)
	}
	if campaign.IsActive {
		t.Fatalf("is_active want false on returned campaign")
	}

	// 停用标记必须落库，不能被列默认值覆盖
	var stored models.Campaign
	if err := db.First(&stored, campaign.ID).Error; err != nil {
		t.Fatalf("reload campaign failed: %v", err)
	}
	if stored.IsActive {
		t.Fatalf("is_active want false in database, got true")
	}

	eligible, err := repository.NewCampaignRepository(db).ListEligible(time.Now())
	if err != nil {
		t.Fatalf("list eligible failed: %v", err)
	}
	if len(eligible) != 0 {
		t.Fatalf("inactive campaign should not be eligible, got %d", len(eligible))
	}
}

func TestCampaignUpdateAndDelete(t *testing.T) {
	svc, _ := setupCampaignAdminServiceTest(t)

	campaign, err := svc.Create(validCampaignInput())
	if err != nil {
		t.Fatalf("create campaign failed: %v", err)
	}

	disabled := false
	input := validCampaignInput()
	input.Title = "改名活动"
	input.DiscountType = models.CampaignDiscountFixed
	input.DiscountValue = models.NewMoneyFromDecimal(decimal.NewFromInt(20))
	input.IsActive = &disabled
	updated, err := svc.Update(campaign.ID, input)
	if err != nil {
		t.Fatalf("update campaign failed: %v", err)
	}
	if updated.Title != "改名活动" || updated.DiscountType != models.CampaignDiscountFixed {
		t.Fatalf("update not applied: %+v", updated)
	}
	if updated.IsActive {
		t.Fatalf("is_active want false")
	}

	if _, err := svc.Update(99999, validCampaignInput()); err != ErrCampaignNotFound {
		t.Fatalf("missing campaign want ErrCampaignNotFound got %v", err)
	}

	if err := svc.Delete(campaign.ID); err != nil {
		t.Fatalf("delete campaign failed: %v", err)
	}
	if _, err := svc.Get(campaign.ID); err != ErrCampaignNotFound {
		t.Fatalf("deleted campaign want ErrCampaignNotFound got %v", err)
	}
	if err := svc.Delete(campaign.ID); err != ErrCampaignNotFound {
		t.Fatalf("double delete want ErrCampaignNotFound got %v", err)
	}
}
