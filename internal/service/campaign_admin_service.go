package service

import (
	"strings"
	"time"

	"github.com/shopadmin-next/internal/constants"
	"github.com/shopadmin-next/internal/models"
	"github.com/shopadmin-next/internal/repository"

	"github.com/shopspring/decimal"
)

// CampaignAdminService 营销活动管理服务
type CampaignAdminService struct {
	repo repository.CampaignRepository
}

// NewCampaignAdminService 创建营销活动管理服务
func NewCampaignAdminService(repo repository.CampaignRepository) *CampaignAdminService {
	return &CampaignAdminService{repo: repo}
}

// CampaignInput 创建/更新活动输入
type CampaignInput struct {
	Title          string
	Description    string
	DiscountType   string
	DiscountValue  models.Money
	ConditionType  string
	ConditionValue models.Money
	CouponPrefix   string
	IsActive       *bool
	StartsAt       *time.Time
	EndsAt         *time.Time
}

// List 获取活动列表
func (s *CampaignAdminService) List(filter repository.CampaignListFilter) ([]models.Campaign, int64, error) {
	return s.repo.List(filter)
}

// Get 获取活动详情
func (s *CampaignAdminService) Get(id uint) (*models.Campaign, error) {
	campaign, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, ErrCampaignNotFound
	}
	return campaign, nil
}

// Create 创建活动
func (s *CampaignAdminService) Create(input CampaignInput) (*models.Campaign, error) {
	if err := validateCampaignInput(input); err != nil {
		return nil, err
	}

	prefix := strings.ToUpper(strings.TrimSpace(input.CouponPrefix))
	if prefix == "" {
		prefix = constants.CouponPrefixDefault
	}
	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	campaign := models.Campaign{
		Title:          strings.TrimSpace(input.Title),
		Description:    strings.TrimSpace(input.Description),
		DiscountType:   input.DiscountType,
		DiscountValue:  input.DiscountValue,
		ConditionType:  input.ConditionType,
		ConditionValue: input.ConditionValue,
		CouponPrefix:   prefix,
		IsActive:       isActive,
		StartsAt:       input.StartsAt,
		EndsAt:         input.EndsAt,
	}
	if err := s.repo.Create(&campaign); err != nil {
		return nil, err
	}
	return &campaign, nil
}

// Update 更新活动
func (s *CampaignAdminService) Update(id uint, input CampaignInput) (*models.Campaign, error) {
	campaign, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, ErrCampaignNotFound
	}

	if err := validateCampaignInput(input); err != nil {
		return nil, err
	}

	prefix := strings.ToUpper(strings.TrimSpace(input.CouponPrefix))
	if prefix == "" {
		prefix = constants.CouponPrefixDefault
	}

	campaign.Title = strings.TrimSpace(input.Title)
	campaign.Description = strings.TrimSpace(input.Description)
	campaign.DiscountType = input.DiscountType
	campaign.DiscountValue = input.DiscountValue
	campaign.ConditionType = input.ConditionType
	campaign.ConditionValue = input.ConditionValue
	campaign.CouponPrefix = prefix
	campaign.StartsAt = input.StartsAt
	campaign.EndsAt = input.EndsAt
	if input.IsActive != nil {
		campaign.IsActive = *input.IsActive
	}

	if err := s.repo.Update(campaign); err != nil {
		return nil, err
	}
	return campaign, nil
}

// Delete 删除活动
func (s *CampaignAdminService) Delete(id uint) error {
	campaign, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if campaign == nil {
		return ErrCampaignNotFound
	}
	return s.repo.Delete(id)
}

func validateCampaignInput(input CampaignInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return ErrCampaignInvalid
	}
	switch input.DiscountType {
	case models.CampaignDiscountPercentage:
		if input.DiscountValue.Decimal.LessThanOrEqual(decimal.Zero) ||
			input.DiscountValue.Decimal.GreaterThan(decimal.NewFromInt(100)) {
			return ErrCampaignInvalid
		}
	case models.CampaignDiscountFixed:
		if input.DiscountValue.Decimal.LessThanOrEqual(decimal.Zero) {
			return ErrCampaignInvalid
		}
	default:
		return ErrCampaignInvalid
	}
	switch input.ConditionType {
	case models.CampaignConditionQuantity, models.CampaignConditionAmount:
		if input.ConditionValue.Decimal.LessThan(decimal.Zero) {
			return ErrCampaignInvalid
		}
	default:
		return ErrCampaignInvalid
	}
	if input.StartsAt != nil && input.EndsAt != nil && input.EndsAt.Before(*input.StartsAt) {
		return ErrCampaignInvalid
	}
	return nil
}
