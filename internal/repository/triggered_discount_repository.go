package repository

import (
	"errors"
	"time"

	"github.com/shopadmin-next/internal/models"

	"gorm.io/gorm"
)

// TriggeredDiscountRepository 触发折扣数据访问接口
type TriggeredDiscountRepository interface {
	GetByID(id uint) (*models.TriggeredDiscount, error)
	GetByOrderAndCampaign(orderID, campaignID uint) (*models.TriggeredDiscount, error)
	ExistsByCouponCode(code string) (bool, error)
	Create(td *models.TriggeredDiscount) error
	List(filter TriggeredDiscountListFilter) ([]models.TriggeredDiscount, int64, error)
	UpdateStatusIf(id uint, current, target string) (int64, error)
	CountSince(since time.Time) (int64, error)
	WithTx(tx *gorm.DB) *GormTriggeredDiscountRepository
}

// GormTriggeredDiscountRepository GORM 实现
type GormTriggeredDiscountRepository struct {
	db *gorm.DB
}

// NewTriggeredDiscountRepository 创建触发折扣仓库
func NewTriggeredDiscountRepository(db *gorm.DB) *GormTriggeredDiscountRepository {
	return &GormTriggeredDiscountRepository{db: db}
}

// WithTx 绑定事务
func (r *GormTriggeredDiscountRepository) WithTx(tx *gorm.DB) *GormTriggeredDiscountRepository {
	if tx == nil {
		return r
	}
	return &GormTriggeredDiscountRepository{db: tx}
}

// GetByID 根据 ID 获取触发折扣
func (r *GormTriggeredDiscountRepository) GetByID(id uint) (*models.TriggeredDiscount, error) {
	var td models.TriggeredDiscount
	if err := r.db.First(&td, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &td, nil
}

// GetByOrderAndCampaign 根据订单与活动获取触发折扣
func (r *GormTriggeredDiscountRepository) GetByOrderAndCampaign(orderID, campaignID uint) (*models.TriggeredDiscount, error) {
	var td models.TriggeredDiscount
	if err := r.db.Where("order_id = ? AND campaign_id = ?", orderID, campaignID).First(&td).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &td, nil
}

// ExistsByCouponCode 判断兑换码是否已存在
func (r *GormTriggeredDiscountRepository) ExistsByCouponCode(code string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.TriggeredDiscount{}).Where("coupon_code = ?", code).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create 创建触发折扣记录
//
// 唯一索引冲突由调用方分类处理（同单同活动去重或兑换码冲突）。
func (r *GormTriggeredDiscountRepository) Create(td *models.TriggeredDiscount) error {
	return r.db.Create(td).Error
}

// List 获取触发折扣列表
func (r *GormTriggeredDiscountRepository) List(filter TriggeredDiscountListFilter) ([]models.TriggeredDiscount, int64, error) {
	var records []models.TriggeredDiscount
	query := r.db.Model(&models.TriggeredDiscount{})

	if filter.CustomerID != 0 {
		query = query.Where("customer_id = ?", filter.CustomerID)
	}
	if filter.CampaignID != 0 {
		query = query.Where("campaign_id = ?", filter.CampaignID)
	}
	if filter.OrderID != 0 {
		query = query.Where("order_id = ?", filter.OrderID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("triggered_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("triggered_at <= ?", *filter.CreatedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	query = query.Preload("Customer").Preload("Campaign").Preload("Order")
	if err := query.Order("id desc").Find(&records).Error; err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// UpdateStatusIf 仅当当前状态匹配时原子更新状态，返回受影响行数。
// 返回 0 表示当前状态已被并发修改或不匹配。
func (r *GormTriggeredDiscountRepository) UpdateStatusIf(id uint, current, target string) (int64, error) {
	result := r.db.Model(&models.TriggeredDiscount{}).
		Where("id = ? AND status = ?", id, current).
		Update("status", target)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// CountSince 统计某时间之后触发的折扣数
func (r *GormTriggeredDiscountRepository) CountSince(since time.Time) (int64, error) {
	var count int64
	if err := r.db.Model(&models.TriggeredDiscount{}).Where("triggered_at >= ?", since).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
