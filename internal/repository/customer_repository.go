package repository

import (
	"errors"
	"time"

	"github.com/shopadmin-next/internal/constants"
	"github.com/shopadmin-next/internal/models"

	"gorm.io/gorm"
)

// CustomerRepository 客户数据访问接口
type CustomerRepository interface {
	GetByID(id uint) (*models.Customer, error)
	GetByEmail(email string) (*models.Customer, error)
	Create(customer *models.Customer) error
	Update(customer *models.Customer) error
	Delete(id uint) error
	List(filter CustomerListFilter) ([]models.Customer, int64, error)
	IncrementOrderStats(id uint, amount models.Money) error
	RecalcOrderStats(id uint) error
	CountSince(since time.Time) (int64, error)
	WithTx(tx *gorm.DB) *GormCustomerRepository
}

// GormCustomerRepository GORM 实现
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository 创建客户仓库
func NewCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCustomerRepository) WithTx(tx *gorm.DB) *GormCustomerRepository {
	if tx == nil {
		return r
	}
	return &GormCustomerRepository{db: tx}
}

// GetByID 根据 ID 获取客户
func (r *GormCustomerRepository) GetByID(id uint) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.First(&customer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &customer, nil
}

// GetByEmail 根据邮箱获取客户
func (r *GormCustomerRepository) GetByEmail(email string) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.Where("email = ?", email).First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &customer, nil
}

// Create 创建客户
func (r *GormCustomerRepository) Create(customer *models.Customer) error {
	return r.db.Create(customer).Error
}

// Update 更新客户
func (r *GormCustomerRepository) Update(customer *models.Customer) error {
	return r.db.Save(customer).Error
}

// Delete 删除客户（软删除）
func (r *GormCustomerRepository) Delete(id uint) error {
	return r.db.Delete(&models.Customer{}, id).Error
}

// List 获取客户列表
func (r *GormCustomerRepository) List(filter CustomerListFilter) ([]models.Customer, int64, error) {
	var customers []models.Customer
	query := r.db.Model(&models.Customer{})

	if filter.Search != "" {
		condition, argCount := buildLikeCondition(r.db, []string{"name", "email", "phone"})
		if argCount > 0 {
			like := "%" + filter.Search + "%"
			query = query.Where(condition, repeatLikeArgs(like, argCount)...)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Order("id desc").Find(&customers).Error; err != nil {
		return nil, 0, err
	}
	return customers, total, nil
}

// IncrementOrderStats 累加客户的订单数与消费金额
func (r *GormCustomerRepository) IncrementOrderStats(id uint, amount models.Money) error {
	return r.db.Model(&models.Customer{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"total_orders": gorm.Expr("total_orders + 1"),
			"total_spent":  gorm.Expr("total_spent + ?", amount),
		}).Error
}

// RecalcOrderStats 按订单表重算客户累计统计，用于异步对账
func (r *GormCustomerRepository) RecalcOrderStats(id uint) error {
	ordersExpr := gorm.Expr(
		"(SELECT COUNT(*) FROM orders WHERE orders.customer_id = customers.id AND orders.deleted_at IS NULL AND orders.status <> ?)",
		constants.OrderStatusCanceled,
	)
	spentExpr := gorm.Expr(
		"(SELECT COALESCE(SUM(orders.total_amount), 0) FROM orders WHERE orders.customer_id = customers.id AND orders.deleted_at IS NULL AND orders.status <> ?)",
		constants.OrderStatusCanceled,
	)
	return r.db.Model(&models.Customer{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"total_orders": ordersExpr,
			"total_spent":  spentExpr,
		}).Error
}

// CountSince 统计某时间之后新增的客户数
func (r *GormCustomerRepository) CountSince(since time.Time) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Customer{}).Where("created_at >= ?", since).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
