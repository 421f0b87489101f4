package service

import (
	"strings"

	"github.com/shopadmin-next/internal/models"
	"github.com/shopadmin-next/internal/repository"
)

// CustomerService 客户业务服务
type CustomerService struct {
	repo repository.CustomerRepository
}

// NewCustomerService 创建客户服务
func NewCustomerService(repo repository.CustomerRepository) *CustomerService {
	return &CustomerService{repo: repo}
}

// CustomerInput 创建/更新客户输入
type CustomerInput struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

// List 获取客户列表
func (s *CustomerService) List(filter repository.CustomerListFilter) ([]models.Customer, int64, error) {
	return s.repo.List(filter)
}

// Get 获取客户详情
func (s *CustomerService) Get(id uint) (*models.Customer, error) {
	customer, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, ErrCustomerNotFound
	}
	return customer, nil
}

// Create 创建客户
func (s *CustomerService) Create(input CustomerInput) (*models.Customer, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	existing, err := s.repo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrCustomerEmailTaken
	}

	customer := models.Customer{
		Name:    strings.TrimSpace(input.Name),
		Email:   email,
		Phone:   strings.TrimSpace(input.Phone),
		Address: strings.TrimSpace(input.Address),
	}
	if err := s.repo.Create(&customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

// Update 更新客户
func (s *CustomerService) Update(id uint, input CustomerInput) (*models.Customer, error) {
	customer, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, ErrCustomerNotFound
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	existing, err := s.repo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.ID != id {
		return nil, ErrCustomerEmailTaken
	}

	customer.Name = strings.TrimSpace(input.Name)
	customer.Email = email
	customer.Phone = strings.TrimSpace(input.Phone)
	customer.Address = strings.TrimSpace(input.Address)

	if err := s.repo.Update(customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// Delete 删除客户
func (s *CustomerService) Delete(id uint) error {
	customer, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if customer == nil {
		return ErrCustomerNotFound
	}
	return s.repo.Delete(id)
}
