package admin

import (
	"errors"

	"github.com/shopadmin-next/internal/http/response"
	"github.com/shopadmin-next/internal/repository"
	"github.com/shopadmin-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CustomerRequest 创建/更新客户请求
type CustomerRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// GetAdminCustomers 获取客户列表
func (h *Handler) GetAdminCustomers(c *gin.Context) {
	page, pageSize := parsePagination(c)

	customers, total, err := h.CustomerService.List(repository.CustomerListFilter{
		Page:     page,
		PageSize: pageSize,
		Search:   c.Query("search"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "获取客户列表失败", err)
		return
	}

	pagination := response.BuildPagination(page, pageSize, total)
	response.SuccessWithPage(c, customers, pagination)
}

// GetAdminCustomer 获取客户详情
func (h *Handler) GetAdminCustomer(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	customer, err := h.CustomerService.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrCustomerNotFound) {
			respondError(c, response.CodeNotFound, "客户不存在", nil)
			return
		}
		respondError(c, response.CodeInternal, "获取客户失败", err)
		return
	}
	response.Success(c, customer)
}

// CreateCustomer 创建客户
func (h *Handler) CreateCustomer(c *gin.Context) {
	var req CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	customer, err := h.CustomerService.Create(service.CustomerInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err != nil {
		if errors.Is(err, service.ErrCustomerEmailTaken) {
			respondError(c, response.CodeBadRequest, "客户邮箱已存在", nil)
			return
		}
		respondError(c, response.CodeInternal, "创建客户失败", err)
		return
	}
	response.Success(c, customer)
}

// UpdateCustomer 更新客户
func (h *Handler) UpdateCustomer(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	customer, err := h.CustomerService.Update(id, service.CustomerInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCustomerNotFound):
			respondError(c, response.CodeNotFound, "客户不存在", nil)
		case errors.Is(err, service.ErrCustomerEmailTaken):
			respondError(c, response.CodeBadRequest, "客户邮箱已存在", nil)
		default:
			respondError(c, response.CodeInternal, "更新客户失败", err)
		}
		return
	}
	response.Success(c, customer)
}

// DeleteCustomer 删除客户（软删除）
func (h *Handler) DeleteCustomer(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.CustomerService.Delete(id); err != nil {
		if errors.Is(err, service.ErrCustomerNotFound) {
			respondError(c, response.CodeNotFound, "客户不存在", nil)
			return
		}
		respondError(c, response.CodeInternal, "删除客户失败", err)
		return
	}
	response.Success(c, nil)
}
