package admin

import (
	"errors"

	"github.com/shopadmin-next/internal/http/response"
	"github.com/shopadmin-next/internal/models"
	"github.com/shopadmin-next/internal/repository"
	"github.com/shopadmin-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// OrderItemRequest 订单项请求
type OrderItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required"`
}

// CreateOrderRequest 创建订单请求
type CreateOrderRequest struct {
	CustomerID     uint               `json:"customer_id" binding:"required"`
	PaymentMethod  string             `json:"payment_method"`
	Notes          string             `json:"notes"`
	DiscountAmount float64            `json:"discount_amount"`
	Items          []OrderItemRequest `json:"items" binding:"required"`
}

// GetAdminOrders 获取订单列表
func (h *Handler) GetAdminOrders(c *gin.Context) {
	page, pageSize := parsePagination(c)

	createdFrom, err := parseTimeNullable(c.Query("created_from"))
	if err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}
	createdTo, err := parseTimeNullable(c.Query("created_to"))
	if err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	orders, total, err := h.OrderService.List(repository.OrderListFilter{
		Page:        page,
		PageSize:    pageSize,
		CustomerID:  parseUintQuery(c, "customer_id"),
		Status:      c.Query("status"),
		InvoiceNo:   c.Query("invoice_no"),
		CreatedFrom: createdFrom,
		CreatedTo:   createdTo,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "获取订单列表失败", err)
		return
	}

	pagination := response.BuildPagination(page, pageSize, total)
	response.SuccessWithPage(c, orders, pagination)
}

// GetAdminOrder 获取订单详情
func (h *Handler) GetAdminOrder(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	order, err := h.OrderService.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			respondError(c, response.CodeNotFound, "订单不存在", nil)
			return
		}
		respondError(c, response.CodeInternal, "获取订单失败", err)
		return
	}
	response.Success(c, order)
}

// CreateOrder 创建订单并返回触发评估结果
func (h *Handler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	items := make([]service.OrderItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, service.OrderItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	result, err := h.OrderService.Create(service.CreateOrderInput{
		CustomerID:     req.CustomerID,
		PaymentMethod:  req.PaymentMethod,
		Notes:          req.Notes,
		DiscountAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(req.DiscountAmount)),
		Items:          items,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCustomerNotFound):
			respondError(c, response.CodeBadRequest, "客户不存在", nil)
		case errors.Is(err, service.ErrOrderInvalidItem):
			respondError(c, response.CodeBadRequest, "订单项参数无效", nil)
		case errors.Is(err, service.ErrProductNotFound):
			respondError(c, response.CodeBadRequest, "商品不存在", nil)
		case errors.Is(err, service.ErrProductInactive):
			respondError(c, response.CodeBadRequest, "商品已下架", nil)
		default:
			respondError(c, response.CodeInternal, "创建订单失败", err)
		}
		return
	}

	if len(result.TriggerErrors) > 0 {
		requestLog(c).Warnw("order_created_with_trigger_errors",
			"order_id", result.Order.ID,
			"failed_campaigns", len(result.TriggerErrors),
		)
	}
	response.Success(c, result)
}

// UpdateOrderStatusRequest 更新订单状态请求
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateOrderStatus 更新订单状态
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	order, err := h.OrderService.UpdateStatus(id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			respondError(c, response.CodeNotFound, "订单不存在", nil)
		case errors.Is(err, service.ErrOrderBadStatus):
			respondError(c, response.CodeBadRequest, "订单状态无效", nil)
		default:
			respondError(c, response.CodeInternal, "更新订单状态失败", err)
		}
		return
	}
	response.Success(c, order)
}
