package worker

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/shopadmin-next/internal/logger"
	"github.com/shopadmin-next/internal/models"
	"github.com/shopadmin-next/internal/provider"
	"github.com/shopadmin-next/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskTriggerFollowup, c.handleTriggerFollowup)
	mux.HandleFunc(queue.TaskCustomerStatsRecalc, c.handleCustomerStatsRecalc)
}

// handleTriggerFollowup 处理触发折扣跟进任务。
//
// 当前的跟进动作是输出结构化日志供人工联系客户使用；记录已进入
// 终态或已被联系时直接跳过，不再重复提醒。
func (c *Consumer) handleTriggerFollowup(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_trigger_followup_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.TriggerFollowupPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_trigger_followup_unmarshal_failed", "error", err)
		return err
	}
	if payload.TriggeredDiscountID == 0 {
		logger.Debugw("worker_trigger_followup_skip_invalid_payload", "triggered_discount_id", payload.TriggeredDiscountID)
		return nil
	}
	td, err := c.TriggeredDiscountRepo.GetByID(payload.TriggeredDiscountID)
	if err != nil {
		logger.Warnw("worker_trigger_followup_fetch_failed", "triggered_discount_id", payload.TriggeredDiscountID, "error", err)
		return err
	}
	if td == nil {
		logger.Debugw("worker_trigger_followup_skip_not_found", "triggered_discount_id", payload.TriggeredDiscountID)
		return nil
	}
	if td.Status != models.TriggeredDiscountStatusPending {
		logger.Debugw("worker_trigger_followup_skip_not_pending",
			"triggered_discount_id", td.ID,
			"status", td.Status,
		)
		return nil
	}
	customer, err := c.CustomerRepo.GetByID(td.CustomerID)
	if err != nil {
		logger.Warnw("worker_trigger_followup_fetch_customer_failed",
			"triggered_discount_id", td.ID,
			"customer_id", td.CustomerID,
			"error", err,
		)
		return err
	}
	var customerEmail, customerName string
	if customer != nil {
		customerEmail = strings.TrimSpace(customer.Email)
		customerName = strings.TrimSpace(customer.Name)
	}
	logger.Infow("trigger_followup_ready",
		"triggered_discount_id", td.ID,
		"order_id", td.OrderID,
		"campaign_id", td.CampaignID,
		"coupon_code", td.CouponCode,
		"discount_amount", td.DiscountAmount.String(),
		"customer_id", td.CustomerID,
		"customer_email", customerEmail,
		"customer_name", customerName,
	)
	return nil
}

// handleCustomerStatsRecalc 处理客户累计统计对账任务
func (c *Consumer) handleCustomerStatsRecalc(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_customer_stats_recalc_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.CustomerStatsRecalcPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_customer_stats_recalc_unmarshal_failed", "error", err)
		return err
	}
	if payload.CustomerID == 0 {
		logger.Debugw("worker_customer_stats_recalc_skip_invalid_payload", "customer_id", payload.CustomerID)
		return nil
	}
	customer, err := c.CustomerRepo.GetByID(payload.CustomerID)
	if err != nil {
		logger.Warnw("worker_customer_stats_recalc_fetch_failed", "customer_id", payload.CustomerID, "error", err)
		return err
	}
	if customer == nil {
		logger.Debugw("worker_customer_stats_recalc_skip_not_found", "customer_id", payload.CustomerID)
		return nil
	}
	if err := c.CustomerRepo.RecalcOrderStats(payload.CustomerID); err != nil {
		logger.Warnw("worker_customer_stats_recalc_failed", "customer_id", payload.CustomerID, "error", err)
		return err
	}
	return nil
}
