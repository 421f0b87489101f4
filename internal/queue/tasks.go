package queue

import (
	"encoding/json"

	"github.com/shopadmin-next/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskTriggerFollowup 触发折扣跟进任务
	TaskTriggerFollowup = constants.TaskTriggerFollowup
	// TaskCustomerStatsRecalc 客户累计统计对账任务
	TaskCustomerStatsRecalc = constants.TaskCustomerStatsFix
)

// TriggerFollowupPayload 触发折扣跟进任务载荷
type TriggerFollowupPayload struct {
	TriggeredDiscountID uint `json:"triggered_discount_id"`
}

// CustomerStatsRecalcPayload 客户统计对账任务载荷
type CustomerStatsRecalcPayload struct {
	CustomerID uint `json:"customer_id"`
}

// NewTriggerFollowupTask 创建触发折扣跟进任务
func NewTriggerFollowupTask(payload TriggerFollowupPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTriggerFollowup, body), nil
}

// NewCustomerStatsRecalcTask 创建客户统计对账任务
func NewCustomerStatsRecalcTask(payload CustomerStatsRecalcPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskCustomerStatsRecalc, body), nil
}
