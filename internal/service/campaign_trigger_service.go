package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/shopadmin-next/internal/config"
	"github.com/shopadmin-next/internal/constants"
	"github.com/shopadmin-next/internal/logger"
	"github.com/shopadmin-next/internal/models"
	"github.com/shopadmin-next/internal/queue"
	"github.com/shopadmin-next/internal/repository"

	"github.com/shopspring/decimal"
)

// CampaignTriggerService 营销活动触发评估引擎
//
// 对新建订单评估所有有效活动：条件达标的活动各产生一条触发折扣
// 记录，带唯一兑换码，初始状态 pending。同一 (订单, 活动) 至多
// 一条记录，由存储层唯一约束保证，重复评估返回已有记录。
type CampaignTriggerService struct {
	cfg          *config.Config
	campaignRepo repository.CampaignRepository
	orderRepo    repository.OrderRepository
	triggerRepo  repository.TriggeredDiscountRepository
	queueClient  *queue.Client
}

// NewCampaignTriggerService 创建触发评估服务
func NewCampaignTriggerService(
	cfg *config.Config,
	campaignRepo repository.CampaignRepository,
	orderRepo repository.OrderRepository,
	triggerRepo repository.TriggeredDiscountRepository,
	queueClient *queue.Client,
) *CampaignTriggerService {
	return &CampaignTriggerService{
		cfg:          cfg,
		campaignRepo: campaignRepo,
		orderRepo:    orderRepo,
		triggerRepo:  triggerRepo,
		queueClient:  queueClient,
	}
}

// TriggerResult 单个活动的触发结果
type TriggerResult struct {
	TriggeredDiscount *models.TriggeredDiscount `json:"triggered_discount"`
	AlreadyExisted    bool                      `json:"already_existed"`
}

// TriggerFailure 单个活动的触发失败记录
type TriggerFailure struct {
	CampaignID uint   `json:"campaign_id"`
	Message    string `json:"message"`
	Err        error  `json:"-"`
}

func newTriggerFailure(campaignID uint, err error) TriggerFailure {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	return TriggerFailure{CampaignID: campaignID, Message: msg, Err: err}
}

// EvaluateOrder 对订单评估所有有效活动。
// 单个活动的失败不影响其他活动；返回的 error 仅代表整单评估
// 无法进行（订单不存在或活动列表读取失败）。
func (s *CampaignTriggerService) EvaluateOrder(orderID uint) ([]TriggerResult, []TriggerFailure, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, nil, err
	}
	if order == nil {
		return nil, nil, ErrOrderNotFound
	}

	campaigns, err := s.campaignRepo.ListEligible(time.Now())
	if err != nil {
		return nil, nil, err
	}

	results := make([]TriggerResult, 0, len(campaigns))
	failures := make([]TriggerFailure, 0)
	for i := range campaigns {
		campaign := &campaigns[i]
		if !conditionMatched(order, campaign) {
			continue
		}
		amount := calculateDiscount(order.Subtotal, campaign)

		td, existed, err := s.recordTrigger(order, campaign, amount)
		if err != nil {
			logger.Errorw("campaign_trigger_record_failed",
				"order_id", order.ID,
				"campaign_id", campaign.ID,
				"error", err,
			)
			failures = append(failures, newTriggerFailure(campaign.ID, err))
			continue
		}
		results = append(results, TriggerResult{TriggeredDiscount: td, AlreadyExisted: existed})

		if !existed {
			logger.Infow("campaign_triggered",
				"order_id", order.ID,
				"campaign_id", campaign.ID,
				"coupon_code", td.CouponCode,
				"discount_amount", td.DiscountAmount.String(),
			)
			s.enqueueFollowup(td)
		}
	}
	return results, failures, nil
}

// conditionMatched 判断订单是否满足活动触发条件（阈值含等于）。
func conditionMatched(order *models.Order, campaign *models.Campaign) bool {
	switch campaign.ConditionType {
	case models.CampaignConditionQuantity:
		var quantity int64
		for _, item := range order.Items {
			quantity += int64(item.Quantity)
		}
		return decimal.NewFromInt(quantity).GreaterThanOrEqual(campaign.ConditionValue.Decimal)
	case models.CampaignConditionAmount:
		return order.Subtotal.Decimal.GreaterThanOrEqual(campaign.ConditionValue.Decimal)
	default:
		return false
	}
}

// calculateDiscount 计算折扣金额。
// 百分比折扣按小计乘以比例；固定折扣不超过订单小计。
func calculateDiscount(subtotal models.Money, campaign *models.Campaign) models.Money {
	switch campaign.DiscountType {
	case models.CampaignDiscountPercentage:
		percent := campaign.DiscountValue.Decimal.Div(decimal.NewFromInt(100))
		return models.NewMoneyFromDecimal(subtotal.Decimal.Mul(percent))
	default:
		if campaign.DiscountValue.Decimal.GreaterThan(subtotal.Decimal) {
			return subtotal
		}
		return campaign.DiscountValue
	}
}

// recordTrigger 落库一条触发折扣记录。
// 唯一索引冲突分两类处理：(订单, 活动) 已存在则返回已有记录；
// 兑换码撞码则重新生成，次数受配置约束。其余错误按瞬时故障
// 做有限次指数退避重试。
func (s *CampaignTriggerService) recordTrigger(order *models.Order, campaign *models.Campaign, amount models.Money) (*models.TriggeredDiscount, bool, error) {
	existing, err := s.triggerRepo.GetByOrderAndCampaign(order.ID, campaign.ID)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, true, nil
	}

	codeAttempts := s.cfg.Campaign.CodeMaxAttempts
	if codeAttempts <= 0 {
		codeAttempts = 5
	}
	writeAttempts := s.cfg.Campaign.WriteMaxAttempts
	if writeAttempts <= 0 {
		writeAttempts = 3
	}
	backoff := time.Duration(s.cfg.Campaign.WriteBackoffMS) * time.Millisecond
	if backoff <= 0 {
		backoff = 50 * time.Millisecond
	}

	now := time.Now()
	for codeTry := 0; codeTry < codeAttempts; codeTry++ {
		code := generateCouponCode(campaign.CouponPrefix)

		var lastErr error
		collision := false
		for attempt := 0; attempt < writeAttempts; attempt++ {
			td := &models.TriggeredDiscount{
				CustomerID:     order.CustomerID,
				CampaignID:     campaign.ID,
				OrderID:        order.ID,
				CouponCode:     code,
				DiscountAmount: amount,
				Status:         models.TriggeredDiscountStatusPending,
				TriggeredAt:    now,
			}
			createErr := s.triggerRepo.Create(td)
			if createErr == nil {
				return td, false, nil
			}
			lastErr = createErr

			// 冲突分类：并发写入同单同活动，或兑换码撞码
			existing, getErr := s.triggerRepo.GetByOrderAndCampaign(order.ID, campaign.ID)
			if getErr == nil && existing != nil {
				return existing, true, nil
			}
			taken, codeErr := s.triggerRepo.ExistsByCouponCode(code)
			if codeErr == nil && taken {
				collision = true
				break
			}

			time.Sleep(backoff << attempt)
		}
		if collision {
			logger.Warnw("coupon_code_collision",
				"campaign_id", campaign.ID,
				"order_id", order.ID,
				"code", code,
			)
			continue
		}
		return nil, false, lastErr
	}
	return nil, false, ErrCouponCodeExhausted
}

func (s *CampaignTriggerService) enqueueFollowup(td *models.TriggeredDiscount) {
	if s.queueClient == nil {
		return
	}
	if err := s.queueClient.EnqueueTriggerFollowup(td.ID); err != nil {
		logger.Warnw("trigger_followup_enqueue_failed",
			"triggered_discount_id", td.ID,
			"error", err,
		)
	}
}

// generateCouponCode 生成兑换码：前缀 + 时间分量 + 随机分量。
// 唯一性最终由存储层唯一索引保证。
func generateCouponCode(prefix string) string {
	prefix = strings.ToUpper(strings.TrimSpace(prefix))
	if prefix == "" {
		prefix = constants.CouponPrefixDefault
	}
	timePart := strings.ToUpper(strconv.FormatInt(time.Now().UnixNano(), 36))
	return fmt.Sprintf("%s-%s%s", prefix, timePart, randBase36(4))
}

const base36Chars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

func randBase36(length int) string {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(base36Chars))))
		if err != nil {
			b.WriteByte('0')
			continue
		}
		b.WriteByte(base36Chars[n.Int64()])
	}
	return b.String()
}
