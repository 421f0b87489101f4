package service

import (
	"github.com/shopadmin-next/internal/logger"
	"github.com/shopadmin-next/internal/models"
	"github.com/shopadmin-next/internal/repository"
)

// allowedTriggerTransitions 触发折扣状态机。
// used 为终态；表中未出现的流转（含原状态保持）一律拒绝。
var allowedTriggerTransitions = map[string]map[string]bool{
	models.TriggeredDiscountStatusPending: {
		models.TriggeredDiscountStatusContacted: true,
		models.TriggeredDiscountStatusUsed:      true,
	},
	models.TriggeredDiscountStatusContacted: {
		models.TriggeredDiscountStatusUsed: true,
	},
}

func isTriggerTransitionAllowed(current, target string) bool {
	nexts, ok := allowedTriggerTransitions[current]
	if !ok {
		return false
	}
	return nexts[target]
}

// TriggeredDiscountService 触发折扣生命周期服务
type TriggeredDiscountService struct {
	repo repository.TriggeredDiscountRepository
}

// NewTriggeredDiscountService 创建触发折扣服务
func NewTriggeredDiscountService(repo repository.TriggeredDiscountRepository) *TriggeredDiscountService {
	return &TriggeredDiscountService{repo: repo}
}

// List 获取触发折扣列表
func (s *TriggeredDiscountService) List(filter repository.TriggeredDiscountListFilter) ([]models.TriggeredDiscount, int64, error) {
	return s.repo.List(filter)
}

// Get 获取触发折扣详情
func (s *TriggeredDiscountService) Get(id uint) (*models.TriggeredDiscount, error) {
	td, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if td == nil {
		return nil, ErrTriggeredDiscountNotFound
	}
	return td, nil
}

// TransitionStatus 推进触发折扣状态。
// 更新以当前状态为条件原子执行，并发竞争中落败的一方视为
// 非法流转。
func (s *TriggeredDiscountService) TransitionStatus(id uint, target string) (*models.TriggeredDiscount, error) {
	switch target {
	case models.TriggeredDiscountStatusPending,
		models.TriggeredDiscountStatusContacted,
		models.TriggeredDiscountStatusUsed:
	default:
		return nil, ErrInvalidStatusTransition
	}

	td, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if td == nil {
		return nil, ErrTriggeredDiscountNotFound
	}

	if !isTriggerTransitionAllowed(td.Status, target) {
		return nil, ErrInvalidStatusTransition
	}

	affected, err := s.repo.UpdateStatusIf(id, td.Status, target)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		logger.Warnw("trigger_status_transition_lost_race",
			"triggered_discount_id", id,
			"from", td.Status,
			"to", target,
		)
		return nil, ErrInvalidStatusTransition
	}

	td.Status = target
	return td, nil
}
