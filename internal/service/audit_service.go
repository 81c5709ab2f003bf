package service

import (
	"context"

	"github.com/shopspring/decimal"

	"reef_backend/internal/domain"
	"reef_backend/internal/logger"
	"reef_backend/internal/repository"
)

// пишет журнал аудита финансовых действий, ошибки записи не роняют операцию
type AuditService struct {
	store repository.Store
}

func NewAuditService(store repository.Store) *AuditService {
	return &AuditService{store: store}
}

// создает запись в журнале аудита
func (s *AuditService) Log(ctx context.Context, userCode, action, category string, details map[string]interface{}) {
	l := &domain.AuditLog{
		UserCode: userCode,
		Action:   action,
		Category: category,
		Details:  details,
	}

	if err := s.store.Audits().Create(ctx, l); err != nil {
		logger.Error("не удалось создать запись аудита", "error", err, "action", action, "user_code", userCode)
	}
}

// логирует одобрение пополнения
func (s *AuditService) LogRechargeApprove(ctx context.Context, userCode string, rechargeID int64, credited decimal.Decimal) {
	s.Log(ctx, userCode, domain.AuditActionRechargeApprove, domain.AuditCategoryRecharge, map[string]interface{}{
		"recharge_id": rechargeID,
		"credited":    credited.String(),
	})
}

// логирует отклонение пополнения
func (s *AuditService) LogRechargeDeny(ctx context.Context, userCode string, rechargeID int64) {
	s.Log(ctx, userCode, domain.AuditActionRechargeDeny, domain.AuditCategoryRecharge, map[string]interface{}{
		"recharge_id": rechargeID,
	})
}

// логирует реферальный бонус
func (s *AuditService) LogReferralBonus(ctx context.Context, referrerCode, referredCode string, earned decimal.Decimal) {
	s.Log(ctx, referrerCode, domain.AuditActionReferralBonus, domain.AuditCategoryBalance, map[string]interface{}{
		"referred_code": referredCode,
		"earned":        earned.String(),
	})
}

// логирует заявку на вывод
func (s *AuditService) LogWithdrawRequest(ctx context.Context, userCode string, withdrawalID int64, amount decimal.Decimal) {
	s.Log(ctx, userCode, domain.AuditActionWithdrawRequest, domain.AuditCategoryWithdrawal, map[string]interface{}{
		"withdrawal_id": withdrawalID,
		"amount":        amount.String(),
	})
}

// логирует решение по выводу
func (s *AuditService) LogWithdrawDecision(ctx context.Context, userCode, action string, withdrawalID int64) {
	s.Log(ctx, userCode, action, domain.AuditCategoryWithdrawal, map[string]interface{}{
		"withdrawal_id": withdrawalID,
	})
}

// логирует покупку фонда
func (s *AuditService) LogFundBuy(ctx context.Context, userCode string, fundID int64, amount, expectedTotal decimal.Decimal) {
	s.Log(ctx, userCode, domain.AuditActionFundBuy, domain.AuditCategoryFund, map[string]interface{}{
		"fund_id":        fundID,
		"amount":         amount.String(),
		"expected_total": expectedTotal.String(),
	})
}

// логирует прямое начисление админом
func (s *AuditService) LogAdminCredit(ctx context.Context, userCode string, amount decimal.Decimal, currency domain.Currency) {
	action := domain.AuditActionAdminCredit
	if currency == domain.CurrencyPearls {
		action = domain.AuditActionAdminCreditPearls
	}
	s.Log(ctx, userCode, action, domain.AuditCategoryAdmin, map[string]interface{}{
		"amount":   amount.String(),
		"currency": string(currency),
	})
}
