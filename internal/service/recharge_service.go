package service

import (
	"context"

	"github.com/shopspring/decimal"

	"reef_backend/internal/domain"
	"reef_backend/internal/metrics"
	"reef_backend/internal/repository"
)

// жизненный цикл пополнений: создание заявки, одобрение с начислением и
// реферальным бонусом, отклонение
type RechargeService struct {
	store repository.Store
	audit *AuditService
}

func NewRechargeService(store repository.Store, audit *AuditService) *RechargeService {
	return &RechargeService{store: store, audit: audit}
}

// Create регистрирует заявку пользователя на пополнение, баланс не трогается
// до решения админа
func (s *RechargeService) Create(ctx context.Context, userCode, item, network, address, receipt string, amount decimal.Decimal) (*domain.Recharge, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	user, err := s.store.Users().GetByCode(ctx, userCode)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	recharge := &domain.Recharge{
		UserCode: userCode,
		Item:     item,
		Network:  network,
		Address:  address,
		Amount:   amount,
		Receipt:  receipt,
		Status:   domain.RechargeStatusPending,
	}
	if err := s.store.Recharges().Create(ctx, recharge); err != nil {
		return nil, err
	}

	s.audit.Log(ctx, userCode, domain.AuditActionRechargeCreate, domain.AuditCategoryRecharge, map[string]interface{}{
		"recharge_id": recharge.ID,
		"amount":      amount.String(),
	})
	return recharge, nil
}

// Approve одобряет пополнение. В одной транзакции: статус -> approved,
// начисление creditAmount капель владельцу, и если у владельца есть
// пригласивший - бонус 15% от creditAmount плюс запись в журнал рефералов.
// creditAmount задается админом и намеренно не сверяется с запрошенной суммой.
// Повторное одобрение отбивается условным UPDATE по статусу
func (s *RechargeService) Approve(ctx context.Context, rechargeID int64, creditAmount decimal.Decimal) (user *domain.User, recharge *domain.Recharge, err error) {
	if !creditAmount.IsPositive() {
		return nil, nil, ErrInvalidAmount
	}

	var referrerCode string
	var bonus decimal.Decimal

	err = s.store.WithTx(ctx, func(tx repository.Store) error {
		recharge, err = tx.Recharges().GetByID(ctx, rechargeID)
		if err != nil {
			return err
		}
		if recharge == nil {
			return ErrRechargeNotFound
		}

		owner, err := tx.Users().GetForUpdate(ctx, recharge.UserCode)
		if err != nil {
			return err
		}
		if owner == nil {
			return ErrUserNotFound
		}

		ok, err := tx.Recharges().UpdateStatusFrom(ctx, rechargeID, domain.RechargeStatusPending, domain.RechargeStatusApproved)
		if err != nil {
			return err
		}
		if !ok {
			return ErrAlreadyProcessed
		}
		recharge.Status = domain.RechargeStatusApproved

		newBalance, err := tx.Users().AddBalance(ctx, owner.Code, domain.CurrencyWaterDrops, creditAmount)
		if err != nil {
			return err
		}
		owner.WaterDrops = newBalance
		user = owner

		// бонус пригласившему, если он есть
		if owner.ReferrerCode != nil {
			referrerCode = *owner.ReferrerCode
			bonus = domain.ReferralBonus(creditAmount)

			if _, err := tx.Users().AddBalance(ctx, referrerCode, domain.CurrencyWaterDrops, bonus); err != nil {
				return err
			}
			if err := tx.Referrals().Create(ctx, &domain.Referral{
				ReferrerCode:     referrerCode,
				ReferredCode:     owner.Code,
				ReferredUsername: owner.Username,
				Earned:           bonus,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	metrics.RechargesApproved.Inc()
	s.audit.LogRechargeApprove(ctx, recharge.UserCode, rechargeID, creditAmount)
	if referrerCode != "" {
		s.audit.LogReferralBonus(ctx, referrerCode, recharge.UserCode, bonus)
	}
	return user, recharge, nil
}

// Deny отклоняет пополнение, баланс не меняется - средства под пополнение
// заранее не резервировались
func (s *RechargeService) Deny(ctx context.Context, rechargeID int64) (*domain.Recharge, error) {
	var recharge *domain.Recharge

	err := s.store.WithTx(ctx, func(tx repository.Store) error {
		var err error
		recharge, err = tx.Recharges().GetByID(ctx, rechargeID)
		if err != nil {
			return err
		}
		if recharge == nil {
			return ErrRechargeNotFound
		}

		ok, err := tx.Recharges().UpdateStatusFrom(ctx, rechargeID, domain.RechargeStatusPending, domain.RechargeStatusDenied)
		if err != nil {
			return err
		}
		if !ok {
			return ErrAlreadyProcessed
		}
		recharge.Status = domain.RechargeStatusDenied
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.RechargesDenied.Inc()
	s.audit.LogRechargeDeny(ctx, recharge.UserCode, rechargeID)
	return recharge, nil
}

// ListByStatus возвращает пополнения в указанном статусе (для админки)
func (s *RechargeService) ListByStatus(ctx context.Context, status domain.RechargeStatus, limit int) ([]domain.Recharge, error) {
	return s.store.Recharges().ListByStatus(ctx, status, limit)
}

// ListByUser возвращает пополнения пользователя
func (s *RechargeService) ListByUser(ctx context.Context, userCode string, limit int) ([]domain.Recharge, error) {
	return s.store.Recharges().ListByUser(ctx, userCode, limit)
}
