package service

import (
	"context"

	"github.com/shopspring/decimal"

	"reef_backend/internal/domain"
	"reef_backend/internal/metrics"
	"reef_backend/internal/repository"
)

// жизненный цикл выводов. Сумма списывается в момент заявки и резервируется
// до решения админа: одобрение фиксирует списание, отклонение возвращает
type WithdrawalService struct {
	store repository.Store
	audit *AuditService
}

func NewWithdrawalService(store repository.Store, audit *AuditService) *WithdrawalService {
	return &WithdrawalService{store: store, audit: audit}
}

// Request создает заявку на вывод. Вся валидация - до каких-либо изменений,
// списание и создание заявки - одна транзакция
func (s *WithdrawalService) Request(ctx context.Context, userCode, network, address, note string, amount decimal.Decimal) (withdrawal *domain.Withdrawal, newBalance decimal.Decimal, err error) {
	if network == "" || address == "" {
		return nil, decimal.Zero, ErrValidation
	}
	if amount.LessThan(domain.MinWithdrawalAmount) {
		return nil, decimal.Zero, ErrValidation
	}

	err = s.store.WithTx(ctx, func(tx repository.Store) error {
		user, err := tx.Users().GetForUpdate(ctx, userCode)
		if err != nil {
			return err
		}
		if user == nil {
			return ErrUserNotFound
		}
		if user.WaterDrops.LessThan(amount) {
			return ErrInsufficientBalance
		}

		newBalance, err = tx.Users().AddBalance(ctx, userCode, domain.CurrencyWaterDrops, amount.Neg())
		if err != nil {
			return err
		}

		withdrawal = &domain.Withdrawal{
			UserCode: userCode,
			Network:  network,
			Address:  address,
			Amount:   amount,
			Note:     note,
			Status:   domain.WithdrawalStatusPending,
		}
		return tx.Withdrawals().Create(ctx, withdrawal)
	})
	if err != nil {
		return nil, decimal.Zero, err
	}

	metrics.WithdrawalsRequested.Inc()
	s.audit.LogWithdrawRequest(ctx, userCode, withdrawal.ID, amount)
	return withdrawal, newBalance, nil
}

// Approve финализирует вывод. Баланс не меняется - сумма уже списана
// при создании заявки
func (s *WithdrawalService) Approve(ctx context.Context, id int64) (*domain.Withdrawal, error) {
	var withdrawal *domain.Withdrawal

	err := s.store.WithTx(ctx, func(tx repository.Store) error {
		var err error
		withdrawal, err = tx.Withdrawals().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if withdrawal == nil {
			return ErrWithdrawalNotFound
		}

		ok, err := tx.Withdrawals().UpdateStatusFrom(ctx, id, domain.WithdrawalStatusPending, domain.WithdrawalStatusApproved)
		if err != nil {
			return err
		}
		if !ok {
			return ErrAlreadyProcessed
		}
		withdrawal.Status = domain.WithdrawalStatusApproved
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.WithdrawalsApproved.Inc()
	s.audit.LogWithdrawDecision(ctx, withdrawal.UserCode, domain.AuditActionWithdrawApprove, id)
	return withdrawal, nil
}

// Deny отклоняет вывод и в той же транзакции возвращает сумму на баланс.
// Повторное отклонение не удваивает возврат - смена статуса условная
func (s *WithdrawalService) Deny(ctx context.Context, id int64) (withdrawal *domain.Withdrawal, newBalance decimal.Decimal, err error) {
	err = s.store.WithTx(ctx, func(tx repository.Store) error {
		withdrawal, err = tx.Withdrawals().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if withdrawal == nil {
			return ErrWithdrawalNotFound
		}

		user, err := tx.Users().GetForUpdate(ctx, withdrawal.UserCode)
		if err != nil {
			return err
		}
		if user == nil {
			return ErrUserNotFound
		}

		ok, err := tx.Withdrawals().UpdateStatusFrom(ctx, id, domain.WithdrawalStatusPending, domain.WithdrawalStatusDenied)
		if err != nil {
			return err
		}
		if !ok {
			return ErrAlreadyProcessed
		}
		withdrawal.Status = domain.WithdrawalStatusDenied

		newBalance, err = tx.Users().AddBalance(ctx, withdrawal.UserCode, domain.CurrencyWaterDrops, withdrawal.Amount)
		return err
	})
	if err != nil {
		return nil, decimal.Zero, err
	}

	metrics.WithdrawalsDenied.Inc()
	s.audit.LogWithdrawDecision(ctx, withdrawal.UserCode, domain.AuditActionWithdrawDeny, id)
	return withdrawal, newBalance, nil
}

// ListByStatus возвращает выводы в указанном статусе (для админки)
func (s *WithdrawalService) ListByStatus(ctx context.Context, status domain.WithdrawalStatus, limit int) ([]domain.Withdrawal, error) {
	return s.store.Withdrawals().ListByStatus(ctx, status, limit)
}

// ListByUser возвращает выводы пользователя
func (s *WithdrawalService) ListByUser(ctx context.Context, userCode string, limit int) ([]domain.Withdrawal, error) {
	return s.store.Withdrawals().ListByUser(ctx, userCode, limit)
}
