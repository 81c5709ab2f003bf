package service

import (
	"context"

	"github.com/shopspring/decimal"

	"reef_backend/internal/domain"
	"reef_backend/internal/metrics"
	"reef_backend/internal/repository"
)

// обрабатывает прямые операции с балансом. Все изменения выполняются внутри
// одной транзакции с блокировкой строки пользователя перед чтением баланса
type BalanceService struct {
	store repository.Store
	audit *AuditService
}

func NewBalanceService(store repository.Store, audit *AuditService) *BalanceService {
	return &BalanceService{store: store, audit: audit}
}

// Credit начисляет amount на баланс пользователя в указанной валюте и
// создает синтетическую запись пополнения со статусом admin_credit
func (s *BalanceService) Credit(ctx context.Context, userCode string, amount decimal.Decimal, currency domain.Currency) (newBalance decimal.Decimal, err error) {
	if !amount.IsPositive() {
		return decimal.Zero, ErrInvalidAmount
	}

	status := domain.RechargeStatusAdminCredit
	if currency == domain.CurrencyPearls {
		status = domain.RechargeStatusAdminCreditPearls
	}

	err = s.store.WithTx(ctx, func(tx repository.Store) error {
		user, err := tx.Users().GetForUpdate(ctx, userCode)
		if err != nil {
			return err
		}
		if user == nil {
			return ErrUserNotFound
		}

		newBalance, err = tx.Users().AddBalance(ctx, userCode, currency, amount)
		if err != nil {
			return err
		}

		// след начисления в журнале пополнений
		return tx.Recharges().Create(ctx, &domain.Recharge{
			UserCode: userCode,
			Item:     "admin",
			Amount:   amount,
			Status:   status,
		})
	})
	if err != nil {
		return decimal.Zero, err
	}

	metrics.AdminCredits.Inc()
	s.audit.LogAdminCredit(ctx, userCode, amount, currency)
	return newBalance, nil
}

// Debit списывает amount с баланса капель. Недостаток средств определяется
// под блокировкой, баланс никогда не уходит в минус
func (s *BalanceService) Debit(ctx context.Context, userCode string, amount decimal.Decimal) (newBalance decimal.Decimal, err error) {
	if !amount.IsPositive() {
		return decimal.Zero, ErrInvalidAmount
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
		return err
	})
	if err != nil {
		return decimal.Zero, err
	}

	return newBalance, nil
}
