package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"reef_backend/internal/domain"
	"reef_backend/internal/metrics"
	"reef_backend/internal/repository"
)

// покупка фондов. Единственный продукт: 4.5% в день на 45 дней, простые
// проценты, выплата считается один раз при покупке
type FundService struct {
	store repository.Store
	audit *AuditService
}

func NewFundService(store repository.Store, audit *AuditService) *FundService {
	return &FundService{store: store, audit: audit}
}

// Buy списывает amount и создает фонд, возвращает новый баланс и полный
// список фондов пользователя
func (s *FundService) Buy(ctx context.Context, userCode string, amount decimal.Decimal) (newBalance decimal.Decimal, funds []domain.Fund, err error) {
	if amount.LessThan(domain.MinFundAmount) {
		return decimal.Zero, nil, ErrValidation
	}

	var fund *domain.Fund

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

		now := time.Now()
		fund = &domain.Fund{
			UserCode:      userCode,
			Amount:        amount,
			DailyRate:     domain.FundDailyRate,
			DurationDays:  domain.FundDurationDays,
			StartAt:       now,
			EndAt:         now.AddDate(0, 0, domain.FundDurationDays),
			ExpectedTotal: domain.FundExpectedTotal(amount, domain.FundDailyRate, domain.FundDurationDays),
		}
		if err := tx.Funds().Create(ctx, fund); err != nil {
			return err
		}

		funds, err = tx.Funds().ListByUser(ctx, userCode)
		return err
	})
	if err != nil {
		return decimal.Zero, nil, err
	}

	metrics.FundsPurchased.Inc()
	s.audit.LogFundBuy(ctx, userCode, fund.ID, amount, fund.ExpectedTotal)
	return newBalance, funds, nil
}

// ListByUser возвращает фонды пользователя
func (s *FundService) ListByUser(ctx context.Context, userCode string) ([]domain.Fund, error) {
	return s.store.Funds().ListByUser(ctx, userCode)
}
