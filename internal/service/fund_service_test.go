package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"reef_backend/internal/domain"
)

func TestBuyFund_Success(t *testing.T) {
	store := newStoreWithUser(t, "u1", 150, nil)
	svc := NewFundService(store, NewAuditService(store))

	balance, funds, err := svc.Buy(context.Background(), "u1", decimal.NewFromInt(100))
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if !balance.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("ожидался баланс 50, получено %s", balance)
	}
	if len(funds) != 1 {
		t.Fatalf("ожидался один фонд, получено %d", len(funds))
	}

	f := funds[0]
	// 100 * 4.5% * 45 дней = 202.50
	if !f.ExpectedTotal.Equal(decimal.NewFromFloat(202.5)) {
		t.Fatalf("ожидалась выплата 202.50, получено %s", f.ExpectedTotal)
	}
	if f.DurationDays != domain.FundDurationDays {
		t.Fatalf("неверный срок: %d", f.DurationDays)
	}
	if !f.DailyRate.Equal(domain.FundDailyRate) {
		t.Fatalf("неверная ставка: %s", f.DailyRate)
	}
	if !f.EndAt.Equal(f.StartAt.AddDate(0, 0, domain.FundDurationDays)) {
		t.Fatalf("дата окончания не совпадает со сроком: %s", f.EndAt)
	}
}

func TestBuyFund_BelowMinimum(t *testing.T) {
	store := newStoreWithUser(t, "u1", 150, nil)
	svc := NewFundService(store, NewAuditService(store))

	_, _, err := svc.Buy(context.Background(), "u1", decimal.NewFromFloat(14.99))
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("ожидалась ErrValidation, получено %v", err)
	}
	if got := waterDrops(t, store, "u1"); !got.Equal(decimal.NewFromInt(150)) {
		t.Fatalf("баланс изменился при отказе: %s", got)
	}
}

func TestBuyFund_InsufficientBalance(t *testing.T) {
	store := newStoreWithUser(t, "u1", 50, nil)
	svc := NewFundService(store, NewAuditService(store))

	_, _, err := svc.Buy(context.Background(), "u1", decimal.NewFromInt(100))
	if !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("ожидалась ErrInsufficientBalance, получено %v", err)
	}
	if got := waterDrops(t, store, "u1"); !got.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("баланс изменился при отказе: %s", got)
	}
	funds, err := store.Funds().ListByUser(context.Background(), "u1")
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if len(funds) != 0 {
		t.Fatalf("фонд не должен был создаться, получено %d", len(funds))
	}
}

func TestBuyFund_ExactMinimumAllowed(t *testing.T) {
	store := newStoreWithUser(t, "u1", 15, nil)
	svc := NewFundService(store, NewAuditService(store))

	balance, funds, err := svc.Buy(context.Background(), "u1", decimal.NewFromInt(15))
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if !balance.IsZero() {
		t.Fatalf("ожидался нулевой баланс, получено %s", balance)
	}
	if len(funds) != 1 {
		t.Fatalf("ожидался один фонд, получено %d", len(funds))
	}
}
