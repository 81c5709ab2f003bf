package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"reef_backend/internal/domain"
)

func TestRequestWithdrawal_DebitsAtRequestTime(t *testing.T) {
	store := newStoreWithUser(t, "u1", 100, nil)
	svc := NewWithdrawalService(store, NewAuditService(store))

	w, balance, err := svc.Request(context.Background(), "u1", "TRC20", "addr", "", decimal.NewFromInt(40))
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if w.Status != domain.WithdrawalStatusPending {
		t.Fatalf("ожидался статус pending, получено %s", w.Status)
	}
	if !balance.Equal(decimal.NewFromInt(60)) {
		t.Fatalf("ожидался баланс 60, получено %s", balance)
	}
}

// валидация суммы отрабатывает до каких-либо изменений
func TestRequestWithdrawal_BelowMinimum(t *testing.T) {
	store := newStoreWithUser(t, "u1", 100, nil)
	svc := NewWithdrawalService(store, NewAuditService(store))

	_, _, err := svc.Request(context.Background(), "u1", "TRC20", "addr", "", decimal.NewFromFloat(19.99))
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("ожидалась ErrValidation, получено %v", err)
	}
	if got := waterDrops(t, store, "u1"); !got.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("баланс изменился при отказе: %s", got)
	}
	list, err := store.Withdrawals().ListByUser(context.Background(), "u1", 10)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("заявка не должна была создаться, получено %d", len(list))
	}
}

func TestRequestWithdrawal_EmptyNetworkOrAddress(t *testing.T) {
	store := newStoreWithUser(t, "u1", 100, nil)
	svc := NewWithdrawalService(store, NewAuditService(store))

	if _, _, err := svc.Request(context.Background(), "u1", "", "addr", "", decimal.NewFromInt(40)); !errors.Is(err, ErrValidation) {
		t.Fatalf("ожидалась ErrValidation при пустой сети, получено %v", err)
	}
	if _, _, err := svc.Request(context.Background(), "u1", "TRC20", "", "", decimal.NewFromInt(40)); !errors.Is(err, ErrValidation) {
		t.Fatalf("ожидалась ErrValidation при пустом адресе, получено %v", err)
	}
}

func TestRequestWithdrawal_InsufficientBalance(t *testing.T) {
	store := newStoreWithUser(t, "u1", 30, nil)
	svc := NewWithdrawalService(store, NewAuditService(store))

	_, _, err := svc.Request(context.Background(), "u1", "TRC20", "addr", "", decimal.NewFromInt(40))
	if !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("ожидалась ErrInsufficientBalance, получено %v", err)
	}
	if got := waterDrops(t, store, "u1"); !got.Equal(decimal.NewFromInt(30)) {
		t.Fatalf("баланс изменился при отказе: %s", got)
	}
}

func TestApproveWithdrawal_NoFurtherBalanceChange(t *testing.T) {
	store := newStoreWithUser(t, "u1", 100, nil)
	svc := NewWithdrawalService(store, NewAuditService(store))
	w, _, err := svc.Request(context.Background(), "u1", "TRC20", "addr", "", decimal.NewFromInt(40))
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}

	got, err := svc.Approve(context.Background(), w.ID)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if got.Status != domain.WithdrawalStatusApproved {
		t.Fatalf("ожидался статус approved, получено %s", got.Status)
	}
	// сумма уже была списана при заявке
	if b := waterDrops(t, store, "u1"); !b.Equal(decimal.NewFromInt(60)) {
		t.Fatalf("ожидался баланс 60, получено %s", b)
	}
}

func TestDenyWithdrawal_RefundsExactAmount(t *testing.T) {
	store := newStoreWithUser(t, "u1", 100, nil)
	svc := NewWithdrawalService(store, NewAuditService(store))
	w, _, err := svc.Request(context.Background(), "u1", "TRC20", "addr", "", decimal.NewFromFloat(33.75))
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}

	got, balance, err := svc.Deny(context.Background(), w.ID)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if got.Status != domain.WithdrawalStatusDenied {
		t.Fatalf("ожидался статус denied, получено %s", got.Status)
	}
	if !balance.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("возврат неточный, баланс %s", balance)
	}
}

func TestDenyWithdrawal_SecondDenyDoesNotRefundTwice(t *testing.T) {
	store := newStoreWithUser(t, "u1", 100, nil)
	svc := NewWithdrawalService(store, NewAuditService(store))
	w, _, err := svc.Request(context.Background(), "u1", "TRC20", "addr", "", decimal.NewFromInt(40))
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}

	if _, _, err := svc.Deny(context.Background(), w.ID); err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if _, _, err := svc.Deny(context.Background(), w.ID); !errors.Is(err, ErrAlreadyProcessed) {
		t.Fatalf("ожидалась ErrAlreadyProcessed, получено %v", err)
	}
	if got := waterDrops(t, store, "u1"); !got.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("возврат удвоился: %s", got)
	}
}

func TestApproveWithdrawal_AfterDenyRejected(t *testing.T) {
	store := newStoreWithUser(t, "u1", 100, nil)
	svc := NewWithdrawalService(store, NewAuditService(store))
	w, _, err := svc.Request(context.Background(), "u1", "TRC20", "addr", "", decimal.NewFromInt(40))
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}

	if _, _, err := svc.Deny(context.Background(), w.ID); err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if _, err := svc.Approve(context.Background(), w.ID); !errors.Is(err, ErrAlreadyProcessed) {
		t.Fatalf("ожидалась ErrAlreadyProcessed, получено %v", err)
	}
}

// две конкурентные заявки по 30 при балансе 50: проходит не больше одной,
// баланс никогда не уходит в минус
func TestRequestWithdrawal_ConcurrentRequests(t *testing.T) {
	store := newStoreWithUser(t, "u1", 50, nil)
	svc := NewWithdrawalService(store, NewAuditService(store))

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _, errs[i] = svc.Request(context.Background(), "u1", "TRC20", "addr", "", decimal.NewFromInt(30))
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else if !errors.Is(err, ErrInsufficientBalance) {
			t.Fatalf("неожиданная ошибка: %v", err)
		}
	}
	if succeeded != 1 {
		t.Fatalf("ожидалась ровно одна успешная заявка, получено %d", succeeded)
	}
	if got := waterDrops(t, store, "u1"); !got.Equal(decimal.NewFromInt(20)) {
		t.Fatalf("ожидался баланс 20, получено %s", got)
	}
	if waterDrops(t, store, "u1").IsNegative() {
		t.Fatal("баланс ушел в минус")
	}
}
