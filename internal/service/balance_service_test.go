package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"reef_backend/internal/domain"
	"reef_backend/internal/repository"
	"reef_backend/internal/repository/memory"
)

// создает хранилище в памяти с пользователем и нужным балансом капель
func newStoreWithUser(t *testing.T, code string, balance int64, referrerCode *string) repository.Store {
	t.Helper()
	store := memory.NewStore()

	if referrerCode != nil {
		ref := &domain.User{
			Code:       *referrerCode,
			Username:   "referrer",
			Password:   "pw",
			Role:       domain.RolePlayer,
			WaterDrops: decimal.Zero,
			Pearls:     decimal.Zero,
			Level:      1,
		}
		if err := store.Users().Create(context.Background(), ref); err != nil {
			t.Fatalf("не удалось создать пригласившего: %v", err)
		}
	}

	u := &domain.User{
		Code:         code,
		Username:     "user-" + code,
		Password:     "pw",
		Role:         domain.RolePlayer,
		WaterDrops:   decimal.NewFromInt(balance),
		Pearls:       decimal.Zero,
		Level:        1,
		ReferrerCode: referrerCode,
	}
	if err := store.Users().Create(context.Background(), u); err != nil {
		t.Fatalf("не удалось создать пользователя: %v", err)
	}
	return store
}

// текущий баланс капель пользователя
func waterDrops(t *testing.T, store repository.Store, code string) decimal.Decimal {
	t.Helper()
	u, err := store.Users().GetByCode(context.Background(), code)
	if err != nil || u == nil {
		t.Fatalf("пользователь %s не найден: %v", code, err)
	}
	return u.WaterDrops
}

func TestDebit_Success(t *testing.T) {
	store := newStoreWithUser(t, "u1", 100, nil)
	svc := NewBalanceService(store, NewAuditService(store))

	balance, err := svc.Debit(context.Background(), "u1", decimal.NewFromInt(40))
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if !balance.Equal(decimal.NewFromInt(60)) {
		t.Fatalf("ожидался баланс 60, получено %s", balance)
	}
}

func TestDebit_InsufficientBalanceLeavesBalanceUnchanged(t *testing.T) {
	store := newStoreWithUser(t, "u1", 30, nil)
	svc := NewBalanceService(store, NewAuditService(store))

	_, err := svc.Debit(context.Background(), "u1", decimal.NewFromInt(50))
	if !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("ожидалась ErrInsufficientBalance, получено %v", err)
	}
	if got := waterDrops(t, store, "u1"); !got.Equal(decimal.NewFromInt(30)) {
		t.Fatalf("баланс изменился при отказе: %s", got)
	}
}

func TestDebit_UnknownUser(t *testing.T) {
	store := memory.NewStore()
	svc := NewBalanceService(store, NewAuditService(store))

	_, err := svc.Debit(context.Background(), "nobody", decimal.NewFromInt(1))
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("ожидалась ErrUserNotFound, получено %v", err)
	}
}

func TestCredit_CreatesSyntheticRecharge(t *testing.T) {
	store := newStoreWithUser(t, "u1", 0, nil)
	svc := NewBalanceService(store, NewAuditService(store))

	balance, err := svc.Credit(context.Background(), "u1", decimal.NewFromInt(25), domain.CurrencyWaterDrops)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if !balance.Equal(decimal.NewFromInt(25)) {
		t.Fatalf("ожидался баланс 25, получено %s", balance)
	}

	recharges, err := store.Recharges().ListByStatus(context.Background(), domain.RechargeStatusAdminCredit, 10)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if len(recharges) != 1 {
		t.Fatalf("ожидалась одна синтетическая запись, получено %d", len(recharges))
	}
	if !recharges[0].Amount.Equal(decimal.NewFromInt(25)) {
		t.Fatalf("неверная сумма в записи: %s", recharges[0].Amount)
	}
}

func TestCredit_PearlsGoToPearlsBalance(t *testing.T) {
	store := newStoreWithUser(t, "u1", 10, nil)
	svc := NewBalanceService(store, NewAuditService(store))

	if _, err := svc.Credit(context.Background(), "u1", decimal.NewFromInt(5), domain.CurrencyPearls); err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}

	u, _ := store.Users().GetByCode(context.Background(), "u1")
	if !u.Pearls.Equal(decimal.NewFromInt(5)) {
		t.Fatalf("ожидалось 5 жемчуга, получено %s", u.Pearls)
	}
	if !u.WaterDrops.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("капли не должны меняться, получено %s", u.WaterDrops)
	}
}

func TestCredit_RejectsNonPositiveAmount(t *testing.T) {
	store := newStoreWithUser(t, "u1", 10, nil)
	svc := NewBalanceService(store, NewAuditService(store))

	if _, err := svc.Credit(context.Background(), "u1", decimal.Zero, domain.CurrencyWaterDrops); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("ожидалась ErrInvalidAmount, получено %v", err)
	}
}
