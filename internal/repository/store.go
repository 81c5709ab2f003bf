package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"reef_backend/internal/domain"
)

// Store - единица доступа к хранилищу. WithTx выполняет fn в одной транзакции:
// либо применяются все эффекты, либо никакие. Репозитории, полученные из
// переданного в fn Store, работают внутри этой транзакции
type Store interface {
	Users() UserRepository
	Recharges() RechargeRepository
	Withdrawals() WithdrawalRepository
	Funds() FundRepository
	Referrals() ReferralRepository
	Audits() AuditRepository

	WithTx(ctx context.Context, fn func(Store) error) error
}

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByCode(ctx context.Context, code string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	// GetForUpdate блокирует строку пользователя до конца транзакции,
	// вызывать только внутри WithTx
	GetForUpdate(ctx context.Context, code string) (*domain.User, error)
	// AddBalance прибавляет delta (может быть отрицательной) и возвращает новый баланс
	AddBalance(ctx context.Context, code string, currency domain.Currency, delta decimal.Decimal) (decimal.Decimal, error)
	TouchLastAccess(ctx context.Context, code string) error
	SetSessionToken(ctx context.Context, code, token string) error
}

type RechargeRepository interface {
	Create(ctx context.Context, r *domain.Recharge) error
	GetByID(ctx context.Context, id int64) (*domain.Recharge, error)
	// UpdateStatusFrom меняет статус только если текущий равен from,
	// возвращает false если строка не в ожидаемом статусе
	UpdateStatusFrom(ctx context.Context, id int64, from, to domain.RechargeStatus) (bool, error)
	ListByStatus(ctx context.Context, status domain.RechargeStatus, limit int) ([]domain.Recharge, error)
	ListByUser(ctx context.Context, userCode string, limit int) ([]domain.Recharge, error)
}

type WithdrawalRepository interface {
	Create(ctx context.Context, w *domain.Withdrawal) error
	GetByID(ctx context.Context, id int64) (*domain.Withdrawal, error)
	UpdateStatusFrom(ctx context.Context, id int64, from, to domain.WithdrawalStatus) (bool, error)
	ListByStatus(ctx context.Context, status domain.WithdrawalStatus, limit int) ([]domain.Withdrawal, error)
	ListByUser(ctx context.Context, userCode string, limit int) ([]domain.Withdrawal, error)
}

type FundRepository interface {
	Create(ctx context.Context, f *domain.Fund) error
	ListByUser(ctx context.Context, userCode string) ([]domain.Fund, error)
}

type ReferralRepository interface {
	Create(ctx context.Context, r *domain.Referral) error
	ListByReferrer(ctx context.Context, referrerCode string, limit int) ([]domain.Referral, error)
}

type AuditRepository interface {
	Create(ctx context.Context, l *domain.AuditLog) error
	ListByUser(ctx context.Context, userCode string, limit int) ([]*domain.AuditLog, error)
}
