package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// querier - общий срез pgxpool.Pool и pgx.Tx, репозитории работают
// одинаково и с пулом, и внутри транзакции
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PgStore - постгресовая реализация Store
type PgStore struct {
	pool *pgxpool.Pool // nil внутри транзакции
	q    querier
}

func NewPgStore(pool *pgxpool.Pool) *PgStore {
	return &PgStore{pool: pool, q: pool}
}

func (s *PgStore) Users() UserRepository             { return &pgUsers{q: s.q} }
func (s *PgStore) Recharges() RechargeRepository     { return &pgRecharges{q: s.q} }
func (s *PgStore) Withdrawals() WithdrawalRepository { return &pgWithdrawals{q: s.q} }
func (s *PgStore) Funds() FundRepository             { return &pgFunds{q: s.q} }
func (s *PgStore) Referrals() ReferralRepository     { return &pgReferrals{q: s.q} }
func (s *PgStore) Audits() AuditRepository           { return &pgAudits{q: s.q} }

// WithTx открывает транзакцию и передает fn Store, работающий внутри нее.
// Коммит только при nil от fn, иначе откат. Вложенный вызов просто
// продолжает текущую транзакцию
func (s *PgStore) WithTx(ctx context.Context, fn func(Store) error) error {
	if s.pool == nil {
		return fn(s)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(&PgStore{q: tx}); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
