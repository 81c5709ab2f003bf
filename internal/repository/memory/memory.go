// Package memory - хранилище в памяти для тестов. Повторяет семантику
// постгресовой реализации: WithTx сериализуется одним мьютексом, при ошибке
// состояние откатывается к снимку, сделанному в начале транзакции
package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"reef_backend/internal/domain"
	"reef_backend/internal/repository"
)

var errNoRows = errors.New("строка не найдена")

type data struct {
	users       map[string]domain.User // по коду
	recharges   map[int64]domain.Recharge
	withdrawals map[int64]domain.Withdrawal
	funds       []domain.Fund
	referrals   []domain.Referral
	audits      []domain.AuditLog
	nextID      int64
}

func (d *data) clone() *data {
	cp := &data{
		users:       make(map[string]domain.User, len(d.users)),
		recharges:   make(map[int64]domain.Recharge, len(d.recharges)),
		withdrawals: make(map[int64]domain.Withdrawal, len(d.withdrawals)),
		funds:       append([]domain.Fund(nil), d.funds...),
		referrals:   append([]domain.Referral(nil), d.referrals...),
		audits:      append([]domain.AuditLog(nil), d.audits...),
		nextID:      d.nextID,
	}
	for k, v := range d.users {
		cp.users[k] = v
	}
	for k, v := range d.recharges {
		cp.recharges[k] = v
	}
	for k, v := range d.withdrawals {
		cp.withdrawals[k] = v
	}
	return cp
}

func (d *data) id() int64 {
	d.nextID++
	return d.nextID
}

type Store struct {
	mu   *sync.Mutex
	d    *data
	inTx bool
}

func NewStore() *Store {
	return &Store{
		mu: &sync.Mutex{},
		d: &data{
			users:       make(map[string]domain.User),
			recharges:   make(map[int64]domain.Recharge),
			withdrawals: make(map[int64]domain.Withdrawal),
		},
	}
}

func (s *Store) lock() {
	if !s.inTx {
		s.mu.Lock()
	}
}

func (s *Store) unlock() {
	if !s.inTx {
		s.mu.Unlock()
	}
}

func (s *Store) Users() repository.UserRepository             { return &memUsers{s} }
func (s *Store) Recharges() repository.RechargeRepository     { return &memRecharges{s} }
func (s *Store) Withdrawals() repository.WithdrawalRepository { return &memWithdrawals{s} }
func (s *Store) Funds() repository.FundRepository             { return &memFunds{s} }
func (s *Store) Referrals() repository.ReferralRepository     { return &memReferrals{s} }
func (s *Store) Audits() repository.AuditRepository           { return &memAudits{s} }

// WithTx держит мьютекс на все время fn и откатывает состояние при ошибке,
// что дает те же гарантии атомарности и "не больше одного победителя"
// при гонках, что и строчные блокировки в постгресе
func (s *Store) WithTx(ctx context.Context, fn func(repository.Store) error) error {
	if s.inTx {
		return fn(s)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.d.clone()
	if err := fn(&Store{mu: s.mu, d: s.d, inTx: true}); err != nil {
		*s.d = *snapshot
		return err
	}
	return nil
}

// --- пользователи ---

type memUsers struct{ s *Store }

func (r *memUsers) Create(ctx context.Context, u *domain.User) error {
	r.s.lock()
	defer r.s.unlock()

	u.ID = r.s.d.id()
	now := time.Now()
	u.LastAccess = now
	u.CreatedAt = now
	r.s.d.users[u.Code] = *u
	return nil
}

func (r *memUsers) GetByCode(ctx context.Context, code string) (*domain.User, error) {
	r.s.lock()
	defer r.s.unlock()

	u, ok := r.s.d.users[code]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *memUsers) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	r.s.lock()
	defer r.s.unlock()

	for _, u := range r.s.d.users {
		if u.Username == username {
			cp := u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUsers) GetForUpdate(ctx context.Context, code string) (*domain.User, error) {
	// мьютекс транзакции уже держит хранилище целиком
	return r.GetByCode(ctx, code)
}

func (r *memUsers) AddBalance(ctx context.Context, code string, currency domain.Currency, delta decimal.Decimal) (decimal.Decimal, error) {
	r.s.lock()
	defer r.s.unlock()

	u, ok := r.s.d.users[code]
	if !ok {
		return decimal.Zero, errNoRows
	}
	if currency == domain.CurrencyPearls {
		u.Pearls = u.Pearls.Add(delta)
		r.s.d.users[code] = u
		return u.Pearls, nil
	}
	u.WaterDrops = u.WaterDrops.Add(delta)
	r.s.d.users[code] = u
	return u.WaterDrops, nil
}

func (r *memUsers) TouchLastAccess(ctx context.Context, code string) error {
	r.s.lock()
	defer r.s.unlock()

	if u, ok := r.s.d.users[code]; ok {
		u.LastAccess = time.Now()
		r.s.d.users[code] = u
	}
	return nil
}

func (r *memUsers) SetSessionToken(ctx context.Context, code, token string) error {
	r.s.lock()
	defer r.s.unlock()

	if u, ok := r.s.d.users[code]; ok {
		u.SessionToken = &token
		r.s.d.users[code] = u
	}
	return nil
}

// --- пополнения ---

type memRecharges struct{ s *Store }

func (r *memRecharges) Create(ctx context.Context, rc *domain.Recharge) error {
	r.s.lock()
	defer r.s.unlock()

	rc.ID = r.s.d.id()
	rc.CreatedAt = time.Now()
	r.s.d.recharges[rc.ID] = *rc
	return nil
}

func (r *memRecharges) GetByID(ctx context.Context, id int64) (*domain.Recharge, error) {
	r.s.lock()
	defer r.s.unlock()

	rc, ok := r.s.d.recharges[id]
	if !ok {
		return nil, nil
	}
	return &rc, nil
}

func (r *memRecharges) UpdateStatusFrom(ctx context.Context, id int64, from, to domain.RechargeStatus) (bool, error) {
	r.s.lock()
	defer r.s.unlock()

	rc, ok := r.s.d.recharges[id]
	if !ok || rc.Status != from {
		return false, nil
	}
	rc.Status = to
	r.s.d.recharges[id] = rc
	return true, nil
}

func (r *memRecharges) ListByStatus(ctx context.Context, status domain.RechargeStatus, limit int) ([]domain.Recharge, error) {
	r.s.lock()
	defer r.s.unlock()

	var out []domain.Recharge
	for _, rc := range r.s.d.recharges {
		if rc.Status == status && len(out) < limit {
			out = append(out, rc)
		}
	}
	return out, nil
}

func (r *memRecharges) ListByUser(ctx context.Context, userCode string, limit int) ([]domain.Recharge, error) {
	r.s.lock()
	defer r.s.unlock()

	var out []domain.Recharge
	for _, rc := range r.s.d.recharges {
		if rc.UserCode == userCode && len(out) < limit {
			out = append(out, rc)
		}
	}
	return out, nil
}

// --- выводы ---

type memWithdrawals struct{ s *Store }

func (r *memWithdrawals) Create(ctx context.Context, w *domain.Withdrawal) error {
	r.s.lock()
	defer r.s.unlock()

	w.ID = r.s.d.id()
	w.CreatedAt = time.Now()
	r.s.d.withdrawals[w.ID] = *w
	return nil
}

func (r *memWithdrawals) GetByID(ctx context.Context, id int64) (*domain.Withdrawal, error) {
	r.s.lock()
	defer r.s.unlock()

	w, ok := r.s.d.withdrawals[id]
	if !ok {
		return nil, nil
	}
	return &w, nil
}

func (r *memWithdrawals) UpdateStatusFrom(ctx context.Context, id int64, from, to domain.WithdrawalStatus) (bool, error) {
	r.s.lock()
	defer r.s.unlock()

	w, ok := r.s.d.withdrawals[id]
	if !ok || w.Status != from {
		return false, nil
	}
	w.Status = to
	r.s.d.withdrawals[id] = w
	return true, nil
}

func (r *memWithdrawals) ListByStatus(ctx context.Context, status domain.WithdrawalStatus, limit int) ([]domain.Withdrawal, error) {
	r.s.lock()
	defer r.s.unlock()

	var out []domain.Withdrawal
	for _, w := range r.s.d.withdrawals {
		if w.Status == status && len(out) < limit {
			out = append(out, w)
		}
	}
	return out, nil
}

func (r *memWithdrawals) ListByUser(ctx context.Context, userCode string, limit int) ([]domain.Withdrawal, error) {
	r.s.lock()
	defer r.s.unlock()

	var out []domain.Withdrawal
	for _, w := range r.s.d.withdrawals {
		if w.UserCode == userCode && len(out) < limit {
			out = append(out, w)
		}
	}
	return out, nil
}

// --- фонды ---

type memFunds struct{ s *Store }

func (r *memFunds) Create(ctx context.Context, f *domain.Fund) error {
	r.s.lock()
	defer r.s.unlock()

	f.ID = r.s.d.id()
	f.CreatedAt = time.Now()
	r.s.d.funds = append(r.s.d.funds, *f)
	return nil
}

func (r *memFunds) ListByUser(ctx context.Context, userCode string) ([]domain.Fund, error) {
	r.s.lock()
	defer r.s.unlock()

	var out []domain.Fund
	for _, f := range r.s.d.funds {
		if f.UserCode == userCode {
			out = append(out, f)
		}
	}
	return out, nil
}

// --- рефералы ---

type memReferrals struct{ s *Store }

func (r *memReferrals) Create(ctx context.Context, ref *domain.Referral) error {
	r.s.lock()
	defer r.s.unlock()

	ref.ID = r.s.d.id()
	ref.CreatedAt = time.Now()
	r.s.d.referrals = append(r.s.d.referrals, *ref)
	return nil
}

func (r *memReferrals) ListByReferrer(ctx context.Context, referrerCode string, limit int) ([]domain.Referral, error) {
	r.s.lock()
	defer r.s.unlock()

	var out []domain.Referral
	for _, ref := range r.s.d.referrals {
		if ref.ReferrerCode == referrerCode && len(out) < limit {
			out = append(out, ref)
		}
	}
	return out, nil
}

// --- аудит ---

type memAudits struct{ s *Store }

func (r *memAudits) Create(ctx context.Context, l *domain.AuditLog) error {
	r.s.lock()
	defer r.s.unlock()

	l.ID = r.s.d.id()
	l.CreatedAt = time.Now()
	r.s.d.audits = append(r.s.d.audits, *l)
	return nil
}

func (r *memAudits) ListByUser(ctx context.Context, userCode string, limit int) ([]*domain.AuditLog, error) {
	r.s.lock()
	defer r.s.unlock()

	var out []*domain.AuditLog
	for i := range r.s.d.audits {
		if r.s.d.audits[i].UserCode == userCode && len(out) < limit {
			l := r.s.d.audits[i]
			out = append(out, &l)
		}
	}
	return out, nil
}
