package repository

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"reef_backend/internal/domain"
)

type pgUsers struct {
	q querier
}

const userColumns = `id, code, username, email, password, role, water_drops, pearls,
	level, last_access, reef_items, referrer_code, session_token, created_at`

// создает пользователя
func (r *pgUsers) Create(ctx context.Context, u *domain.User) error {
	itemsJSON, err := json.Marshal(u.ReefItems)
	if err != nil {
		itemsJSON = []byte("{}")
	}

	return r.q.QueryRow(ctx, `
		INSERT INTO users (code, username, email, password, role, water_drops, pearls, level, reef_items, referrer_code)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, last_access, created_at
	`, u.Code, u.Username, u.Email, u.Password, u.Role, u.WaterDrops, u.Pearls, u.Level, itemsJSON, u.ReferrerCode).
		Scan(&u.ID, &u.LastAccess, &u.CreatedAt)
}

// получает пользователя по коду
func (r *pgUsers) GetByCode(ctx context.Context, code string) (*domain.User, error) {
	row := r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE code = $1`, code)
	return scanUser(row)
}

// получает пользователя по имени
func (r *pgUsers) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	row := r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
	return scanUser(row)
}

// блокирует строку пользователя до конца транзакции и возвращает ее
func (r *pgUsers) GetForUpdate(ctx context.Context, code string) (*domain.User, error) {
	row := r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE code = $1 FOR UPDATE`, code)
	return scanUser(row)
}

// прибавляет delta к балансу и возвращает новое значение
func (r *pgUsers) AddBalance(ctx context.Context, code string, currency domain.Currency, delta decimal.Decimal) (decimal.Decimal, error) {
	column := "water_drops"
	if currency == domain.CurrencyPearls {
		column = "pearls"
	}

	var balance decimal.Decimal
	err := r.q.QueryRow(ctx,
		`UPDATE users SET `+column+` = `+column+` + $1 WHERE code = $2 RETURNING `+column,
		delta, code,
	).Scan(&balance)
	if err != nil {
		if err == pgx.ErrNoRows {
			return decimal.Zero, pgx.ErrNoRows
		}
		return decimal.Zero, err
	}
	return balance, nil
}

// обновляет отметку последнего обращения
func (r *pgUsers) TouchLastAccess(ctx context.Context, code string) error {
	_, err := r.q.Exec(ctx, `UPDATE users SET last_access = NOW() WHERE code = $1`, code)
	return err
}

// сохраняет токен сессии
func (r *pgUsers) SetSessionToken(ctx context.Context, code, token string) error {
	_, err := r.q.Exec(ctx, `UPDATE users SET session_token = $2 WHERE code = $1`, code, token)
	return err
}

// сканирует строку из базы в структуру User
func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	var itemsJSON []byte
	var email, sessionToken, referrerCode *string

	if err := row.Scan(
		&u.ID, &u.Code, &u.Username, &email, &u.Password, &u.Role, &u.WaterDrops, &u.Pearls,
		&u.Level, &u.LastAccess, &itemsJSON, &referrerCode, &sessionToken, &u.CreatedAt,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	if email != nil {
		u.Email = *email
	}
	u.ReferrerCode = referrerCode
	u.SessionToken = sessionToken
	if err := json.Unmarshal(itemsJSON, &u.ReefItems); err != nil {
		u.ReefItems = make(map[string]interface{})
	}

	return &u, nil
}
