package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"reef_backend/internal/logger"
)

// Connect открывает пул соединений и поднимает схему
func Connect(databaseURL string) *pgxpool.Pool {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		logger.Fatal("не удалось создать пул соединений", "error", err)
	}

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal("база данных недоступна", "error", err)
	}

	if err := Migrate(ctx, pool); err != nil {
		logger.Fatal("не удалось применить схему", "error", err)
	}

	logger.Info("подключение к postgres установлено")
	return pool
}

// Migrate создает таблицы, если их еще нет
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, schema)
	return err
}

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            BIGSERIAL PRIMARY KEY,
	code          TEXT UNIQUE NOT NULL,
	username      TEXT UNIQUE NOT NULL,
	email         TEXT NOT NULL DEFAULT '',
	password      TEXT NOT NULL,
	role          TEXT NOT NULL DEFAULT 'player',
	water_drops   NUMERIC(20,2) NOT NULL DEFAULT 0 CHECK (water_drops >= 0),
	pearls        NUMERIC(20,2) NOT NULL DEFAULT 0 CHECK (pearls >= 0),
	level         INT NOT NULL DEFAULT 1,
	last_access   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	reef_items    JSONB NOT NULL DEFAULT '{}',
	referrer_code TEXT REFERENCES users(code) ON DELETE RESTRICT,
	session_token TEXT,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS recharges (
	id         BIGSERIAL PRIMARY KEY,
	user_code  TEXT NOT NULL REFERENCES users(code) ON DELETE RESTRICT,
	item       TEXT NOT NULL DEFAULT '',
	network    TEXT NOT NULL DEFAULT '',
	address    TEXT NOT NULL DEFAULT '',
	amount     NUMERIC(20,2) NOT NULL,
	receipt    TEXT NOT NULL DEFAULT '',
	status     TEXT NOT NULL DEFAULT 'pending',
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_recharges_user ON recharges(user_code);
CREATE INDEX IF NOT EXISTS idx_recharges_status ON recharges(status);

CREATE TABLE IF NOT EXISTS withdrawals (
	id         BIGSERIAL PRIMARY KEY,
	user_code  TEXT NOT NULL REFERENCES users(code) ON DELETE RESTRICT,
	network    TEXT NOT NULL DEFAULT '',
	address    TEXT NOT NULL DEFAULT '',
	amount     NUMERIC(20,2) NOT NULL,
	note       TEXT NOT NULL DEFAULT '',
	status     TEXT NOT NULL DEFAULT 'pending',
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_withdrawals_user ON withdrawals(user_code);
CREATE INDEX IF NOT EXISTS idx_withdrawals_status ON withdrawals(status);

CREATE TABLE IF NOT EXISTS funds (
	id             BIGSERIAL PRIMARY KEY,
	user_code      TEXT NOT NULL REFERENCES users(code) ON DELETE RESTRICT,
	amount         NUMERIC(20,2) NOT NULL,
	daily_rate     NUMERIC(10,4) NOT NULL,
	duration_days  INT NOT NULL,
	start_at       TIMESTAMPTZ NOT NULL,
	end_at         TIMESTAMPTZ NOT NULL,
	expected_total NUMERIC(20,2) NOT NULL,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_funds_user ON funds(user_code);

CREATE TABLE IF NOT EXISTS referrals (
	id                BIGSERIAL PRIMARY KEY,
	referrer_code     TEXT NOT NULL REFERENCES users(code) ON DELETE RESTRICT,
	referred_code     TEXT NOT NULL REFERENCES users(code) ON DELETE RESTRICT,
	referred_username TEXT NOT NULL,
	earned            NUMERIC(20,2) NOT NULL,
	created_at        TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_referrals_referrer ON referrals(referrer_code);

CREATE TABLE IF NOT EXISTS audit_logs (
	id         BIGSERIAL PRIMARY KEY,
	user_code  TEXT NOT NULL,
	action     TEXT NOT NULL,
	category   TEXT NOT NULL,
	details    JSONB NOT NULL DEFAULT '{}',
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_audit_user ON audit_logs(user_code);
`
