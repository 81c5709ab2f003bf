package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"reef_backend/internal/domain"
)

type pgWithdrawals struct {
	q querier
}

const withdrawalColumns = `id, user_code, network, address, amount, note, status, created_at`

// создает заявку на вывод
func (r *pgWithdrawals) Create(ctx context.Context, w *domain.Withdrawal) error {
	return r.q.QueryRow(ctx, `
		INSERT INTO withdrawals (user_code, network, address, amount, note, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`, w.UserCode, w.Network, w.Address, w.Amount, w.Note, w.Status).
		Scan(&w.ID, &w.CreatedAt)
}

// получает вывод по id
func (r *pgWithdrawals) GetByID(ctx context.Context, id int64) (*domain.Withdrawal, error) {
	row := r.q.QueryRow(ctx, `SELECT `+withdrawalColumns+` FROM withdrawals WHERE id = $1`, id)
	return scanWithdrawal(row)
}

// меняет статус только из ожидаемого
func (r *pgWithdrawals) UpdateStatusFrom(ctx context.Context, id int64, from, to domain.WithdrawalStatus) (bool, error) {
	tag, err := r.q.Exec(ctx, `
		UPDATE withdrawals SET status = $3 WHERE id = $1 AND status = $2
	`, id, from, to)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// список выводов по статусу
func (r *pgWithdrawals) ListByStatus(ctx context.Context, status domain.WithdrawalStatus, limit int) ([]domain.Withdrawal, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+withdrawalColumns+` FROM withdrawals
		WHERE status = $1
		ORDER BY created_at ASC
		LIMIT $2
	`, status, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanWithdrawals(rows)
}

// список выводов пользователя
func (r *pgWithdrawals) ListByUser(ctx context.Context, userCode string, limit int) ([]domain.Withdrawal, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+withdrawalColumns+` FROM withdrawals
		WHERE user_code = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, userCode, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanWithdrawals(rows)
}

// сканирует строку из базы в структуру Withdrawal
func scanWithdrawal(row pgx.Row) (*domain.Withdrawal, error) {
	var w domain.Withdrawal
	if err := row.Scan(
		&w.ID, &w.UserCode, &w.Network, &w.Address, &w.Amount, &w.Note, &w.Status, &w.CreatedAt,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &w, nil
}

// сканирует набор строк в срез Withdrawal
func scanWithdrawals(rows pgx.Rows) ([]domain.Withdrawal, error) {
	var withdrawals []domain.Withdrawal
	for rows.Next() {
		var w domain.Withdrawal
		if err := rows.Scan(
			&w.ID, &w.UserCode, &w.Network, &w.Address, &w.Amount, &w.Note, &w.Status, &w.CreatedAt,
		); err != nil {
			return nil, err
		}
		withdrawals = append(withdrawals, w)
	}
	return withdrawals, rows.Err()
}
