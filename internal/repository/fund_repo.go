package repository

import (
	"context"

	"reef_backend/internal/domain"
)

type pgFunds struct {
	q querier
}

// создает фонд
func (r *pgFunds) Create(ctx context.Context, f *domain.Fund) error {
	return r.q.QueryRow(ctx, `
		INSERT INTO funds (user_code, amount, daily_rate, duration_days, start_at, end_at, expected_total)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`, f.UserCode, f.Amount, f.DailyRate, f.DurationDays, f.StartAt, f.EndAt, f.ExpectedTotal).
		Scan(&f.ID, &f.CreatedAt)
}

// список фондов пользователя
func (r *pgFunds) ListByUser(ctx context.Context, userCode string) ([]domain.Fund, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, user_code, amount, daily_rate, duration_days, start_at, end_at, expected_total, created_at
		FROM funds
		WHERE user_code = $1
		ORDER BY created_at DESC
	`, userCode)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var funds []domain.Fund
	for rows.Next() {
		var f domain.Fund
		if err := rows.Scan(
			&f.ID, &f.UserCode, &f.Amount, &f.DailyRate, &f.DurationDays, &f.StartAt, &f.EndAt, &f.ExpectedTotal, &f.CreatedAt,
		); err != nil {
			return nil, err
		}
		funds = append(funds, f)
	}
	return funds, rows.Err()
}
