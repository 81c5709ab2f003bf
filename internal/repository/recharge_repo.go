package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"reef_backend/internal/domain"
)

type pgRecharges struct {
	q querier
}

const rechargeColumns = `id, user_code, item, network, address, amount, receipt, status, created_at`

// создает заявку на пополнение
func (r *pgRecharges) Create(ctx context.Context, rc *domain.Recharge) error {
	return r.q.QueryRow(ctx, `
		INSERT INTO recharges (user_code, item, network, address, amount, receipt, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`, rc.UserCode, rc.Item, rc.Network, rc.Address, rc.Amount, rc.Receipt, rc.Status).
		Scan(&rc.ID, &rc.CreatedAt)
}

// получает пополнение по id
func (r *pgRecharges) GetByID(ctx context.Context, id int64) (*domain.Recharge, error) {
	row := r.q.QueryRow(ctx, `SELECT `+rechargeColumns+` FROM recharges WHERE id = $1`, id)
	return scanRecharge(row)
}

// меняет статус только из ожидаемого, условный UPDATE защищает от
// повторной обработки при конкурентных запросах
func (r *pgRecharges) UpdateStatusFrom(ctx context.Context, id int64, from, to domain.RechargeStatus) (bool, error) {
	tag, err := r.q.Exec(ctx, `
		UPDATE recharges SET status = $3 WHERE id = $1 AND status = $2
	`, id, from, to)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// список пополнений по статусу
func (r *pgRecharges) ListByStatus(ctx context.Context, status domain.RechargeStatus, limit int) ([]domain.Recharge, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+rechargeColumns+` FROM recharges
		WHERE status = $1
		ORDER BY created_at ASC
		LIMIT $2
	`, status, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRecharges(rows)
}

// список пополнений пользователя
func (r *pgRecharges) ListByUser(ctx context.Context, userCode string, limit int) ([]domain.Recharge, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+rechargeColumns+` FROM recharges
		WHERE user_code = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, userCode, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRecharges(rows)
}

// сканирует строку из базы в структуру Recharge
func scanRecharge(row pgx.Row) (*domain.Recharge, error) {
	var rc domain.Recharge
	if err := row.Scan(
		&rc.ID, &rc.UserCode, &rc.Item, &rc.Network, &rc.Address, &rc.Amount, &rc.Receipt, &rc.Status, &rc.CreatedAt,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &rc, nil
}

// сканирует набор строк в срез Recharge
func scanRecharges(rows pgx.Rows) ([]domain.Recharge, error) {
	var recharges []domain.Recharge
	for rows.Next() {
		var rc domain.Recharge
		if err := rows.Scan(
			&rc.ID, &rc.UserCode, &rc.Item, &rc.Network, &rc.Address, &rc.Amount, &rc.Receipt, &rc.Status, &rc.CreatedAt,
		); err != nil {
			return nil, err
		}
		recharges = append(recharges, rc)
	}
	return recharges, rows.Err()
}
