package repository

import (
	"context"
	"encoding/json"

	"reef_backend/internal/domain"
)

type pgAudits struct {
	q querier
}

// создает запись в журнале аудита
func (r *pgAudits) Create(ctx context.Context, l *domain.AuditLog) error {
	detailsJSON, err := json.Marshal(l.Details)
	if err != nil {
		detailsJSON = []byte("{}")
	}

	_, err = r.q.Exec(ctx, `
		INSERT INTO audit_logs (user_code, action, category, details)
		VALUES ($1, $2, $3, $4)
	`, l.UserCode, l.Action, l.Category, detailsJSON)
	return err
}

// возвращает записи аудита пользователя
func (r *pgAudits) ListByUser(ctx context.Context, userCode string, limit int) ([]*domain.AuditLog, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, user_code, action, category, details, created_at
		FROM audit_logs
		WHERE user_code = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, userCode, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*domain.AuditLog
	for rows.Next() {
		var l domain.AuditLog
		var detailsJSON []byte
		if err := rows.Scan(&l.ID, &l.UserCode, &l.Action, &l.Category, &detailsJSON, &l.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(detailsJSON, &l.Details); err != nil {
			l.Details = make(map[string]interface{})
		}
		logs = append(logs, &l)
	}
	return logs, rows.Err()
}
