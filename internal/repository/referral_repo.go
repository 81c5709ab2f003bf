package repository

import (
	"context"

	"reef_backend/internal/domain"
)

type pgReferrals struct {
	q querier
}

// добавляет запись о реферальном бонусе, журнал только растет
func (r *pgReferrals) Create(ctx context.Context, ref *domain.Referral) error {
	return r.q.QueryRow(ctx, `
		INSERT INTO referrals (referrer_code, referred_code, referred_username, earned)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, ref.ReferrerCode, ref.ReferredCode, ref.ReferredUsername, ref.Earned).
		Scan(&ref.ID, &ref.CreatedAt)
}

// список бонусов пригласившего
func (r *pgReferrals) ListByReferrer(ctx context.Context, referrerCode string, limit int) ([]domain.Referral, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, referrer_code, referred_code, referred_username, earned, created_at
		FROM referrals
		WHERE referrer_code = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, referrerCode, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var referrals []domain.Referral
	for rows.Next() {
		var ref domain.Referral
		if err := rows.Scan(
			&ref.ID, &ref.ReferrerCode, &ref.ReferredCode, &ref.ReferredUsername, &ref.Earned, &ref.CreatedAt,
		); err != nil {
			return nil, err
		}
		referrals = append(referrals, ref)
	}
	return referrals, rows.Err()
}
