package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Запись о реферальном бонусе. Создается один раз на каждое одобренное
// пополнение приглашенного, журнал только добавляется
type Referral struct {
	ID               int64           `db:"id" json:"id"`
	ReferrerCode     string          `db:"referrer_code" json:"referrer_code"`
	ReferredCode     string          `db:"referred_code" json:"referred_code"`
	ReferredUsername string          `db:"referred_username" json:"referred_username"` // снимок имени на момент начисления
	Earned           decimal.Decimal `db:"earned" json:"earned"`
	CreatedAt        time.Time       `db:"created_at" json:"created_at"`
}

// процент бонуса пригласившему от одобренного пополнения
var ReferralBonusPct = decimal.NewFromInt(15)

// ReferralBonus считает бонус пригласившего: creditAmount * 15%
func ReferralBonus(creditAmount decimal.Decimal) decimal.Decimal {
	return creditAmount.Mul(ReferralBonusPct).Div(decimal.NewFromInt(100))
}
