package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Фонд - покупка с фиксированным сроком и фиксированной дневной ставкой.
// Ожидаемая выплата считается один раз при покупке и больше не пересчитывается,
// фонового начисления нет
type Fund struct {
	ID            int64           `db:"id" json:"id"`
	UserCode      string          `db:"user_code" json:"user_code"`
	Amount        decimal.Decimal `db:"amount" json:"amount"`
	DailyRate     decimal.Decimal `db:"daily_rate" json:"daily_rate"`       // процентов в день
	DurationDays  int             `db:"duration_days" json:"duration_days"` //
	StartAt       time.Time       `db:"start_at" json:"start_at"`
	EndAt         time.Time       `db:"end_at" json:"end_at"`
	ExpectedTotal decimal.Decimal `db:"expected_total" json:"expected_total"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
}

// Условия фонда, единственный доступный продукт
var (
	FundDailyRate    = decimal.NewFromFloat(4.5) // % в день
	FundDurationDays = 45
	MinFundAmount    = decimal.NewFromInt(15)
)

// FundExpectedTotal считает ожидаемую выплату по простым (без капитализации)
// процентам за весь срок: amount * rate/100 * days
func FundExpectedTotal(amount, dailyRatePct decimal.Decimal, days int) decimal.Decimal {
	return amount.Mul(dailyRatePct.Div(decimal.NewFromInt(100))).Mul(decimal.NewFromInt(int64(days)))
}
