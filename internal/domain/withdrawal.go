package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Заявка на вывод. Сумма списывается с баланса в момент создания заявки,
// отклонение возвращает ее обратно
type Withdrawal struct {
	ID        int64            `db:"id" json:"id"`
	UserCode  string           `db:"user_code" json:"user_code"`
	Network   string           `db:"network" json:"network"`
	Address   string           `db:"address" json:"address"`
	Amount    decimal.Decimal  `db:"amount" json:"amount"`
	Note      string           `db:"note" json:"note,omitempty"`
	Status    WithdrawalStatus `db:"status" json:"status"`
	CreatedAt time.Time        `db:"created_at" json:"created_at"`
}

// Статус вывода
type WithdrawalStatus string

const (
	WithdrawalStatusPending  WithdrawalStatus = "pending"
	WithdrawalStatusApproved WithdrawalStatus = "approved"
	WithdrawalStatusDenied   WithdrawalStatus = "denied"
)

// минимальная сумма вывода
var MinWithdrawalAmount = decimal.NewFromInt(20)
