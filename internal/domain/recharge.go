package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Запрос на пополнение - заявка пользователя на депозит
type Recharge struct {
	ID        int64           `db:"id" json:"id"`
	UserCode  string          `db:"user_code" json:"user_code"`
	Item      string          `db:"item" json:"item"`
	Network   string          `db:"network" json:"network"`
	Address   string          `db:"address" json:"address"`
	Amount    decimal.Decimal `db:"amount" json:"amount"`
	Receipt   string          `db:"receipt" json:"receipt,omitempty"` // имя файла чека, раздается статикой
	Status    RechargeStatus  `db:"status" json:"status"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}

// Статус пополнения
type RechargeStatus string

const (
	RechargeStatusPending  RechargeStatus = "pending"
	RechargeStatusApproved RechargeStatus = "approved"
	RechargeStatusDenied   RechargeStatus = "denied"
	// синтетические записи прямых начислений админом, сразу терминальные
	RechargeStatusAdminCredit       RechargeStatus = "admin_credit"
	RechargeStatusAdminCreditPearls RechargeStatus = "admin_credit_pearls"
)

// Terminal сообщает, что из статуса больше нет переходов
func (s RechargeStatus) Terminal() bool {
	return s != RechargeStatusPending
}
