package domain

import "time"

// Журнал важных действий над балансами
type AuditLog struct {
	ID        int64                  `db:"id" json:"id"`
	UserCode  string                 `db:"user_code" json:"user_code"`
	Action    string                 `db:"action" json:"action"`
	Category  string                 `db:"category" json:"category"`
	Details   map[string]interface{} `db:"details" json:"details"`
	CreatedAt time.Time              `db:"created_at" json:"created_at"`
}

// Категории действий
const (
	AuditCategoryAuth       = "auth"
	AuditCategoryBalance    = "balance"
	AuditCategoryRecharge   = "recharge"
	AuditCategoryWithdrawal = "withdrawal"
	AuditCategoryFund       = "fund"
	AuditCategoryAdmin      = "admin"
)

const (
	AuditActionLogin = "login"

	AuditActionRechargeCreate  = "recharge_create"
	AuditActionRechargeApprove = "recharge_approve"
	AuditActionRechargeDeny    = "recharge_deny"

	AuditActionWithdrawRequest = "withdraw_request"
	AuditActionWithdrawApprove = "withdraw_approve"
	AuditActionWithdrawDeny    = "withdraw_deny"

	AuditActionFundBuy = "fund_buy"

	AuditActionAdminCredit       = "admin_credit"
	AuditActionAdminCreditPearls = "admin_credit_pearls"

	AuditActionReferralBonus = "referral_bonus"
)
