package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Счетчики финансовых операций, отдаются на /metrics
var (
	RechargesApproved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reef_recharges_approved_total",
		Help: "Количество одобренных пополнений",
	})
	RechargesDenied = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reef_recharges_denied_total",
		Help: "Количество отклоненных пополнений",
	})
	WithdrawalsRequested = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reef_withdrawals_requested_total",
		Help: "Количество созданных заявок на вывод",
	})
	WithdrawalsApproved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reef_withdrawals_approved_total",
		Help: "Количество одобренных выводов",
	})
	WithdrawalsDenied = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reef_withdrawals_denied_total",
		Help: "Количество отклоненных выводов",
	})
	FundsPurchased = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reef_funds_purchased_total",
		Help: "Количество купленных фондов",
	})
	AdminCredits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reef_admin_credits_total",
		Help: "Количество прямых начислений админом",
	})
)
