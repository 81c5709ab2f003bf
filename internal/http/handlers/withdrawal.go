package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"reef_backend/internal/domain"
)

type WithdrawalRequestBody struct {
	UserID  string          `json:"user_id" binding:"required"` // код пользователя
	Network string          `json:"network"`
	Address string          `json:"address"`
	Amount  decimal.Decimal `json:"amount" binding:"required"`
	Note    string          `json:"note"`
}

// Заявка на вывод. Сумма резервируется (списывается) сразу, до решения админа
func (h *Handler) RequestWithdrawal(c *gin.Context) {
	var req WithdrawalRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request")
		return
	}

	withdrawal, balance, err := h.Withdrawals.Request(c.Request.Context(), req.UserID, req.Network, req.Address, req.Note, req.Amount)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, gin.H{"withdrawal": withdrawal, "balance": balance})
}

// Одобрение вывода админом, средства уже списаны при заявке
func (h *Handler) ApproveWithdrawal(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid id")
		return
	}

	withdrawal, err := h.Withdrawals.Approve(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, gin.H{"withdrawal": withdrawal})
}

// Отклонение вывода админом с возвратом суммы на баланс
func (h *Handler) DenyWithdrawal(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid id")
		return
	}

	withdrawal, balance, err := h.Withdrawals.Deny(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, gin.H{"withdrawal": withdrawal, "balance": balance})
}

// Список выводов по статусу (админка), по умолчанию ожидающие
func (h *Handler) ListWithdrawals(c *gin.Context) {
	status := domain.WithdrawalStatus(c.DefaultQuery("status", string(domain.WithdrawalStatusPending)))

	withdrawals, err := h.Withdrawals.ListByStatus(c.Request.Context(), status, 200)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, gin.H{"withdrawals": withdrawals})
}
