package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"reef_backend/internal/domain"
)

type CreateRechargeRequest struct {
	Item    string          `json:"item"`
	Network string          `json:"network"`
	Address string          `json:"address"`
	Amount  decimal.Decimal `json:"amount" binding:"required"`
	Receipt string          `json:"receipt"`
}

// Пользователь подает заявку на пополнение, чек уже загружен отдельно
// и передается именем файла
func (h *Handler) CreateRecharge(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req CreateRechargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request")
		return
	}

	recharge, err := h.Recharges.Create(c.Request.Context(), user.Code, req.Item, req.Network, req.Address, req.Receipt, req.Amount)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, gin.H{"recharge": recharge})
}

type ApproveRechargeRequest struct {
	CreditAmount decimal.Decimal `json:"credit_amount" binding:"required"`
}

// Одобрение пополнения админом. Сумма начисления задается админом и может
// отличаться от запрошенной
func (h *Handler) ApproveRecharge(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid id")
		return
	}

	var req ApproveRechargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request")
		return
	}

	user, recharge, err := h.Recharges.Approve(c.Request.Context(), id, req.CreditAmount)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, gin.H{"user": user, "recharge": recharge})
}

// Отклонение пополнения админом
func (h *Handler) DenyRecharge(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid id")
		return
	}

	recharge, err := h.Recharges.Deny(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, gin.H{"recharge": recharge})
}

// Список пополнений по статусу (админка), по умолчанию ожидающие
func (h *Handler) ListRecharges(c *gin.Context) {
	status := domain.RechargeStatus(c.DefaultQuery("status", string(domain.RechargeStatusPending)))

	recharges, err := h.Recharges.ListByStatus(c.Request.Context(), status, 200)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, gin.H{"recharges": recharges})
}
