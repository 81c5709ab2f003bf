package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"reef_backend/internal/domain"
)

type AdminCreditRequest struct {
	UserID string          `json:"user_id" binding:"required"` // код пользователя
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// Прямое начисление капель админом
func (h *Handler) AdminCredit(c *gin.Context) {
	h.adminCredit(c, domain.CurrencyWaterDrops)
}

// Прямое начисление жемчуга админом
func (h *Handler) AdminCreditPearls(c *gin.Context) {
	h.adminCredit(c, domain.CurrencyPearls)
}

func (h *Handler) adminCredit(c *gin.Context, currency domain.Currency) {
	var req AdminCreditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request")
		return
	}

	balance, err := h.Balance.Credit(c.Request.Context(), req.UserID, req.Amount, currency)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, gin.H{"balance": balance, "currency": currency})
}
