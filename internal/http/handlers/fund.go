package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type BuyFundRequest struct {
	UserID string          `json:"user_id" binding:"required"` // код пользователя
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// Покупка фонда: списание суммы и создание фонда одним действием,
// в ответе новый баланс и все фонды пользователя
func (h *Handler) BuyFund(c *gin.Context) {
	var req BuyFundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request")
		return
	}

	balance, funds, err := h.Funds.Buy(c.Request.Context(), req.UserID, req.Amount)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, gin.H{"balance": balance, "funds": funds})
}

// Фонды текущего пользователя
func (h *Handler) MyFunds(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	funds, err := h.Funds.ListByUser(c.Request.Context(), user.Code)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, gin.H{"funds": funds})
}
