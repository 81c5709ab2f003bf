package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Текущий профиль пользователя
func (h *Handler) MyProfile(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	respondOK(c, gin.H{"user": user})
}

// Пополнения текущего пользователя
func (h *Handler) MyRecharges(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	recharges, err := h.Recharges.ListByUser(c.Request.Context(), user.Code, 100)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, gin.H{"recharges": recharges})
}

// Выводы текущего пользователя
func (h *Handler) MyWithdrawals(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	withdrawals, err := h.Withdrawals.ListByUser(c.Request.Context(), user.Code, 100)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, gin.H{"withdrawals": withdrawals})
}

// Реферальные начисления текущего пользователя
func (h *Handler) MyReferrals(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	referrals, err := h.Store.Referrals().ListByReferrer(c.Request.Context(), user.Code, 200)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, gin.H{"referrals": referrals})
}
