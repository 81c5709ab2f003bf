package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"reef_backend/internal/domain"
	"reef_backend/internal/logger"
	"reef_backend/internal/repository"
	"reef_backend/internal/service"
)

// Handler держит сервисы, общие для всех маршрутов
type Handler struct {
	Store       repository.Store
	Sessions    *service.SessionService
	Balance     *service.BalanceService
	Recharges   *service.RechargeService
	Withdrawals *service.WithdrawalService
	Funds       *service.FundService
}

func New(store repository.Store, sessions *service.SessionService, balance *service.BalanceService,
	recharges *service.RechargeService, withdrawals *service.WithdrawalService, funds *service.FundService) *Handler {
	return &Handler{
		Store:       store,
		Sessions:    sessions,
		Balance:     balance,
		Recharges:   recharges,
		Withdrawals: withdrawals,
		Funds:       funds,
	}
}

// достает текущего пользователя, положенного auth-миддлварой
func currentUser(c *gin.Context) (*domain.User, bool) {
	v, ok := c.Get("user")
	if !ok {
		return nil, false
	}
	user, ok := v.(*domain.User)
	return user, ok
}

// успешный ответ в общем конверте {success, ...}
func respondOK(c *gin.Context, payload gin.H) {
	if payload == nil {
		payload = gin.H{}
	}
	payload["success"] = true
	c.JSON(http.StatusOK, payload)
}

// ответ с ошибкой {success: false, message}
func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}

// отображает ошибки сервисов в HTTP-коды. Неожиданные ошибки логируются,
// наружу уходит общий текст без внутренних деталей
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrInvalidAmount):
		respondError(c, http.StatusBadRequest, "invalid request")
	case errors.Is(err, service.ErrInsufficientBalance):
		respondError(c, http.StatusBadRequest, "insufficient balance")
	case errors.Is(err, service.ErrAlreadyProcessed):
		respondError(c, http.StatusBadRequest, "already processed")
	case errors.Is(err, service.ErrUserNotFound):
		respondError(c, http.StatusNotFound, "user not found")
	case errors.Is(err, service.ErrRechargeNotFound):
		respondError(c, http.StatusNotFound, "recharge not found")
	case errors.Is(err, service.ErrWithdrawalNotFound):
		respondError(c, http.StatusNotFound, "withdrawal not found")
	case errors.Is(err, service.ErrUsernameTaken):
		respondError(c, http.StatusBadRequest, "username already taken")
	case errors.Is(err, service.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, "invalid credentials")
	default:
		logger.Error("внутренняя ошибка обработчика", "error", err, "path", c.FullPath())
		respondError(c, http.StatusInternalServerError, "internal error")
	}
}
