// Package http регистрирует маршруты приложения
package http

import (
	"github.com/gin-gonic/gin"

	"reef_backend/internal/http/handlers"
	"reef_backend/internal/http/middleware"
	"reef_backend/internal/service"
)

// RegisterRoutes вешает все маршруты API на роутер
func RegisterRoutes(r *gin.Engine, h *handlers.Handler, sessions *service.SessionService, uploadsDir string) {
	// чеки пополнений раздаются статикой
	r.Static("/uploads", uploadsDir)

	api := r.Group("/api")

	// открытые маршруты
	api.POST("/auth/register", h.Register)
	api.POST("/auth/login", h.Login)

	// маршруты пользователя
	authed := api.Group("")
	authed.Use(middleware.Auth(sessions))
	authed.GET("/users/me", h.MyProfile)
	authed.POST("/recharges", h.CreateRecharge)
	authed.GET("/users/me/recharges", h.MyRecharges)
	authed.GET("/users/me/withdrawals", h.MyWithdrawals)
	authed.GET("/funds", h.MyFunds)
	authed.GET("/referrals", h.MyReferrals)
	authed.POST("/withdrawals", h.RequestWithdrawal)
	authed.POST("/funds/buy", h.BuyFund)

	// маршруты админа
	admin := api.Group("")
	admin.Use(middleware.Auth(sessions), middleware.AdminOnly())
	admin.GET("/recharges", h.ListRecharges)
	admin.POST("/recharges/:id/approve", h.ApproveRecharge)
	admin.POST("/recharges/:id/deny", h.DenyRecharge)
	admin.GET("/withdrawals", h.ListWithdrawals)
	admin.POST("/withdrawals/:id/approve", h.ApproveWithdrawal)
	admin.POST("/withdrawals/:id/deny", h.DenyWithdrawal)
	admin.POST("/admin/credit", h.AdminCredit)
	admin.POST("/admin/credit-pearls", h.AdminCreditPearls)
}
