package handlers

import (
	"github.com/gin-gonic/gin"
	"net/http"
)

type RegisterRequest struct {
	Username     string  `json:"username" binding:"required"`
	Email        string  `json:"email"`
	Password     string  `json:"password" binding:"required"`
	ReferrerCode *string `json:"referrer_code"`
}

// Регистрация нового пользователя
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request")
		return
	}

	user, err := h.Sessions.Register(c.Request.Context(), req.Username, req.Email, req.Password, req.ReferrerCode)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, gin.H{"user": user})
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Вход, выдает bearer-токен сессии
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request")
		return
	}

	token, user, err := h.Sessions.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, gin.H{"token": token, "user": user})
}
