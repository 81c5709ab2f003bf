package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"reef_backend/internal/service"
)

// прогоняет ошибку через respondServiceError и возвращает код и тело
func mapError(t *testing.T, err error) (int, map[string]interface{}) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	respondServiceError(c, err)

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("тело не распарсилось: %v", err)
	}
	return w.Code, body
}

func TestRespondServiceError_Mapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{service.ErrValidation, http.StatusBadRequest},
		{service.ErrInvalidAmount, http.StatusBadRequest},
		{service.ErrInsufficientBalance, http.StatusBadRequest},
		{service.ErrAlreadyProcessed, http.StatusBadRequest},
		{service.ErrUserNotFound, http.StatusNotFound},
		{service.ErrRechargeNotFound, http.StatusNotFound},
		{service.ErrWithdrawalNotFound, http.StatusNotFound},
		{service.ErrUsernameTaken, http.StatusBadRequest},
		{service.ErrInvalidCredentials, http.StatusUnauthorized},
		{errors.New("сломалась база"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		code, body := mapError(t, c.err)
		if code != c.code {
			t.Fatalf("ошибка %v: ожидался код %d, получено %d", c.err, c.code, code)
		}
		if body["success"] != false {
			t.Fatalf("ошибка %v: в конверте success должен быть false", c.err)
		}
		if body["message"] == "" {
			t.Fatalf("ошибка %v: пустое сообщение", c.err)
		}
	}
}

// внутренние детали не утекают наружу
func TestRespondServiceError_InternalDetailsHidden(t *testing.T) {
	_, body := mapError(t, errors.New("pq: connection refused"))
	if body["message"] != "internal error" {
		t.Fatalf("наружу ушли внутренние детали: %v", body["message"])
	}
}

func TestRespondOK_Envelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	respondOK(c, gin.H{"balance": "10.50"})

	if w.Code != http.StatusOK {
		t.Fatalf("ожидался 200, получено %d", w.Code)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("тело не распарсилось: %v", err)
	}
	if body["success"] != true {
		t.Fatal("в конверте success должен быть true")
	}
	if body["balance"] != "10.50" {
		t.Fatalf("полезная нагрузка потерялась: %v", body)
	}
}
