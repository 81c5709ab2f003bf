package service

import "errors"

// Ошибки уровня сервисов. Хендлеры отображают их в HTTP-коды:
// валидация и балансы - 400, not found - 404, остальное - 500
var (
	ErrValidation          = errors.New("некорректные данные запроса")
	ErrInvalidAmount       = errors.New("неверная сумма")
	ErrInsufficientBalance = errors.New("недостаточно средств")
	ErrAlreadyProcessed    = errors.New("заявка уже обработана")

	ErrUserNotFound       = errors.New("пользователь не найден")
	ErrRechargeNotFound   = errors.New("пополнение не найдено")
	ErrWithdrawalNotFound = errors.New("вывод не найден")

	ErrUsernameTaken      = errors.New("имя пользователя занято")
	ErrInvalidCredentials = errors.New("неверный логин или пароль")
	ErrInvalidToken       = errors.New("невалидный токен сессии")
)
