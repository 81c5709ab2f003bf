package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID           int64                  `db:"id" json:"id"`
	Code         string                 `db:"code" json:"code"` // уникальный код пользователя (uuid)
	Username     string                 `db:"username" json:"username"`
	Email        string                 `db:"email" json:"email"`
	Password     string                 `db:"password" json:"-"` // хранится открытым текстом - унаследовано, НЕ чиним здесь
	Role         Role                   `db:"role" json:"role"`
	WaterDrops   decimal.Decimal        `db:"water_drops" json:"water_drops"` // основная валюта
	Pearls       decimal.Decimal        `db:"pearls" json:"pearls"`           // начисляются только админом
	Level        int                    `db:"level" json:"level"`
	LastAccess   time.Time              `db:"last_access" json:"last_access"`
	ReefItems    map[string]interface{} `db:"reef_items" json:"reef_items"` // произвольное содержимое рифа
	ReferrerCode *string                `db:"referrer_code" json:"referrer_code,omitempty"`
	SessionToken *string                `db:"session_token" json:"-"`
	CreatedAt    time.Time              `db:"created_at" json:"created_at"`
}

// Роль пользователя
type Role string

const (
	RolePlayer Role = "player"
	RoleAdmin  Role = "admin"
)

// Валюты баланса
type Currency string

const (
	CurrencyWaterDrops Currency = "water_drops"
	CurrencyPearls     Currency = "pearls"
)

// Balance возвращает баланс в указанной валюте
func (u *User) Balance(c Currency) decimal.Decimal {
	if c == CurrencyPearls {
		return u.Pearls
	}
	return u.WaterDrops
}
