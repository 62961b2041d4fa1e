package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID           int64           `json:"id"`
	Username     string          `json:"username"`
	PasswordHash string          `json:"-"`
	Balance      decimal.Decimal `json:"balance"`
	Broker       string          `json:"broker"`
	IsFrozen     bool            `json:"is_frozen"`
	CreatedAt    time.Time       `json:"created_at"`
}
