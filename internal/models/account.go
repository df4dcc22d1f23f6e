// Package models содержит доменные структуры бота: привязанный аккаунт,
// флаги покупок, купон и статический каталог продуктов.
package models

import (
	"time"

	"github.com/google/uuid"
)

// LinkedAccount представляет связку Discord-аккаунта с аккаунтом магазина.
// Создаётся внешним link-сервисом, бот её только читает или удаляет.
type LinkedAccount struct {
	ID          uuid.UUID `json:"uuid"`
	Name        *string   `json:"name"`
	SteamID     uint64    `json:"steamId"`
	DiscordID   *uint64   `json:"discordId"`
	GmodStoreID *string   `json:"gmodStoreId"` // nil, если аккаунт магазина не привязан
	Avatar      *string   `json:"avatar"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// StoreID возвращает идентификатор аккаунта магазина и признак его наличия.
func (a *LinkedAccount) StoreID() (string, bool) {
	if a == nil || a.GmodStoreID == nil || *a.GmodStoreID == "" {
		return "", false
	}
	return *a.GmodStoreID, true
}
