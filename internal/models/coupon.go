package models

import "time"

// Coupon — купон GmodStore в том виде, в котором его возвращает API.
type Coupon struct {
	ID          string    `json:"id"`
	Code        string    `json:"code"`
	Percent     int       `json:"percent"`
	MaxUses     int       `json:"maxUses"`
	BoundUserID *string   `json:"boundUser"`
	ExpiresAt   time.Time `json:"expiresAt"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ActiveAt сообщает, действует ли купон в момент now.
// Купон активен только если срок истекает строго позже now.
func (c Coupon) ActiveAt(now time.Time) bool {
	return c.ExpiresAt.After(now)
}

// BoundTo сообщает, привязан ли купон к указанному пользователю магазина.
func (c Coupon) BoundTo(storeID string) bool {
	return c.BoundUserID != nil && *c.BoundUserID == storeID
}
