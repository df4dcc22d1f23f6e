// Package commerce реализует клиент купонного API GmodStore.
package commerce

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/magabrotheeeer/linkbot/internal/lib/restclient"
	"github.com/magabrotheeeer/linkbot/internal/models"
)

// ErrNoStoreAccount — у привязанного аккаунта нет идентификатора GmodStore.
var ErrNoStoreAccount = errors.New("account has no GmodStore id")

// Client — клиент купонов GmodStore.
type Client struct {
	api *restclient.Client
	now func() time.Time
}

// Option настраивает Client.
type Option func(*Client)

// WithClock подменяет источник текущего времени.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// New создаёт клиент GmodStore.
func New(api *restclient.Client, opts ...Option) *Client {
	c := &Client{api: api, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type couponsResponse struct {
	Data    []models.Coupon `json:"data"`
	Cursors struct {
		Previous *string `json:"previous"`
		Next     *string `json:"next"`
	} `json:"cursors"`
}

type couponResponse struct {
	Data models.Coupon `json:"data"`
}

func couponsPath(productID string) string {
	return "/products/" + url.PathEscape(productID) + "/coupons"
}

// ActiveCoupon возвращает первый действующий купон продукта, привязанный к аккаунту.
// API не фильтрует по сроку, поэтому срок и владелец проверяются на клиенте.
// Порядок выбора при нескольких совпадениях определяется порядком ответа API.
func (c *Client) ActiveCoupon(ctx context.Context, account *models.LinkedAccount, productID string) (*models.Coupon, error) {
	const op = "commerce.ActiveCoupon"

	storeID, ok := account.StoreID()
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, ErrNoStoreAccount)
	}

	now := c.now()
	query := url.Values{"filter[boundUserId]": {storeID}}
	seen := map[string]bool{}

	for {
		var resp couponsResponse
		if err := c.api.Do(ctx, http.MethodGet, couponsPath(productID), query, nil, &resp); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		for i := range resp.Data {
			if resp.Data[i].BoundTo(storeID) && resp.Data[i].ActiveAt(now) {
				coupon := resp.Data[i]
				return &coupon, nil
			}
		}

		next := resp.Cursors.Next
		if next == nil || *next == "" || seen[*next] {
			return nil, nil
		}
		seen[*next] = true
		query.Set("cursor", *next)
	}
}

// CreateCoupon создаёт купон для продукта.
func (c *Client) CreateCoupon(ctx context.Context, productID string, builder *CouponBuilder) (*models.Coupon, error) {
	const op = "commerce.CreateCoupon"

	if builder == nil {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidCoupon)
	}

	var resp couponResponse
	if err := c.api.Do(ctx, http.MethodPost, couponsPath(productID), nil, builder, &resp); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &resp.Data, nil
}

// Now возвращает текущее время по часам клиента.
func (c *Client) Now() time.Time {
	return c.now()
}
