// Package linkclient реализует клиент link-сервиса, который хранит связки
// Discord-аккаунтов с аккаунтами Steam и GmodStore.
package linkclient

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/magabrotheeeer/linkbot/internal/lib/restclient"
	"github.com/magabrotheeeer/linkbot/internal/models"
)

// Client — клиент link-сервиса.
type Client struct {
	api             *restclient.Client
	deleteByDiscord bool
}

// Option настраивает Client.
type Option func(*Client)

// WithDeleteByDiscordID переключает Unlink на DELETE /api/users/discord/{id}.
func WithDeleteByDiscordID() Option {
	return func(c *Client) { c.deleteByDiscord = true }
}

// New создаёт клиент link-сервиса.
func New(api *restclient.Client, opts ...Option) *Client {
	c := &Client{api: api}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type accountResponse struct {
	Data models.LinkedAccount `json:"data"`
}

type purchasesResponse struct {
	Data models.Purchases `json:"data"`
}

// Lookup ищет связку по идентификатору пользователя Discord.
// Если связки нет, возвращает nil без ошибки.
func (c *Client) Lookup(ctx context.Context, discordID uint64) (*models.LinkedAccount, error) {
	const op = "linkclient.Lookup"

	var resp accountResponse
	err := c.api.Do(ctx, http.MethodGet, "/api/users/discord/"+strconv.FormatUint(discordID, 10), nil, nil, &resp)
	if restclient.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &resp.Data, nil
}

// Purchases возвращает флаги покупок привязанного аккаунта.
func (c *Client) Purchases(ctx context.Context, account *models.LinkedAccount) (models.Purchases, error) {
	const op = "linkclient.Purchases"

	var resp purchasesResponse
	if err := c.api.Do(ctx, http.MethodGet, "/api/users/"+account.ID.String()+"/purchases", nil, nil, &resp); err != nil {
		return models.Purchases{}, fmt.Errorf("%s: %w", op, err)
	}
	return resp.Data, nil
}

// Unlink удаляет связку пользователя и сообщает, существовала ли она.
// Для непривязанного пользователя запрос на удаление не отправляется.
func (c *Client) Unlink(ctx context.Context, discordID uint64) (bool, error) {
	const op = "linkclient.Unlink"

	if c.deleteByDiscord {
		return c.DeleteByDiscordID(ctx, discordID)
	}

	account, err := c.Lookup(ctx, discordID)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	if account == nil {
		return false, nil
	}

	if err := c.api.Do(ctx, http.MethodDelete, "/api/users/"+account.ID.String(), nil, nil, nil); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return true, nil
}

// DeleteByDiscordID удаляет связку одним запросом по идентификатору Discord.
// Ответ 404 означает, что связки не было.
func (c *Client) DeleteByDiscordID(ctx context.Context, discordID uint64) (bool, error) {
	const op = "linkclient.DeleteByDiscordID"

	err := c.api.Do(ctx, http.MethodDelete, "/api/users/discord/"+strconv.FormatUint(discordID, 10), nil, nil, nil)
	if restclient.IsNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return true, nil
}
