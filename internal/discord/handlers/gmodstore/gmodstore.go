// Package gmodstore реализует команду /gmodstore: ссылка на профиль
// пользователя в GmodStore.
package gmodstore

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/magabrotheeeer/linkbot/internal/discord/options"
	"github.com/magabrotheeeer/linkbot/internal/discord/response"
	"github.com/magabrotheeeer/linkbot/internal/lib/discordid"
	"github.com/magabrotheeeer/linkbot/internal/models"
)

// Name — имя команды.
const Name = "gmodstore"

const optionUser = "user"

// Accounts описывает поиск привязки.
type Accounts interface {
	Lookup(ctx context.Context, discordID uint64) (*models.LinkedAccount, error)
}

// Handler обрабатывает /gmodstore.
type Handler struct {
	log       *slog.Logger
	responder response.Responder
	accounts  Accounts
}

// New создает новый Handler.
func New(log *slog.Logger, responder response.Responder, accounts Accounts) *Handler {
	return &Handler{log: log, responder: responder, accounts: accounts}
}

// Definition описывает команду для регистрации в Discord.
func (h *Handler) Definition() *discordgo.ApplicationCommand {
	dm := false
	return &discordgo.ApplicationCommand{
		Name:         Name,
		Description:  "Retrieve user GmodStore account page.",
		DMPermission: &dm,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        optionUser,
				Description: "User to fetch",
				Required:    true,
			},
		},
	}
}

// Handle отвечает ссылкой на профиль GmodStore указанного пользователя.
func (h *Handler) Handle(ctx context.Context, i *discordgo.InteractionCreate) error {
	const op = "handlers.gmodstore.Handle"

	target, err := options.TargetUser(i, optionUser)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	id, err := discordid.Parse(target.ID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	account, err := h.accounts.Lookup(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	var reply string
	if account == nil {
		reply = "User is not linked."
	} else if storeID, ok := account.StoreID(); ok {
		reply = "https://www.gmodstore.com/users/" + storeID
	} else {
		reply = "User does not have a registered GmodStore account."
	}
	return response.Send(h.responder, i, response.Ephemeral(reply))
}
