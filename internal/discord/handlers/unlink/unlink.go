// Package unlink реализует модераторскую команду /unlink: удаление привязки аккаунта.
package unlink

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/magabrotheeeer/linkbot/internal/discord/options"
	"github.com/magabrotheeeer/linkbot/internal/discord/response"
	"github.com/magabrotheeeer/linkbot/internal/lib/discordid"
	"github.com/magabrotheeeer/linkbot/internal/lib/sl"
)

// Name — имя команды.
const Name = "unlink"

const optionUser = "user"

// Accounts описывает удаление привязки.
type Accounts interface {
	Unlink(ctx context.Context, discordID uint64) (bool, error)
}

// Handler обрабатывает /unlink.
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
	perms := int64(discordgo.PermissionModerateMembers)
	return &discordgo.ApplicationCommand{
		Name:                     Name,
		Description:              "Unlink user account",
		DMPermission:             &dm,
		DefaultMemberPermissions: &perms,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        optionUser,
				Description: "The user to unlink",
				Required:    true,
			},
		},
	}
}

// Handle удаляет привязку указанного пользователя.
func (h *Handler) Handle(ctx context.Context, i *discordgo.InteractionCreate) error {
	const op = "handlers.unlink.Handle"

	target, err := options.TargetUser(i, optionUser)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	id, err := discordid.Parse(target.ID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	existed, err := h.accounts.Unlink(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	reply := response.Mention(target.ID) + " is not linked."
	if existed {
		reply = "Unlinked " + response.Mention(target.ID)
		h.log.Info("account unlinked", slog.String("op", op), sl.User(target.ID))
	}
	return response.Send(h.responder, i, response.Ephemeral(reply))
}
