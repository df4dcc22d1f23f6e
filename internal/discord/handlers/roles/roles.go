// Package roles реализует команду /roles: пользователь получает роли
// поддержки по своим покупкам.
package roles

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/magabrotheeeer/linkbot/internal/discord/options"
	"github.com/magabrotheeeer/linkbot/internal/discord/response"
	"github.com/magabrotheeeer/linkbot/internal/lib/sl"
)

// Name — имя команды.
const Name = "roles"

// Service описывает выдачу ролей по покупкам.
type Service interface {
	Assign(ctx context.Context, guildID, userID string) (bool, error)
}

// Handler обрабатывает /roles.
type Handler struct {
	log       *slog.Logger
	responder response.Responder
	service   Service
}

// New создает новый Handler.
func New(log *slog.Logger, responder response.Responder, service Service) *Handler {
	return &Handler{log: log, responder: responder, service: service}
}

// Definition описывает команду для регистрации в Discord.
func (h *Handler) Definition() *discordgo.ApplicationCommand {
	dm := false
	return &discordgo.ApplicationCommand{
		Name:         Name,
		Description:  "Get access to the support channels",
		DMPermission: &dm,
	}
}

// Handle выдаёт роли вызвавшему участнику.
func (h *Handler) Handle(ctx context.Context, i *discordgo.InteractionCreate) error {
	const op = "handlers.roles.Handle"

	member, err := options.Member(i)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	linked, err := h.service.Assign(ctx, i.GuildID, member.User.ID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	reply := response.NotLinkedForRoles
	if linked {
		reply = "Your roles have been assigned"
		h.log.Info("roles assigned", slog.String("op", op), sl.Guild(i.GuildID), sl.User(member.User.ID))
	}
	return response.Send(h.responder, i, response.Ephemeral(reply))
}
