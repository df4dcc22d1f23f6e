// Package forceroles реализует модераторскую команду /force-roles:
// выдача ролей поддержки указанному участнику.
package forceroles

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
const Name = "force-roles"

const optionMember = "member"

// Service описывает выдачу ролей по покупкам.
type Service interface {
	Assign(ctx context.Context, guildID, userID string) (bool, error)
}

// Handler обрабатывает /force-roles.
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
	perms := int64(discordgo.PermissionModerateMembers)
	return &discordgo.ApplicationCommand{
		Name:                     Name,
		Description:              "Forcefully assign roles to a user",
		DMPermission:             &dm,
		DefaultMemberPermissions: &perms,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        optionMember,
				Description: "User to force roles upon.",
				Required:    true,
			},
		},
	}
}

// Handle выдаёт роли указанному участнику.
func (h *Handler) Handle(ctx context.Context, i *discordgo.InteractionCreate) error {
	const op = "handlers.forceroles.Handle"

	target, err := options.TargetUser(i, optionMember)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if i.GuildID == "" {
		return fmt.Errorf("%s: %w", op, options.ErrNoMember)
	}

	linked, err := h.service.Assign(ctx, i.GuildID, target.ID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	reply := response.NotLinkedForRoles
	if linked {
		reply = "Successfully added roles to " + response.Mention(target.ID)
		h.log.Info("roles force-assigned", slog.String("op", op), sl.Guild(i.GuildID), sl.User(target.ID))
	}
	return response.Send(h.responder, i, response.Ephemeral(reply))
}
