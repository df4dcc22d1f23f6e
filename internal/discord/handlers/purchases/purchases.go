// Package purchases реализует модераторскую команду /purchases: эмбед со
// списком продуктов пользователя.
package purchases

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/magabrotheeeer/linkbot/internal/discord/options"
	"github.com/magabrotheeeer/linkbot/internal/discord/response"
	"github.com/magabrotheeeer/linkbot/internal/lib/discordid"
	"github.com/magabrotheeeer/linkbot/internal/models"
)

// Name — имя команды.
const Name = "purchases"

const optionUser = "user"

// EmbedColor — цвет эмбеда покупок.
const EmbedColor = 0xBF8AE0

// Accounts описывает нужные методы link-сервиса.
type Accounts interface {
	Lookup(ctx context.Context, discordID uint64) (*models.LinkedAccount, error)
	Purchases(ctx context.Context, account *models.LinkedAccount) (models.Purchases, error)
}

// Handler обрабатывает /purchases.
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
		Description:              "Retrieve user's GmodStore purchases.",
		DMPermission:             &dm,
		DefaultMemberPermissions: &perms,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        optionUser,
				Description: "User to fetch purchases for.",
				Required:    true,
			},
		},
	}
}

// Handle отвечает эмбедом с покупками указанного пользователя.
func (h *Handler) Handle(ctx context.Context, i *discordgo.InteractionCreate) error {
	const op = "handlers.purchases.Handle"

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

	embed := &discordgo.MessageEmbed{
		Title: "User Purchases",
		Color: EmbedColor,
		Author: &discordgo.MessageEmbedAuthor{
			Name:    response.Tag(target),
			IconURL: target.AvatarURL(""),
		},
	}

	if account == nil {
		embed.Title = "User is not linked"
		embed.Description = "The user is not linked or has no valid GmodStore account."
		return response.Send(h.responder, i, response.EphemeralEmbed(embed))
	}

	owned, err := h.accounts.Purchases(ctx, account)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	embed.Description = Describe(owned)

	return response.Send(h.responder, i, response.EphemeralEmbed(embed))
}

// Describe перечисляет все продукты каталога с отметкой о покупке.
func Describe(p models.Purchases) string {
	lines := make([]string, 0, len(models.Products))
	for _, product := range models.Products {
		lines = append(lines, response.Mark(p.Owns(product.Flag))+" | "+product.Label)
	}
	return strings.Join(lines, "\n")
}
