// Package roles выдаёт роли поддержки по купленным продуктам и роль
// верификации привязанным участникам.
package roles

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/magabrotheeeer/linkbot/internal/lib/discordid"
	"github.com/magabrotheeeer/linkbot/internal/lib/sl"
	"github.com/magabrotheeeer/linkbot/internal/models"
)

// Accounts описывает нужные методы link-сервиса.
type Accounts interface {
	Lookup(ctx context.Context, discordID uint64) (*models.LinkedAccount, error)
	Purchases(ctx context.Context, account *models.LinkedAccount) (models.Purchases, error)
}

// RoleAdder выдаёт роль участнику сервера. Реализуется *discordgo.Session.
type RoleAdder interface {
	GuildMemberRoleAdd(guildID, userID, roleID string, options ...discordgo.RequestOption) error
}

// Service выдаёт роли.
type Service struct {
	accounts Accounts
	roles    RoleAdder
	log      *slog.Logger
}

// NewService создаёт сервис ролей.
func NewService(accounts Accounts, roles RoleAdder, log *slog.Logger) *Service {
	return &Service{accounts: accounts, roles: roles, log: log}
}

// RolesFor возвращает роли для купленных продуктов в порядке каталога.
func RolesFor(p models.Purchases) []string {
	var ids []string
	for _, product := range models.Products {
		if p.Owns(product.Flag) {
			ids = append(ids, product.RoleID)
		}
	}
	return ids
}

// Assign выдаёт участнику роли по его покупкам. Возвращает false, если
// пользователь не привязан. Первая неудачная выдача прерывает остальные,
// уже выданные роли остаются.
func (s *Service) Assign(ctx context.Context, guildID, userID string) (bool, error) {
	const op = "services.roles.Assign"

	id, err := discordid.Parse(userID)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	account, err := s.accounts.Lookup(ctx, id)
	if err != nil {
		return false, fmt.Errorf("%s: lookup: %w", op, err)
	}
	if account == nil {
		return false, nil
	}

	purchases, err := s.accounts.Purchases(ctx, account)
	if err != nil {
		return false, fmt.Errorf("%s: purchases: %w", op, err)
	}

	for _, roleID := range RolesFor(purchases) {
		if err := s.roles.GuildMemberRoleAdd(guildID, userID, roleID); err != nil {
			return true, fmt.Errorf("%s: add role %s: %w", op, roleID, err)
		}
	}

	s.log.Debug("assigned product roles", sl.Guild(guildID), sl.User(userID))
	return true, nil
}

// Verify выдаёт роль верификации, если пользователь привязан.
func (s *Service) Verify(ctx context.Context, guildID, userID string) (bool, error) {
	const op = "services.roles.Verify"

	id, err := discordid.Parse(userID)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	account, err := s.accounts.Lookup(ctx, id)
	if err != nil {
		return false, fmt.Errorf("%s: lookup: %w", op, err)
	}
	if account == nil {
		return false, nil
	}

	if err := s.roles.GuildMemberRoleAdd(guildID, userID, models.VerifiedRoleID); err != nil {
		return true, fmt.Errorf("%s: add verified role: %w", op, err)
	}
	return true, nil
}
