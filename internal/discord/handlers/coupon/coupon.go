// Package coupon реализует команду /coupon: владелец SwiftAC получает
// одноразовый купон на LSAC.
package coupon

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/magabrotheeeer/linkbot/internal/discord/options"
	"github.com/magabrotheeeer/linkbot/internal/discord/response"
	"github.com/magabrotheeeer/linkbot/internal/lib/discordid"
	"github.com/magabrotheeeer/linkbot/internal/lib/sl"
	couponservice "github.com/magabrotheeeer/linkbot/internal/services/coupon"
)

// Name — имя команды.
const Name = "coupon"

// Service описывает бизнес-логику выдачи купона.
type Service interface {
	Issue(ctx context.Context, discordID uint64) (couponservice.Result, error)
}

// Handler обрабатывает /coupon.
type Handler struct {
	log       *slog.Logger
	responder response.Responder
	service   Service
}

// New создает новый Handler.
func New(log *slog.Logger, responder response.Responder, service Service) *Handler {
	return &Handler{
		log:       log,
		responder: responder,
		service:   service,
	}
}

// Definition описывает команду для регистрации в Discord.
func (h *Handler) Definition() *discordgo.ApplicationCommand {
	dm := false
	return &discordgo.ApplicationCommand{
		Name:         Name,
		Description:  "Generate a coupon for LSAC.",
		DMPermission: &dm,
	}
}

// Handle выдаёт купон вызвавшему пользователю.
func (h *Handler) Handle(ctx context.Context, i *discordgo.InteractionCreate) error {
	const op = "handlers.coupon.Handle"

	user, err := options.Invoker(i)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	log := h.log.With(slog.String("op", op), sl.User(user.ID))

	id, err := discordid.Parse(user.ID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	res, err := h.service.Issue(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Debug("coupon request handled", slog.Int("outcome", int(res.Outcome)))
	return response.Send(h.responder, i, response.Ephemeral(reply(res)))
}

func reply(res couponservice.Result) string {
	switch res.Outcome {
	case couponservice.NotLinked:
		return "You are not linked"
	case couponservice.AlreadyOwned:
		return "You already own LSAC!"
	case couponservice.MissingPrerequisite:
		return "You must own SwiftAC to get coupon for LSAC!"
	case couponservice.NoStoreAccount:
		return "You do not have a registered GmodStore account."
	case couponservice.Existing:
		return fmt.Sprintf("You already have a valid coupon code, use code `%s`", res.Code)
	default:
		return fmt.Sprintf("Use code: `%s`, it expires in 7 days.", res.Code)
	}
}
