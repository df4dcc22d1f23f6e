// Package member обрабатывает вход участника на сервер.
package member

import (
	"context"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/magabrotheeeer/linkbot/internal/lib/sl"
)

// Verifier выдаёт роль верификации привязанному пользователю.
type Verifier interface {
	Verify(ctx context.Context, guildID, userID string) (bool, error)
}

// Recorder учитывает вход участника в метриках.
type Recorder interface {
	MemberJoined(linked bool)
}

// Handler реагирует на GuildMemberAdd.
type Handler struct {
	log      *slog.Logger
	verifier Verifier
	recorder Recorder
}

// New создает новый Handler.
func New(log *slog.Logger, verifier Verifier, recorder Recorder) *Handler {
	return &Handler{log: log, verifier: verifier, recorder: recorder}
}

// Handle выдаёт роль верификации, если вошедший участник привязан.
// Ошибки только логируются.
func (h *Handler) Handle(ctx context.Context, m *discordgo.GuildMemberAdd) {
	const op = "events.member.Handle"

	if m == nil || m.Member == nil || m.User == nil {
		return
	}
	log := h.log.With(slog.String("op", op), sl.Guild(m.GuildID), sl.User(m.User.ID))

	linked, err := h.verifier.Verify(ctx, m.GuildID, m.User.ID)
	if h.recorder != nil {
		h.recorder.MemberJoined(linked)
	}
	if err != nil {
		log.Error("failed to verify joined member", sl.Err(err))
		return
	}
	if linked {
		log.Info("verified role granted")
	}
}
