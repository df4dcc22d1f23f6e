// Package health отдаёт состояние подключения бота к Discord.
package health

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/linkbot/internal/http/response"
)

// Probe сообщает, подключён ли бот к шлюзу Discord.
type Probe interface {
	Connected() bool
}

type Handler struct {
	log   *slog.Logger
	probe Probe
}

func New(log *slog.Logger, probe Probe) *Handler {
	return &Handler{
		log:   log,
		probe: probe,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.health"

	status := map[string]any{"discord": h.probe.Connected()}
	if !h.probe.Connected() {
		h.log.Warn("health check failed", slog.String("op", op))
		render.Status(r, http.StatusServiceUnavailable)
		render.JSON(w, r, response.ErrorWithData("discord gateway is not connected", status))
		return
	}

	render.JSON(w, r, response.OKWithData(status))
}
