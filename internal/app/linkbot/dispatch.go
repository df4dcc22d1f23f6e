package linkbot

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/magabrotheeeer/linkbot/internal/discord/options"
	"github.com/magabrotheeeer/linkbot/internal/lib/sl"
	"github.com/magabrotheeeer/linkbot/internal/metrics"
	"github.com/magabrotheeeer/linkbot/internal/reporter"
)

// Recorder учитывает обработанные команды.
type Recorder interface {
	CommandHandled(command, result string, took time.Duration)
}

// Dispatcher направляет взаимодействия обработчикам из таблицы.
type Dispatcher struct {
	log      *slog.Logger
	registry Registry
	reporter reporter.Reporter
	recorder Recorder
}

// NewDispatcher создает новый Dispatcher.
func NewDispatcher(log *slog.Logger, registry Registry, rep reporter.Reporter, recorder Recorder) *Dispatcher {
	return &Dispatcher{
		log:      log,
		registry: registry,
		reporter: rep,
		recorder: recorder,
	}
}

// Dispatch обрабатывает одно взаимодействие. Всё, кроме slash-команд,
// игнорируется. Ошибки обработчика логируются и уходят в трекер.
func (d *Dispatcher) Dispatch(ctx context.Context, i *discordgo.InteractionCreate) {
	const op = "linkbot.Dispatch"

	if i == nil || i.Interaction == nil || i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	name := i.ApplicationCommandData().Name
	log := d.log.With(slog.String("op", op), sl.Command(name), sl.Guild(i.GuildID))
	if user, err := options.Invoker(i); err == nil {
		log = log.With(sl.User(user.ID))
	}

	cmd, ok := d.registry[name]
	if !ok {
		log.Warn("unknown command")
		d.recorder.CommandHandled(name, metrics.ResultUnknown, 0)
		return
	}

	start := time.Now()
	err := d.run(ctx, cmd, i)
	took := time.Since(start)

	if err != nil {
		log.Error("command failed", sl.Err(err))
		d.reporter.Capture(err, map[string]string{
			"command": name,
			"guild":   i.GuildID,
		})
		d.recorder.CommandHandled(name, metrics.ResultError, took)
		return
	}

	log.Debug("command handled", slog.Duration("took", took))
	d.recorder.CommandHandled(name, metrics.ResultOK, took)
}

func (d *Dispatcher) run(ctx context.Context, cmd Command, i *discordgo.InteractionCreate) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic: %v", rec)
		}
	}()
	return cmd.Handle(ctx, i)
}
