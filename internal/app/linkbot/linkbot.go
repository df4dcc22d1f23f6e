// Package linkbot собирает бота: Discord-сессию, таблицу команд,
// клиенты внешних API и служебный HTTP-сервер.
package linkbot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/magabrotheeeer/linkbot/internal/commerce"
	"github.com/magabrotheeeer/linkbot/internal/config"
	"github.com/magabrotheeeer/linkbot/internal/discord/events/member"
	"github.com/magabrotheeeer/linkbot/internal/discord/handlers/coupon"
	"github.com/magabrotheeeer/linkbot/internal/discord/handlers/forceroles"
	"github.com/magabrotheeeer/linkbot/internal/discord/handlers/gmodstore"
	"github.com/magabrotheeeer/linkbot/internal/discord/handlers/purchases"
	"github.com/magabrotheeeer/linkbot/internal/discord/handlers/roles"
	"github.com/magabrotheeeer/linkbot/internal/discord/handlers/steam"
	"github.com/magabrotheeeer/linkbot/internal/discord/handlers/unlink"
	"github.com/magabrotheeeer/linkbot/internal/discord/response"
	"github.com/magabrotheeeer/linkbot/internal/lib/restclient"
	"github.com/magabrotheeeer/linkbot/internal/lib/sl"
	"github.com/magabrotheeeer/linkbot/internal/linkclient"
	"github.com/magabrotheeeer/linkbot/internal/metrics"
	"github.com/magabrotheeeer/linkbot/internal/reporter"
	couponservice "github.com/magabrotheeeer/linkbot/internal/services/coupon"
	roleservice "github.com/magabrotheeeer/linkbot/internal/services/roles"
)

// Intents — события шлюза, нужные боту.
const Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMembers

// Collaborators — внешние API, с которыми работают команды.
type Collaborators struct {
	Links    *linkclient.Client
	Commerce *commerce.Client
}

// NewCollaborators создаёт клиенты link-сервиса и GmodStore по конфигу.
func NewCollaborators(cfg *config.Config) *Collaborators {
	var linkOpts []linkclient.Option
	if cfg.UnlinkMode == config.UnlinkByDiscord {
		linkOpts = append(linkOpts, linkclient.WithDeleteByDiscordID())
	}

	return &Collaborators{
		Links: linkclient.New(
			restclient.New(cfg.LinkAPI.URL, cfg.LinkAPI.Token),
			linkOpts...,
		),
		Commerce: commerce.New(
			restclient.New(cfg.Commerce.URL, cfg.Commerce.Token, restclient.WithRateLimit(cfg.RateLimit)),
		),
	}
}

// Session — методы Discord, которыми пользуются команды. Реализуется *discordgo.Session.
type Session interface {
	response.Responder
	roleservice.RoleAdder
}

// Commands строит таблицу всех slash-команд бота.
func Commands(log *slog.Logger, session Session, c *Collaborators) (Registry, *roleservice.Service, error) {
	roleSvc := roleservice.NewService(c.Links, session, log)
	couponSvc := couponservice.NewService(c.Links, c.Commerce, log)

	registry, err := NewRegistry(
		coupon.New(log, session, couponSvc),
		forceroles.New(log, session, roleSvc),
		roles.New(log, session, roleSvc),
		gmodstore.New(log, session, c.Links),
		steam.New(log, session, c.Links),
		purchases.New(log, session, c.Links),
		unlink.New(log, session, c.Links),
	)
	if err != nil {
		return nil, nil, err
	}
	return registry, roleSvc, nil
}

type App struct {
	ctx        context.Context
	cfg        *config.Config
	logger     *slog.Logger
	session    *discordgo.Session
	server     *http.Server
	registry   Registry
	dispatcher *Dispatcher
	joins      *member.Handler
	reporter   reporter.Reporter
	connected  atomic.Bool
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "linkbot.New"

	session, err := discordgo.New("Bot " + cfg.Discord.Token)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	session.Identify.Intents = Intents

	rep, err := reporter.New(cfg.Sentry.DSN, cfg.Env)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	registry, roleSvc, err := Commands(logger, session, NewCollaborators(cfg))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	a := &App{
		ctx:        ctx,
		cfg:        cfg,
		logger:     logger,
		session:    session,
		registry:   registry,
		dispatcher: NewDispatcher(logger, registry, rep, m),
		joins:      member.New(logger, roleSvc, m),
		reporter:   rep,
	}

	if cfg.Ops.Address != "" {
		router := chi.NewRouter()
		RegisterRoutes(router, logger, reg, a)
		a.server = &http.Server{
			Addr:              cfg.Ops.Address,
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
		}
	}

	session.AddHandler(a.onReady)
	session.AddHandler(a.onDisconnect)
	session.AddHandler(a.onInteraction)
	session.AddHandler(a.onMemberAdd)

	return a, nil
}

// Connected сообщает, получен ли Ready от шлюза.
func (a *App) Connected() bool {
	return a.connected.Load()
}

func (a *App) onReady(s *discordgo.Session, r *discordgo.Ready) {
	const op = "linkbot.onReady"
	log := a.logger.With(slog.String("op", op))

	a.connected.Store(true)
	log.Info("connected to discord", slog.String("user", r.User.Username), slog.Int("guilds", len(r.Guilds)))

	if err := Register(s, r.User.ID, a.cfg.Discord.GuildID, a.registry); err != nil {
		log.Error("failed to register commands", sl.Err(err))
		a.reporter.Capture(err, map[string]string{"op": op})
		return
	}
	log.Info("commands registered", slog.Int("count", len(a.registry)), sl.Guild(a.cfg.Discord.GuildID))
}

func (a *App) onDisconnect(_ *discordgo.Session, _ *discordgo.Disconnect) {
	a.connected.Store(false)
	a.logger.Warn("disconnected from discord")
}

func (a *App) onInteraction(_ *discordgo.Session, i *discordgo.InteractionCreate) {
	a.dispatcher.Dispatch(a.ctx, i)
}

func (a *App) onMemberAdd(_ *discordgo.Session, m *discordgo.GuildMemberAdd) {
	a.joins.Handle(a.ctx, m)
}

func (a *App) Run(ctx context.Context) error {
	const op = "linkbot.Run"

	if err := a.session.Open(); err != nil {
		return fmt.Errorf("%s: open discord session: %w", op, err)
	}

	errCh := make(chan error, 1)
	if a.server != nil {
		go func() {
			a.logger.Info("ops server starting on", slog.String("address", a.server.Addr))
			err := a.server.ListenAndServe()
			if errors.Is(err, http.ErrServerClosed) {
				errCh <- nil
			} else {
				errCh <- err
			}
		}()
	}

	var runErr error
	select {
	case err := <-errCh:
		runErr = err
	case <-ctx.Done():
	}

	a.logger.Info("shutting down gracefully")
	if a.server != nil {
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := a.server.Shutdown(timeoutCtx); err != nil && runErr == nil {
			runErr = err
		}
	}
	if err := a.session.Close(); err != nil && runErr == nil {
		runErr = fmt.Errorf("%s: close discord session: %w", op, err)
	}
	a.reporter.Flush(2 * time.Second)
	return runErr
}
