package linkbot

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/bwmarrin/discordgo"
)

// ErrRegistry — таблица команд не согласована с их описаниями.
var ErrRegistry = errors.New("inconsistent command registry")

// Command — обработчик одной slash-команды.
type Command interface {
	Definition() *discordgo.ApplicationCommand
	Handle(ctx context.Context, i *discordgo.InteractionCreate) error
}

// Registry — неизменяемая таблица команд по имени.
type Registry map[string]Command

// NewRegistry строит таблицу из обработчиков и проверяет её.
func NewRegistry(cmds ...Command) (Registry, error) {
	const op = "linkbot.NewRegistry"

	r := make(Registry, len(cmds))
	for _, cmd := range cmds {
		name := cmd.Definition().Name
		if _, ok := r[name]; ok {
			return nil, fmt.Errorf("%s: %w: duplicate command %q", op, ErrRegistry, name)
		}
		r[name] = cmd
	}
	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return r, nil
}

// Validate проверяет, что каждый ключ совпадает с именем в описании команды.
func (r Registry) Validate() error {
	for key, cmd := range r {
		if cmd == nil {
			return fmt.Errorf("%w: command %q has no handler", ErrRegistry, key)
		}
		def := cmd.Definition()
		if def == nil || def.Name != key {
			return fmt.Errorf("%w: key %q does not match its definition", ErrRegistry, key)
		}
	}
	return nil
}

// Definitions возвращает описания команд, упорядоченные по имени.
func (r Registry) Definitions() []*discordgo.ApplicationCommand {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)

	defs := make([]*discordgo.ApplicationCommand, 0, len(names))
	for _, name := range names {
		defs = append(defs, r[name].Definition())
	}
	return defs
}

// Matches проверяет, что зарегистрированный в Discord набор команд
// совпадает с таблицей.
func (r Registry) Matches(registered []*discordgo.ApplicationCommand) error {
	seen := make(map[string]bool, len(registered))
	for _, cmd := range registered {
		if _, ok := r[cmd.Name]; !ok {
			return fmt.Errorf("%w: unexpected registered command %q", ErrRegistry, cmd.Name)
		}
		if seen[cmd.Name] {
			return fmt.Errorf("%w: command %q registered twice", ErrRegistry, cmd.Name)
		}
		seen[cmd.Name] = true
	}
	for name := range r {
		if !seen[name] {
			return fmt.Errorf("%w: command %q was not registered", ErrRegistry, name)
		}
	}
	return nil
}

// Registrar перезаписывает набор команд приложения. Реализуется *discordgo.Session.
type Registrar interface {
	ApplicationCommandBulkOverwrite(appID, guildID string, commands []*discordgo.ApplicationCommand, options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error)
}

// Register публикует команды таблицы: глобально при пустом guildID,
// иначе на одном сервере.
func Register(registrar Registrar, appID, guildID string, r Registry) error {
	const op = "linkbot.Register"

	registered, err := registrar.ApplicationCommandBulkOverwrite(appID, guildID, r.Definitions())
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := r.Matches(registered); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
