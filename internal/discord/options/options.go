// Package options извлекает параметры slash-команд из взаимодействия.
package options

import (
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

var (
	// ErrMissingTarget — у команды нет обязательного параметра-пользователя.
	ErrMissingTarget = errors.New("command target is missing")
	// ErrNotUser — параметр есть, но это не пользователь.
	ErrNotUser = errors.New("command target is not a user")
	// ErrNoMember — команда вызвана не на сервере.
	ErrNoMember = errors.New("interaction has no guild member")
)

// TargetUser возвращает пользователя из параметра name. Данные пользователя
// берутся из resolved-части взаимодействия, если Discord их прислал.
func TargetUser(i *discordgo.InteractionCreate, name string) (*discordgo.User, error) {
	data := i.ApplicationCommandData()

	for _, opt := range data.Options {
		if opt.Name != name {
			continue
		}
		if opt.Type != discordgo.ApplicationCommandOptionUser {
			return nil, fmt.Errorf("%w: option %q has type %d", ErrNotUser, name, opt.Type)
		}
		id, ok := opt.Value.(string)
		if !ok || id == "" {
			return nil, fmt.Errorf("%w: option %q has no user id", ErrNotUser, name)
		}
		if data.Resolved != nil {
			if u, ok := data.Resolved.Users[id]; ok && u != nil {
				return u, nil
			}
		}
		return &discordgo.User{ID: id}, nil
	}
	return nil, fmt.Errorf("%w: option %q", ErrMissingTarget, name)
}

// Invoker возвращает пользователя, вызвавшего команду.
func Invoker(i *discordgo.InteractionCreate) (*discordgo.User, error) {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User, nil
	}
	if i.User != nil {
		return i.User, nil
	}
	return nil, ErrMissingTarget
}

// Member возвращает участника сервера, вызвавшего команду.
func Member(i *discordgo.InteractionCreate) (*discordgo.Member, error) {
	if i.GuildID == "" || i.Member == nil || i.Member.User == nil {
		return nil, ErrNoMember
	}
	return i.Member, nil
}
