// Package discordid разбирает идентификаторы Discord (snowflake) из строкового вида.
package discordid

import (
	"errors"
	"fmt"

	"github.com/bwmarrin/snowflake"
)

// ErrInvalid — строка не является идентификатором Discord.
var ErrInvalid = errors.New("invalid discord id")

// Parse переводит строковый snowflake в число, которое ждёт link-сервис.
func Parse(s string) (uint64, error) {
	id, err := snowflake.ParseString(s)
	if err != nil {
		return 0, fmt.Errorf("%w %q: %v", ErrInvalid, s, err)
	}
	if id.Int64() <= 0 {
		return 0, fmt.Errorf("%w %q", ErrInvalid, s)
	}
	return uint64(id.Int64()), nil
}
