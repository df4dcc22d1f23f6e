// Package sl содержит вспомогательные функции для работы с логгером slog.
// Основная цель — единообразные ключи структурированных полей лога
// для ошибок и сущностей Discord.
package sl

import (
	"log/slog"
	"strings"
)

// Err возвращает slog.Attr с ключом "error" и значением текста ошибки.
//
// Пример:
//
//	log.Error("failed to do something", sl.Err(err))
func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}

// Command возвращает поле с именем slash-команды.
func Command(name string) slog.Attr {
	return slog.String("command", name)
}

// User возвращает поле с идентификатором пользователя Discord.
func User(id string) slog.Attr {
	return slog.String("user_id", id)
}

// Guild возвращает поле с идентификатором сервера Discord.
func Guild(id string) slog.Attr {
	return slog.String("guild_id", id)
}

// Level переводит текстовый уровень логирования в slog.Level.
// Неизвестные значения трактуются как info.
func Level(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
