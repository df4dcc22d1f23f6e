// Package response содержит вспомогательные функции для формирования
// ответов на взаимодействия Discord. Все ответы бота эфемерные:
// их видит только вызвавший команду пользователь.
package response

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// Responder отправляет ответ на взаимодействие. Реализуется *discordgo.Session.
type Responder interface {
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
}

// NotLinkedForRoles — ответ командам ролей для непривязанного пользователя.
const NotLinkedForRoles = "**You are not linked.** Linking your account at <https://leystryku.support/> is required before you can receive support roles."

// Ephemeral возвращает текстовый эфемерный ответ.
func Ephemeral(content string) *discordgo.InteractionResponse {
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags:   discordgo.MessageFlagsEphemeral,
			Content: content,
		},
	}
}

// EphemeralEmbed возвращает эфемерный ответ с одним эмбедом.
func EphemeralEmbed(embed *discordgo.MessageEmbed) *discordgo.InteractionResponse {
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags:  discordgo.MessageFlagsEphemeral,
			Embeds: []*discordgo.MessageEmbed{embed},
		},
	}
}

// Send отправляет ответ и оборачивает ошибку платформы.
func Send(r Responder, i *discordgo.InteractionCreate, resp *discordgo.InteractionResponse) error {
	if err := r.InteractionRespond(i.Interaction, resp); err != nil {
		return fmt.Errorf("send interaction response: %w", err)
	}
	return nil
}

// Mention возвращает упоминание пользователя по идентификатору.
func Mention(userID string) string {
	return "<@" + userID + ">"
}

// Tag возвращает отображаемое имя пользователя: "name#1234" или просто "name"
// для аккаунтов без дискриминатора.
func Tag(u *discordgo.User) string {
	if u.Discriminator == "" || u.Discriminator == "0" {
		return u.Username
	}
	return u.Username + "#" + u.Discriminator
}

// Mark возвращает галочку или крестик.
func Mark(ok bool) string {
	if ok {
		return "✅"
	}
	return "❌"
}
