// Package discordtest содержит заготовки взаимодействий и моки Discord для тестов.
package discordtest

import (
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/mock"
)

// GuildID — сервер, на котором «вызываются» тестовые команды.
const GuildID = "100000000000000001"

// User возвращает пользователя с заданным id.
func User(id, name string) *discordgo.User {
	return &discordgo.User{ID: id, Username: name, Discriminator: "0"}
}

// Command собирает взаимодействие slash-команды, вызванной invoker на тестовом сервере.
// Пользователи из targets попадают в параметры (по имени) и в resolved-часть.
func Command(name string, invoker *discordgo.User, targets map[string]*discordgo.User) *discordgo.InteractionCreate {
	data := discordgo.ApplicationCommandInteractionData{
		ID:   "200000000000000001",
		Name: name,
		Resolved: &discordgo.ApplicationCommandInteractionDataResolved{
			Users: map[string]*discordgo.User{},
		},
	}
	for optName, u := range targets {
		data.Options = append(data.Options, &discordgo.ApplicationCommandInteractionDataOption{
			Name:  optName,
			Type:  discordgo.ApplicationCommandOptionUser,
			Value: u.ID,
		})
		data.Resolved.Users[u.ID] = u
	}

	return &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		ID:      "300000000000000001",
		Type:    discordgo.InteractionApplicationCommand,
		GuildID: GuildID,
		Member:  &discordgo.Member{GuildID: GuildID, User: invoker},
		Data:    data,
	}}
}

// DirectCommand собирает взаимодействие, вызванное в личных сообщениях.
func DirectCommand(name string, invoker *discordgo.User) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		ID:   "300000000000000002",
		Type: discordgo.InteractionApplicationCommand,
		User: invoker,
		Data: discordgo.ApplicationCommandInteractionData{Name: name},
	}}
}

// Responder — мок отправки ответов, запоминающий отправленные ответы.
type Responder struct {
	mock.Mock

	mu        sync.Mutex
	responses []*discordgo.InteractionResponse
}

// InteractionRespond реализует response.Responder.
func (r *Responder) InteractionRespond(i *discordgo.Interaction, resp *discordgo.InteractionResponse, _ ...discordgo.RequestOption) error {
	r.mu.Lock()
	r.responses = append(r.responses, resp)
	r.mu.Unlock()
	return r.Called(i, resp).Error(0)
}

// Responses возвращает все отправленные ответы.
func (r *Responder) Responses() []*discordgo.InteractionResponse {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*discordgo.InteractionResponse(nil), r.responses...)
}

// Contents возвращает текст всех отправленных ответов.
func (r *Responder) Contents() []string {
	var out []string
	for _, resp := range r.Responses() {
		if resp.Data != nil {
			out = append(out, resp.Data.Content)
		}
	}
	return out
}

// OK возвращает Responder, успешно принимающий любой ответ.
func OK() *Responder {
	r := new(Responder)
	r.On("InteractionRespond", mock.Anything, mock.Anything).Return(nil)
	return r
}

// RoleAdder — мок выдачи ролей.
type RoleAdder struct{ mock.Mock }

// GuildMemberRoleAdd реализует roles.RoleAdder.
func (m *RoleAdder) GuildMemberRoleAdd(guildID, userID, roleID string, _ ...discordgo.RequestOption) error {
	return m.Called(guildID, userID, roleID).Error(0)
}
