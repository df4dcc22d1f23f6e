package gmodstore

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/linkbot/internal/discord/discordtest"
	"github.com/magabrotheeeer/linkbot/internal/discord/options"
	"github.com/magabrotheeeer/linkbot/internal/models"
)

// AccountsMock реализует интерфейс gmodstore.Accounts
type AccountsMock struct {
	mock.Mock
}

func (m *AccountsMock) Lookup(ctx context.Context, discordID uint64) (*models.LinkedAccount, error) {
	args := m.Called(ctx, discordID)
	acc, _ := args.Get(0).(*models.LinkedAccount)
	return acc, args.Error(1)
}

func TestGmodStoreHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	invoker := discordtest.User("1", "someone")
	target := discordtest.User("42", "target")
	storeID := "76561198000000000"
	empty := ""

	tests := []struct {
		name      string
		account   *models.LinkedAccount
		wantReply string
	}{
		{"есть аккаунт магазина", &models.LinkedAccount{GmodStoreID: &storeID}, "https://www.gmodstore.com/users/76561198000000000"},
		{"нет аккаунта магазина", &models.LinkedAccount{}, "User does not have a registered GmodStore account."},
		{"пустой id магазина", &models.LinkedAccount{GmodStoreID: &empty}, "User does not have a registered GmodStore account."},
		{"не привязан", nil, "User is not linked."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accounts := new(AccountsMock)
			accounts.On("Lookup", mock.Anything, uint64(42)).Return(tt.account, nil).Once()
			responder := discordtest.OK()

			i := discordtest.Command(Name, invoker, map[string]*discordgo.User{"user": target})
			require.NoError(t, New(logger, responder, accounts).Handle(context.Background(), i))

			assert.Equal(t, []string{tt.wantReply}, responder.Contents())
			accounts.AssertExpectations(t)
		})
	}
}

func TestGmodStoreHandler_Errors(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	invoker := discordtest.User("1", "someone")

	t.Run("нет цели", func(t *testing.T) {
		responder := discordtest.OK()
		err := New(logger, responder, new(AccountsMock)).Handle(context.Background(), discordtest.Command(Name, invoker, nil))
		assert.ErrorIs(t, err, options.ErrMissingTarget)
		assert.Empty(t, responder.Responses())
	})

	t.Run("ошибка link-сервиса", func(t *testing.T) {
		accounts := new(AccountsMock)
		accounts.On("Lookup", mock.Anything, uint64(42)).Return(nil, errors.New("boom")).Once()
		responder := discordtest.OK()

		i := discordtest.Command(Name, invoker, map[string]*discordgo.User{"user": discordtest.User("42", "t")})
		assert.Error(t, New(logger, responder, accounts).Handle(context.Background(), i))
		assert.Empty(t, responder.Responses())
	})
}
