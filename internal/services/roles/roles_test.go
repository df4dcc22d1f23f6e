package roles

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/linkbot/internal/models"
)

type AccountsMock struct{ mock.Mock }

func (m *AccountsMock) Lookup(ctx context.Context, discordID uint64) (*models.LinkedAccount, error) {
	args := m.Called(ctx, discordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LinkedAccount), args.Error(1)
}

func (m *AccountsMock) Purchases(ctx context.Context, account *models.LinkedAccount) (models.Purchases, error) {
	args := m.Called(ctx, account)
	return args.Get(0).(models.Purchases), args.Error(1)
}

type RoleAdderMock struct{ mock.Mock }

func (m *RoleAdderMock) GuildMemberRoleAdd(guildID, userID, roleID string, _ ...discordgo.RequestOption) error {
	return m.Called(guildID, userID, roleID).Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

// purchasesFromMask включает флаг i-го продукта каталога, если установлен бит i.
func purchasesFromMask(mask int) models.Purchases {
	return models.Purchases{
		LSAC:        mask&(1<<0) != 0,
		SwiftAC:     mask&(1<<1) != 0,
		HitReg:      mask&(1<<2) != 0,
		ScreenGrabs: mask&(1<<3) != 0,
		WorkshopDL:  mask&(1<<4) != 0,
		SexyErrors:  mask&(1<<5) != 0,
	}
}

func TestRolesFor_AllCombinations(t *testing.T) {
	for mask := 0; mask < 1<<len(models.Products); mask++ {
		var want []string
		for i, product := range models.Products {
			if mask&(1<<i) != 0 {
				want = append(want, product.RoleID)
			}
		}
		assert.Equal(t, want, RolesFor(purchasesFromMask(mask)), "mask %06b", mask)
	}
}

func TestRolesFor_WorkshopDLUsesOwnFlag(t *testing.T) {
	assert.Equal(t, []string{"889306784551026780"}, RolesFor(models.Purchases{ScreenGrabs: true}))
	assert.Equal(t, []string{"884060628128497716"}, RolesFor(models.Purchases{WorkshopDL: true}))
}

func TestService_Assign(t *testing.T) {
	account := &models.LinkedAccount{ID: uuid.New()}

	t.Run("k флагов — ровно k выдач", func(t *testing.T) {
		for _, mask := range []int{0, 0b000001, 0b100100, 0b111111} {
			accounts := new(AccountsMock)
			adder := new(RoleAdderMock)
			purchases := purchasesFromMask(mask)

			accounts.On("Lookup", mock.Anything, uint64(42)).Return(account, nil).Once()
			accounts.On("Purchases", mock.Anything, account).Return(purchases, nil).Once()
			for _, roleID := range RolesFor(purchases) {
				adder.On("GuildMemberRoleAdd", "guild", "42", roleID).Return(nil).Once()
			}

			linked, err := NewService(accounts, adder, newNoopLogger()).Assign(context.Background(), "guild", "42")
			require.NoError(t, err)
			assert.True(t, linked)

			adder.AssertExpectations(t)
			adder.AssertNumberOfCalls(t, "GuildMemberRoleAdd", len(RolesFor(purchases)))
		}
	})

	t.Run("не привязан — роли не выдаются", func(t *testing.T) {
		accounts := new(AccountsMock)
		adder := new(RoleAdderMock)
		accounts.On("Lookup", mock.Anything, uint64(42)).Return(nil, nil).Once()

		linked, err := NewService(accounts, adder, newNoopLogger()).Assign(context.Background(), "guild", "42")
		require.NoError(t, err)
		assert.False(t, linked)
		adder.AssertNotCalled(t, "GuildMemberRoleAdd", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("ошибка выдачи прерывает остальные", func(t *testing.T) {
		accounts := new(AccountsMock)
		adder := new(RoleAdderMock)
		accounts.On("Lookup", mock.Anything, uint64(42)).Return(account, nil).Once()
		accounts.On("Purchases", mock.Anything, account).
			Return(models.Purchases{LSAC: true, SwiftAC: true, HitReg: true}, nil).Once()
		adder.On("GuildMemberRoleAdd", "guild", "42", "884061162482847765").Return(nil).Once()
		adder.On("GuildMemberRoleAdd", "guild", "42", "884060408946757663").Return(errors.New("missing permissions")).Once()

		linked, err := NewService(accounts, adder, newNoopLogger()).Assign(context.Background(), "guild", "42")
		require.Error(t, err)
		assert.True(t, linked)
		adder.AssertExpectations(t)
		adder.AssertNumberOfCalls(t, "GuildMemberRoleAdd", 2)
	})

	t.Run("невалидный id пользователя", func(t *testing.T) {
		accounts := new(AccountsMock)
		_, err := NewService(accounts, new(RoleAdderMock), newNoopLogger()).Assign(context.Background(), "guild", "bad")
		require.Error(t, err)
		accounts.AssertNotCalled(t, "Lookup", mock.Anything, mock.Anything)
	})

	t.Run("ошибка link-сервиса", func(t *testing.T) {
		accounts := new(AccountsMock)
		accounts.On("Lookup", mock.Anything, uint64(42)).Return(nil, errors.New("down")).Once()

		_, err := NewService(accounts, new(RoleAdderMock), newNoopLogger()).Assign(context.Background(), "guild", "42")
		require.Error(t, err)
	})
}

func TestService_Verify(t *testing.T) {
	account := &models.LinkedAccount{ID: uuid.New()}

	tests := []struct {
		name       string
		setupMocks func(a *AccountsMock, r *RoleAdderMock)
		wantLinked bool
		wantErr    bool
	}{
		{
			name: "привязанный участник получает роль",
			setupMocks: func(a *AccountsMock, r *RoleAdderMock) {
				a.On("Lookup", mock.Anything, uint64(7)).Return(account, nil).Once()
				r.On("GuildMemberRoleAdd", "guild", "7", models.VerifiedRoleID).Return(nil).Once()
			},
			wantLinked: true,
		},
		{
			name: "непривязанный участник остаётся без роли",
			setupMocks: func(a *AccountsMock, _ *RoleAdderMock) {
				a.On("Lookup", mock.Anything, uint64(7)).Return(nil, nil).Once()
			},
		},
		{
			name: "ошибка выдачи роли",
			setupMocks: func(a *AccountsMock, r *RoleAdderMock) {
				a.On("Lookup", mock.Anything, uint64(7)).Return(account, nil).Once()
				r.On("GuildMemberRoleAdd", "guild", "7", models.VerifiedRoleID).Return(errors.New("forbidden")).Once()
			},
			wantLinked: true,
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accounts := new(AccountsMock)
			adder := new(RoleAdderMock)
			tt.setupMocks(accounts, adder)

			linked, err := NewService(accounts, adder, newNoopLogger()).Verify(context.Background(), "guild", "7")
			assert.Equal(t, tt.wantLinked, linked)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			accounts.AssertExpectations(t)
			adder.AssertExpectations(t)
		})
	}
}
