package coupon

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/linkbot/internal/commerce"
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

type CouponsMock struct{ mock.Mock }

func (m *CouponsMock) ActiveCoupon(ctx context.Context, account *models.LinkedAccount, productID string) (*models.Coupon, error) {
	args := m.Called(ctx, account, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Coupon), args.Error(1)
}

func (m *CouponsMock) CreateCoupon(ctx context.Context, productID string, builder *commerce.CouponBuilder) (*models.Coupon, error) {
	args := m.Called(ctx, productID, builder)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Coupon), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

var now = time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

func linked(storeID string) *models.LinkedAccount {
	a := &models.LinkedAccount{ID: uuid.New(), SteamID: 76561198000000001}
	if storeID != "" {
		a.GmodStoreID = &storeID
	}
	return a
}

func TestService_Issue(t *testing.T) {
	account := linked("store-1")
	dbErr := errors.New("link service down")

	tests := []struct {
		name       string
		setupMocks func(a *AccountsMock, c *CouponsMock)
		want       Result
		wantErr    bool
	}{
		{
			name: "пользователь не привязан",
			setupMocks: func(a *AccountsMock, _ *CouponsMock) {
				a.On("Lookup", mock.Anything, uint64(42)).Return(nil, nil).Once()
			},
			want: Result{Outcome: NotLinked},
		},
		{
			name: "LSAC уже куплен — API купонов не вызывается",
			setupMocks: func(a *AccountsMock, _ *CouponsMock) {
				a.On("Lookup", mock.Anything, uint64(42)).Return(account, nil).Once()
				a.On("Purchases", mock.Anything, account).Return(models.Purchases{LSAC: true, SwiftAC: true}, nil).Once()
			},
			want: Result{Outcome: AlreadyOwned},
		},
		{
			name: "нет SwiftAC",
			setupMocks: func(a *AccountsMock, _ *CouponsMock) {
				a.On("Lookup", mock.Anything, uint64(42)).Return(account, nil).Once()
				a.On("Purchases", mock.Anything, account).Return(models.Purchases{HitReg: true}, nil).Once()
			},
			want: Result{Outcome: MissingPrerequisite},
		},
		{
			name: "нет аккаунта GmodStore",
			setupMocks: func(a *AccountsMock, _ *CouponsMock) {
				noStore := linked("")
				a.On("Lookup", mock.Anything, uint64(42)).Return(noStore, nil).Once()
				a.On("Purchases", mock.Anything, noStore).Return(models.Purchases{SwiftAC: true}, nil).Once()
			},
			want: Result{Outcome: NoStoreAccount},
		},
		{
			name: "уже есть действующий купон",
			setupMocks: func(a *AccountsMock, c *CouponsMock) {
				a.On("Lookup", mock.Anything, uint64(42)).Return(account, nil).Once()
				a.On("Purchases", mock.Anything, account).Return(models.Purchases{SwiftAC: true}, nil).Once()
				c.On("ActiveCoupon", mock.Anything, account, models.LSACProductID).
					Return(&models.Coupon{Code: "EXISTING"}, nil).Once()
			},
			want: Result{Outcome: Existing, Code: "EXISTING"},
		},
		{
			name: "выпуск нового купона",
			setupMocks: func(a *AccountsMock, c *CouponsMock) {
				a.On("Lookup", mock.Anything, uint64(42)).Return(account, nil).Once()
				a.On("Purchases", mock.Anything, account).Return(models.Purchases{SwiftAC: true}, nil).Once()
				c.On("ActiveCoupon", mock.Anything, account, models.LSACProductID).Return(nil, nil).Once()
				c.On("CreateCoupon", mock.Anything, models.LSACProductID, mock.MatchedBy(func(b *commerce.CouponBuilder) bool {
					return b.Code == "GENERATED" &&
						b.Percent == 25 &&
						b.MaxUses == 1 &&
						b.BoundUserID != nil && *b.BoundUserID == "store-1" &&
						b.ExpiresAt.Equal(now.Add(commerce.CouponLifetime))
				})).Return(&models.Coupon{ID: "c1", Code: "GENERATED"}, nil).Once()
			},
			want: Result{Outcome: Created, Code: "GENERATED"},
		},
		{
			name: "ошибка link-сервиса",
			setupMocks: func(a *AccountsMock, _ *CouponsMock) {
				a.On("Lookup", mock.Anything, uint64(42)).Return(nil, dbErr).Once()
			},
			wantErr: true,
		},
		{
			name: "ошибка получения покупок",
			setupMocks: func(a *AccountsMock, _ *CouponsMock) {
				a.On("Lookup", mock.Anything, uint64(42)).Return(account, nil).Once()
				a.On("Purchases", mock.Anything, account).Return(models.Purchases{}, dbErr).Once()
			},
			wantErr: true,
		},
		{
			name: "ошибка создания купона",
			setupMocks: func(a *AccountsMock, c *CouponsMock) {
				a.On("Lookup", mock.Anything, uint64(42)).Return(account, nil).Once()
				a.On("Purchases", mock.Anything, account).Return(models.Purchases{SwiftAC: true}, nil).Once()
				c.On("ActiveCoupon", mock.Anything, account, models.LSACProductID).Return(nil, nil).Once()
				c.On("CreateCoupon", mock.Anything, models.LSACProductID, mock.Anything).Return(nil, dbErr).Once()
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accounts := new(AccountsMock)
			coupons := new(CouponsMock)
			tt.setupMocks(accounts, coupons)

			svc := NewService(accounts, coupons, newNoopLogger(),
				WithCodeGenerator(func() string { return "GENERATED" }),
				WithClock(func() time.Time { return now }),
			)

			got, err := svc.Issue(context.Background(), 42)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}

			accounts.AssertExpectations(t)
			coupons.AssertExpectations(t)
		})
	}
}

func TestService_Issue_NotLinkedIsIdempotent(t *testing.T) {
	accounts := new(AccountsMock)
	coupons := new(CouponsMock)
	accounts.On("Lookup", mock.Anything, uint64(42)).Return(nil, nil).Twice()

	svc := NewService(accounts, coupons, newNoopLogger())

	first, err := svc.Issue(context.Background(), 42)
	require.NoError(t, err)
	second, err := svc.Issue(context.Background(), 42)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	accounts.AssertExpectations(t)
	coupons.AssertNotCalled(t, "ActiveCoupon", mock.Anything, mock.Anything, mock.Anything)
	coupons.AssertNotCalled(t, "CreateCoupon", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_DefaultCodeGenerator(t *testing.T) {
	svc := NewService(new(AccountsMock), new(CouponsMock), newNoopLogger())

	a, b := svc.newCode(), svc.newCode()
	assert.NotEmpty(t, a)
	assert.LessOrEqual(t, len(a), 64)
	assert.NotEqual(t, a, b)
}
