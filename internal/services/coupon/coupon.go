// Package coupon содержит бизнес-логику выдачи купона на LSAC владельцам SwiftAC.
package coupon

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lithammer/shortuuid/v4"

	"github.com/magabrotheeeer/linkbot/internal/commerce"
	"github.com/magabrotheeeer/linkbot/internal/models"
)

// Параметры выпускаемого купона.
const (
	Percent = 25
	MaxUses = 1
)

// Outcome — итог обработки запроса купона.
type Outcome int

const (
	NotLinked Outcome = iota
	AlreadyOwned
	MissingPrerequisite
	NoStoreAccount
	Existing
	Created
)

// Result — итог и, для Existing и Created, код купона.
type Result struct {
	Outcome Outcome
	Code    string
}

// Accounts описывает нужные методы link-сервиса.
type Accounts interface {
	Lookup(ctx context.Context, discordID uint64) (*models.LinkedAccount, error)
	Purchases(ctx context.Context, account *models.LinkedAccount) (models.Purchases, error)
}

// Coupons описывает нужные методы купонного API.
type Coupons interface {
	ActiveCoupon(ctx context.Context, account *models.LinkedAccount, productID string) (*models.Coupon, error)
	CreateCoupon(ctx context.Context, productID string, builder *commerce.CouponBuilder) (*models.Coupon, error)
}

// Service выдаёт купоны.
type Service struct {
	accounts Accounts
	coupons  Coupons
	log      *slog.Logger
	newCode  func() string
	now      func() time.Time
}

// Option настраивает Service.
type Option func(*Service)

// WithCodeGenerator подменяет генератор кодов купонов.
func WithCodeGenerator(gen func() string) Option {
	return func(s *Service) { s.newCode = gen }
}

// WithClock подменяет источник текущего времени.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService создаёт сервис выдачи купонов.
func NewService(accounts Accounts, coupons Coupons, log *slog.Logger, opts ...Option) *Service {
	s := &Service{
		accounts: accounts,
		coupons:  coupons,
		log:      log,
		newCode:  shortuuid.New,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Issue определяет, положен ли пользователю купон, и возвращает
// действующий купон либо выпускает новый.
func (s *Service) Issue(ctx context.Context, discordID uint64) (Result, error) {
	const op = "services.coupon.Issue"

	account, err := s.accounts.Lookup(ctx, discordID)
	if err != nil {
		return Result{}, fmt.Errorf("%s: lookup: %w", op, err)
	}
	if account == nil {
		return Result{Outcome: NotLinked}, nil
	}

	purchases, err := s.accounts.Purchases(ctx, account)
	if err != nil {
		return Result{}, fmt.Errorf("%s: purchases: %w", op, err)
	}
	if purchases.LSAC {
		return Result{Outcome: AlreadyOwned}, nil
	}
	if !purchases.SwiftAC {
		return Result{Outcome: MissingPrerequisite}, nil
	}

	storeID, ok := account.StoreID()
	if !ok {
		return Result{Outcome: NoStoreAccount}, nil
	}

	active, err := s.coupons.ActiveCoupon(ctx, account, models.LSACProductID)
	if err != nil {
		return Result{}, fmt.Errorf("%s: active coupon: %w", op, err)
	}
	if active != nil {
		return Result{Outcome: Existing, Code: active.Code}, nil
	}

	builder, err := commerce.NewCouponBuilder(s.newCode(), Percent, MaxUses, &storeID, s.now())
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", op, err)
	}

	created, err := s.coupons.CreateCoupon(ctx, models.LSACProductID, builder)
	if err != nil {
		return Result{}, fmt.Errorf("%s: create coupon: %w", op, err)
	}

	s.log.Info("created coupon",
		slog.String("coupon_id", created.ID),
		slog.String("store_id", storeID),
		slog.Time("expires_at", created.ExpiresAt),
	)
	return Result{Outcome: Created, Code: created.Code}, nil
}
