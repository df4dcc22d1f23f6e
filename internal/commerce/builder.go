package commerce

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator"
)

// CouponLifetime — срок действия выпускаемого купона.
const CouponLifetime = 7 * 24 * time.Hour

// ErrInvalidCoupon возвращается, если параметры купона нарушают ограничения API.
var ErrInvalidCoupon = errors.New("invalid coupon")

var validate = validator.New()

// CouponBuilder — тело запроса на создание купона.
// Создаётся только через NewCouponBuilder, поэтому всегда валиден.
type CouponBuilder struct {
	Code        string    `json:"code" validate:"required,max=64"`
	Percent     int       `json:"percent" validate:"gt=0,lte=90"`
	MaxUses     int       `json:"maxUses" validate:"gt=0,lte=100"`
	BoundUserID *string   `json:"boundUserId"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// NewCouponBuilder проверяет параметры купона и выставляет срок действия now + CouponLifetime.
// Все нарушения перечисляются в одной ошибке, обёрнутой в ErrInvalidCoupon.
func NewCouponBuilder(code string, percent, maxUses int, boundUserID *string, now time.Time) (*CouponBuilder, error) {
	b := &CouponBuilder{
		Code:        code,
		Percent:     percent,
		MaxUses:     maxUses,
		BoundUserID: boundUserID,
		ExpiresAt:   now.Add(CouponLifetime).UTC(),
	}

	if err := validate.Struct(b); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidCoupon, describe(verrs))
		}
		return nil, fmt.Errorf("%w: %s", ErrInvalidCoupon, err)
	}
	return b, nil
}

func describe(errs validator.ValidationErrors) string {
	msgs := make([]string, 0, len(errs))
	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s must not be empty", err.Field()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s characters", err.Field(), err.Param()))
		case "gt":
			msgs = append(msgs, fmt.Sprintf("%s must be greater than %s", err.Field(), err.Param()))
		case "lte":
			msgs = append(msgs, fmt.Sprintf("%s must be less than or equal to %s", err.Field(), err.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is not valid", err.Field()))
		}
	}
	return strings.Join(msgs, ", ")
}
