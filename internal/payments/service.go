package payments

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/inkwellpress/inkwell-backend/pkg/config"
	pkgerrors "github.com/inkwellpress/inkwell-backend/pkg/errors"
	"github.com/inkwellpress/inkwell-backend/pkg/logger"
)

// IntentCreator is the slice of the Stripe client this service needs.
type IntentCreator interface {
	CreatePaymentIntent(ctx context.Context, amountMinor int64, currency string, metadata map[string]string) (string, error)
}

// IntentRequest carries the checkout amount in major currency units.
type IntentRequest struct {
	Amount   decimal.Decimal
	Currency string
	Metadata map[string]string
}

// Intent is what the storefront needs to confirm the payment client-side.
type Intent struct {
	ClientSecret string `json:"client_secret"`
}

type Service interface {
	CreateIntent(ctx context.Context, req IntentRequest) (*Intent, error)
}

type service struct {
	stripe IntentCreator
	cfg    config.StripeConfig
	logg   *logger.Logger
}

func NewService(stripe IntentCreator, cfg config.StripeConfig, logg *logger.Logger) (Service, error) {
	if stripe == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "stripe client required")
	}
	return &service{stripe: stripe, cfg: cfg, logg: logg}, nil
}

func (s *service) CreateIntent(ctx context.Context, req IntentRequest) (*Intent, error) {
	if !req.Amount.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount must be greater than zero")
	}

	currency := strings.ToLower(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = s.cfg.DefaultCurrency
	}

	secret, err := s.stripe.CreatePaymentIntent(ctx, MinorUnits(req.Amount), currency, req.Metadata)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create payment intent")
	}

	if s.logg != nil {
		s.logg.Info(ctx, "payments.intent_created")
	}
	return &Intent{ClientSecret: secret}, nil
}

// MinorUnits converts a major-unit amount to integer minor units,
// rounding half away from zero so 19.99 becomes 1999 and 10.005
// becomes 1001.
func MinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
