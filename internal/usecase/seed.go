package usecase

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/domain"
)

// SeedAccount describes an account created at startup.
type SeedAccount struct {
	ID             string
	Credential     string
	InitialBalance decimal.Decimal
}

// DefaultSeedAccounts are the sample accounts every fresh process starts with.
var DefaultSeedAccounts = []SeedAccount{
	{ID: "alice", Credential: "1234", InitialBalance: decimal.NewFromInt(1000)},
	{ID: "bob", Credential: "5678", InitialBalance: decimal.NewFromInt(500)},
}

// Seed creates the given accounts, skipping ones that already exist.
func Seed(ctx context.Context, accounts *AccountUseCase, seeds []SeedAccount, logger zerolog.Logger) error {
	for _, s := range seeds {
		_, err := accounts.CreateAccount(ctx, CreateAccountInput{
			ID:             s.ID,
			Credential:     s.Credential,
			InitialBalance: s.InitialBalance,
		})
		if errors.Is(err, domain.ErrDuplicateAccount) {
			logger.Debug().Str("account_id", s.ID).Msg("seed account already exists")
			continue
		}
		if err != nil {
			return err
		}

		logger.Info().
			Str("account_id", s.ID).
			Str("balance", s.InitialBalance.StringFixed(domain.AmountPrecision)).
			Msg("seeded account")
	}

	return nil
}
