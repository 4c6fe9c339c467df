package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation errors
var (
	ErrInvalidAccountID  = errors.New("invalid account id")
	ErrInvalidCredential = errors.New("invalid credential")
)

// Validation constants
const (
	MaxAccountIDLength = 64
	MinAccountIDLength = 1
	MaxAmount          = "1000000000" // 1 billion
	AmountPrecision    = 2
	PINLength          = 4
)

var (
	accountIDRegex = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)
	pinRegex       = regexp.MustCompile(`^[0-9]{4}$`)
	maxAmount      = decimal.RequireFromString(MaxAmount)
)

// ValidateAccountID validates an account identifier (the account's user name).
func ValidateAccountID(id string) error {
	if strings.TrimSpace(id) != id {
		return fmt.Errorf("%w: leading or trailing whitespace", ErrInvalidAccountID)
	}

	if len(id) < MinAccountIDLength {
		return fmt.Errorf("%w: id cannot be empty", ErrInvalidAccountID)
	}

	if len(id) > MaxAccountIDLength {
		return fmt.Errorf("%w: id exceeds %d characters", ErrInvalidAccountID, MaxAccountIDLength)
	}

	if !accountIDRegex.MatchString(id) {
		return fmt.Errorf("%w: only letters, digits, '.', '_' and '-' are allowed", ErrInvalidAccountID)
	}

	return nil
}

// ValidateAmount validates a deposit, withdrawal or transfer amount.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	return validateMoney(amount)
}

// ValidateOpeningBalance validates the initial balance of a new account.
func ValidateOpeningBalance(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return fmt.Errorf("%w: initial balance cannot be negative", ErrInvalidAmount)
	}

	return validateMoney(amount)
}

func validateMoney(amount decimal.Decimal) error {
	if !amount.Equal(amount.Truncate(AmountPrecision)) {
		return fmt.Errorf("%w: at most %d fractional digits", ErrInvalidAmount, AmountPrecision)
	}

	if amount.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: maximum amount is %s", ErrInvalidAmount, MaxAmount)
	}

	return nil
}

// ValidateCredential checks that a credential is present.
func ValidateCredential(credential string) error {
	if credential == "" {
		return fmt.Errorf("%w: credential cannot be empty", ErrInvalidCredential)
	}
	return nil
}

// ValidatePIN validates a 4-digit numeric PIN.
func ValidatePIN(pin string) error {
	if !pinRegex.MatchString(pin) {
		return fmt.Errorf("%w: PIN must be exactly %d digits", ErrInvalidCredential, PINLength)
	}
	return nil
}

// ValidatePagination validates and limits pagination parameters
func ValidatePagination(limit, offset int) (int, int, error) {
	const MaxPageSize = 1000
	const DefaultPageSize = 50

	if limit <= 0 {
		limit = DefaultPageSize
	}

	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset, nil
}
