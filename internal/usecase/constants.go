package usecase

import "time"

const (
	// DefaultListLimit is used when a listing request does not specify a limit.
	DefaultListLimit = 20

	// MaxListLimit caps account listings.
	MaxListLimit = 100

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour

	// IdempotencyProcessing is the value an IdempotencyStore holds for a key
	// whose first request has not finished.
	IdempotencyProcessing = "processing"
)

// Operation names reported to MetricsRecorder.
const (
	OperationCreateAccount = "create_account"
	OperationAuthenticate  = "authenticate"
	OperationDeposit       = "deposit"
	OperationWithdraw      = "withdraw"
	OperationTransfer      = "transfer"
)
