package eventpublisher

import (
	"strconv"
	"time"

	"github.com/iho/gobank/internal/domain"
)

// Event is the wire form of a committed transaction.
type Event struct {
	EventID               string    `json:"event_id"`
	EventType             string    `json:"event_type"`
	TransactionID         uint64    `json:"transaction_id"`
	Type                  string    `json:"type"`
	AccountID             string    `json:"account_id"`
	CounterpartyAccountID string    `json:"counterparty_account_id,omitempty"`
	Amount                string    `json:"amount"`
	CreatedAt             time.Time `json:"created_at"`
}

// NewEvent builds the event for a transaction record.
func NewEvent(t *domain.Transaction) *Event {
	return &Event{
		EventID:               "txn-" + strconv.FormatUint(t.ID, 10),
		EventType:             "transaction." + string(t.Type),
		TransactionID:         t.ID,
		Type:                  string(t.Type),
		AccountID:             t.AccountID,
		CounterpartyAccountID: t.CounterpartyAccountID,
		Amount:                t.Amount.StringFixed(domain.AmountPrecision),
		CreatedAt:             t.CreatedAt,
	}
}
