package handler

import (
	"net/http"

	"github.com/iho/gobank/internal/adapter/http/dto"
)

// LedgerHandler handles ledger-wide operations.
type LedgerHandler struct {
	ledgerUC LedgerService
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerUC LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerUC: ledgerUC}
}

// CheckConsistency checks if the ledger is consistent.
func (h *LedgerHandler) CheckConsistency(w http.ResponseWriter, r *http.Request) {
	report, err := h.ledgerUC.CheckConsistency(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to check consistency", err.Error())
		return
	}

	status := http.StatusOK
	if !report.Consistent {
		status = http.StatusConflict
	}

	writeJSON(w, status, dto.ConsistencyFromReport(report))
}
