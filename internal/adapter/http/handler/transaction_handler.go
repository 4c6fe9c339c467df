package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/iho/gobank/internal/adapter/http/dto"
	"github.com/iho/gobank/internal/adapter/http/middleware"
	"github.com/iho/gobank/internal/domain"
	"github.com/iho/gobank/internal/usecase"
)

// TransactionHandler handles deposits, withdrawals, transfers and history.
type TransactionHandler struct {
	transactionUC TransactionService
	authUC        AuthService
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionUC TransactionService, authUC AuthService) *TransactionHandler {
	return &TransactionHandler{
		transactionUC: transactionUC,
		authUC:        authUC,
	}
}

// Deposit credits an account.
func (h *TransactionHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	var req dto.DepositRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.transactionUC.Deposit(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, "deposit failed", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceChangeFromResult(result))
}

// Withdraw debits an account. With a bearer token, only its owner may withdraw.
func (h *TransactionHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	var req dto.WithdrawRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := middleware.CheckOwner(r.Context(), req.AccountID); err != nil {
		writeDomainError(w, "withdraw failed", err)
		return
	}

	result, err := h.transactionUC.Withdraw(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, "withdraw failed", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceChangeFromResult(result))
}

// Transfer moves funds between accounts. The sender is proven by a bearer
// token for the sending account, by sender_pin, or both.
func (h *TransactionHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	var req dto.TransferRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		writeDomainError(w, "invalid request", err)
		return
	}

	if err := middleware.CheckOwner(r.Context(), req.FromAccountID); err != nil {
		writeDomainError(w, "transfer failed", err)
		return
	}

	if req.SenderPIN != "" && req.FromAccountID != req.ToAccountID {
		ok, err := h.authUC.Authenticate(r.Context(), usecase.AuthenticateInput{
			AccountID:  req.FromAccountID,
			Credential: req.SenderPIN,
		})
		if err != nil {
			writeDomainError(w, "transfer failed", err)
			return
		}
		if !ok {
			writeDomainError(w, "transfer failed", domain.ErrAuthenticationFailed)
			return
		}
	}

	result, err := h.transactionUC.Transfer(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, "transfer failed", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TransferFromResult(result))
}

// ListByAccount returns a page of an account's history.
func (h *TransactionHandler) ListByAccount(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	order := r.URL.Query().Get("order")
	if order != "" && order != string(usecase.SortAscending) && order != string(usecase.SortDescending) {
		writeError(w, http.StatusBadRequest, "invalid order", "order must be asc or desc")
		return
	}

	limit, offset, err := domain.ValidatePagination(parseIntQuery(r, "limit", 0), parseIntQuery(r, "offset", 0))
	if err != nil {
		writeDomainError(w, "invalid pagination", err)
		return
	}

	input := usecase.ListHistoryInput{
		AccountID: accountID,
		Order:     usecase.ParseSortOrder(order),
		Limit:     limit,
		Offset:    offset,
	}

	transactions, err := h.transactionUC.ListHistory(r.Context(), input)
	if err != nil {
		writeDomainError(w, "failed to list transactions", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ListTransactionsResponse{
		AccountID:    accountID,
		Transactions: dto.TransactionsFromDomain(transactions),
		Limit:        input.Limit,
		Offset:       input.Offset,
	})
}

// Get retrieves a transaction by ID.
func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id == 0 {
		writeError(w, http.StatusBadRequest, "invalid transaction ID", "")
		return
	}

	transaction, err := h.transactionUC.GetTransaction(r.Context(), id)
	if err != nil {
		writeDomainError(w, "failed to get transaction", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionFromDomain(transaction))
}
