package dto

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/domain"
	"github.com/iho/gobank/internal/usecase"
)

func TestCreateAccountRequest_ToUseCaseInput(t *testing.T) {
	var req CreateAccountRequest
	if err := json.Unmarshal([]byte(`{"account_id":"carol","pin":"4321","initial_balance":"25.50"}`), &req); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	got := req.ToUseCaseInput()
	if got.ID != "carol" || got.Credential != "4321" || !got.InitialBalance.Equal(decimal.RequireFromString("25.5")) {
		t.Fatalf("ToUseCaseInput() = %+v", got)
	}
}

func TestCreateAccountRequest_AcceptsNumericAmount(t *testing.T) {
	var req CreateAccountRequest
	if err := json.Unmarshal([]byte(`{"account_id":"carol","pin":"4321","initial_balance":100}`), &req); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if !req.InitialBalance.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("expected 100, got %s", req.InitialBalance)
	}
}

func TestCreateAccountRequest_Validate(t *testing.T) {
	tests := []struct {
		pin     string
		wantErr bool
	}{
		{"1234", false},
		{"", true},
		{"123", true},
		{"12345", true},
		{"12a4", true},
	}

	for _, tt := range tests {
		req := &CreateAccountRequest{AccountID: "carol", PIN: tt.pin}
		err := req.Validate()
		if (err != nil) != tt.wantErr {
			t.Fatalf("Validate(%q) error = %v, wantErr %v", tt.pin, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, domain.ErrInvalidCredential) {
			t.Fatalf("expected ErrInvalidCredential, got %v", err)
		}
	}
}

func TestTransferRequest(t *testing.T) {
	req := &TransferRequest{
		FromAccountID: "alice",
		ToAccountID:   "bob",
		Amount:        decimal.NewFromInt(30),
	}

	want := usecase.TransferInput{FromAccountID: "alice", ToAccountID: "bob", Amount: decimal.NewFromInt(30)}
	got := req.ToUseCaseInput()
	if got.FromAccountID != want.FromAccountID || got.ToAccountID != want.ToAccountID || !got.Amount.Equal(want.Amount) {
		t.Fatalf("ToUseCaseInput() = %+v, want %+v", got, want)
	}

	if err := req.Validate(); err != nil {
		t.Fatalf("expected missing sender PIN to be allowed, got %v", err)
	}

	req.SenderPIN = "12"
	if err := req.Validate(); !errors.Is(err, domain.ErrInvalidCredential) {
		t.Fatalf("expected invalid sender PIN, got %v", err)
	}
}

func TestDepositAndWithdrawRequests(t *testing.T) {
	deposit := (&DepositRequest{AccountID: "alice", Amount: decimal.NewFromInt(5)}).ToUseCaseInput()
	if deposit.AccountID != "alice" || !deposit.Amount.Equal(decimal.NewFromInt(5)) {
		t.Fatalf("unexpected deposit input: %+v", deposit)
	}

	withdraw := (&WithdrawRequest{AccountID: "bob", Amount: decimal.NewFromInt(7)}).ToUseCaseInput()
	if withdraw.AccountID != "bob" || !withdraw.Amount.Equal(decimal.NewFromInt(7)) {
		t.Fatalf("unexpected withdraw input: %+v", withdraw)
	}

	auth := (&AuthRequest{AccountID: "alice", PIN: "1234"}).ToUseCaseInput()
	if auth.AccountID != "alice" || auth.Credential != "1234" {
		t.Fatalf("unexpected auth input: %+v", auth)
	}
}
