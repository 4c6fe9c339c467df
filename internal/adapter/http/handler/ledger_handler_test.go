package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/iho/gobank/internal/adapter/http/dto"
	"github.com/iho/gobank/internal/adapter/http/handler/mocks"
	"github.com/iho/gobank/internal/usecase"
)

func TestLedgerHandler_CheckConsistency(t *testing.T) {
	tests := []struct {
		name       string
		report     *usecase.ConsistencyReport
		err        error
		wantStatus int
		wantState  string
	}{
		{
			name: "consistent",
			report: &usecase.ConsistencyReport{
				Consistent:    true,
				AccountCount:  2,
				TotalBalance:  decimal.NewFromInt(1500),
				ExpectedTotal: decimal.NewFromInt(1500),
			},
			wantStatus: http.StatusOK,
			wantState:  "consistent",
		},
		{
			name: "inconsistent",
			report: &usecase.ConsistencyReport{
				Consistent:    false,
				AccountCount:  1,
				TotalBalance:  decimal.NewFromInt(90),
				ExpectedTotal: decimal.NewFromInt(100),
				Mismatches: []usecase.AccountMismatch{
					{AccountID: "alice", RecordedBalance: decimal.NewFromInt(90), CalculatedBalance: decimal.NewFromInt(100)},
				},
			},
			wantStatus: http.StatusConflict,
			wantState:  "inconsistent",
		},
		{
			name:       "failure",
			err:        errors.New("snapshot failed"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc := mocks.NewMockLedgerService(ctrl)
			svc.EXPECT().CheckConsistency(gomock.Any()).Return(tt.report, tt.err)

			rec := httptest.NewRecorder()
			NewLedgerHandler(svc).CheckConsistency(rec, httptest.NewRequest(http.MethodGet, "/ledger/consistency", nil))

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantState == "" {
				return
			}

			var resp dto.ConsistencyResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantState, resp.Status)
			assert.Equal(t, tt.report.Consistent, resp.Consistent)
			assert.Len(t, resp.Mismatches, len(tt.report.Mismatches))
		})
	}
}
