package transfer

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"encore.dev/beta/errs"

	"encore.app/transfer/business/transaction"
)

func TestGetTransfer(t *testing.T) {
	now := time.Now()

	testCases := []struct {
		name          string
		id            string
		mockError     error
		expectedCode  errs.ErrCode
		expectSuccess bool
		expectCall    bool
	}{
		{
			name:          "successful_transfer_retrieval",
			id:            "tr-1",
			expectSuccess: true,
			expectCall:    true,
		},
		{
			name:         "empty_id",
			id:           "",
			expectedCode: errs.InvalidArgument,
		},
		{
			name:         "transfer_not_found",
			id:           "missing",
			mockError:    &errs.Error{Code: errs.NotFound, Message: "transfer not found"},
			expectedCode: errs.NotFound,
			expectCall:   true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ts := newTestService(t)
			if tc.expectCall {
				if tc.mockError != nil {
					ts.business.EXPECT().Get(gomock.Any(), tc.id).Return(nil, tc.mockError)
				} else {
					ts.business.EXPECT().Get(gomock.Any(), tc.id).Return(sampleTransfer(tc.id, now), nil)
				}
			}

			resp, err := ts.GetTransfer(context.Background(), tc.id, &GetTransferRequest{Locale: "de-DE"})

			if !tc.expectSuccess {
				require.Error(t, err)
				assert.Equal(t, tc.expectedCode, errs.Code(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.id, resp.Transfer.ID)
			assert.Equal(t, "10000000", resp.Transfer.Amount.Minor)
		})
	}
}

func TestCancelTransfer(t *testing.T) {
	testCases := []struct {
		name         string
		mockError    error
		expectedCode errs.ErrCode
	}{
		{name: "successful_cancel"},
		{
			name:         "already_executed",
			mockError:    errs.WrapCode(transaction.ErrAlreadyExecuted, errs.FailedPrecondition, "transfer already executed"),
			expectedCode: errs.FailedPrecondition,
		},
		{
			name:         "transfer_not_found",
			mockError:    &errs.Error{Code: errs.NotFound, Message: "transfer not found"},
			expectedCode: errs.NotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ts := newTestService(t)
			ts.business.EXPECT().Cancel(gomock.Any(), "tr-1").Return(tc.mockError)

			err := ts.CancelTransfer(context.Background(), "tr-1")

			if tc.mockError == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tc.expectedCode, errs.Code(err))
		})
	}
}
