package transfer

import (
	"context"

	"encore.dev/beta/errs"
	"encore.dev/rlog"
	"golang.org/x/text/language"

	"encore.app/transfer/domain"
	"encore.app/transfer/workflow"
)

type SetBalanceRequest struct {
	AccountID string `json:"account_id" validate:"required,max=100"`
	Amount    string `json:"amount" validate:"required,max=64"`
	Currency  string `json:"currency" validate:"required,alphanum,max=10"`
}

type BalanceResponse struct {
	AccountID string `json:"account_id"`
	Balance   Money  `json:"balance"`
}

// SetBalance credits an account with an absolute balance. Amounts are
// canonical major units.
//
//encore:api private path=/internal/balances method=POST
func (s *Service) SetBalance(ctx context.Context, req *SetBalanceRequest) (*BalanceResponse, error) {
	v, err := parseMoney(req.Amount, req.Currency, language.AmericanEnglish)
	if err != nil {
		return nil, err
	}
	if v.IsNegative() {
		return nil, &errs.Error{Code: errs.InvalidArgument, Message: "balance cannot be negative"}
	}

	balance, err := s.ledger.SetBalance(ctx, req.AccountID, v)
	if err != nil {
		rlog.Error("failed to set balance", "error", err, "account_id", req.AccountID)
		return nil, err
	}
	return &BalanceResponse{AccountID: req.AccountID, Balance: toMoney(balance, language.AmericanEnglish)}, nil
}

type ReportStatusRequest struct {
	TransferID string `json:"transfer_id" validate:"required,max=100"`
	Status     string `json:"status" validate:"required,oneof=pending submitted confirmed failed expired"`
}

// ReportExecutionStatus is called by the network side when an execution
// changes status. The status workflow is signalled so it does not wait for
// its next poll.
//
//encore:api private path=/internal/executions/:id/status method=POST
func (s *Service) ReportExecutionStatus(ctx context.Context, id string, req *ReportStatusRequest) error {
	status := domain.ExecutionStatus(req.Status)
	if err := s.ledger.SetStatus(ctx, id, status); err != nil {
		rlog.Error("failed to store execution status", "error", err, "execution_id", id)
		return err
	}

	ExecutionReports.With(StatusLabels{Status: req.Status}).Increment()

	runAsync("signal_status_reported", func(ctx context.Context) error {
		return s.signalStatusReported(ctx, req.TransferID, status)
	})
	return nil
}

// Validate implements validation for SetBalanceRequest
func (r *SetBalanceRequest) Validate() error {
	return validateStruct(r)
}

// Validate implements validation for ReportStatusRequest
func (r *ReportStatusRequest) Validate() error {
	return validateStruct(r)
}

func (s *Service) signalStatusReported(ctx context.Context, transferID string, status domain.ExecutionStatus) error {
	signal := workflow.StatusReportedSignal{Status: status}
	return s.temporal.SignalWorkflow(ctx, workflow.WorkflowID(transferID), "", workflow.StatusReportedSignalName, signal)
}
