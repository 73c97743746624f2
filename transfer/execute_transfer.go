package transfer

import (
	"context"
	"fmt"

	"encore.dev/beta/errs"
	"encore.dev/rlog"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"

	"encore.app/transfer/model"
	"encore.app/transfer/workflow"
)

type ExecuteTransferRequest struct {
	IdempotencyKey string `header:"X-Idempotency-Key" json:"-"`
	Locale         string `header:"Accept-Language" json:"-"`

	Secret string `json:"secret" validate:"required,max=256"`
}

//encore:api public path=/v1/transfers/:id/execute method=POST tag:idempotency
func (s *Service) ExecuteTransfer(ctx context.Context, id string, req *ExecuteTransferRequest) (*TransferResponse, error) {
	result, err := s.business.Execute(ctx, id, req.Secret)
	if err != nil {
		rlog.Error("failed to execute transfer", "error", err, "id", id)
		return nil, err
	}
	TransfersExecuted.With(AssetLabels{Asset: result.Account.Asset.Code()}).Increment()

	// The transfer is executed either way; a missing watcher only delays the
	// recorded outcome until the status callback arrives.
	if wfErr := s.startStatusWorkflow(ctx, result); wfErr != nil {
		rlog.Error("workflow start issue", "id", id, "workflow_id", workflow.WorkflowID(id), "error", wfErr)
	}

	return toResponse(result, localeOf(req.Locale)), nil
}

// Validate implements validation for ExecuteTransferRequest
func (r *ExecuteTransferRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return &errs.Error{Code: errs.InvalidArgument, Message: err.Error()}
	}
	return nil
}

// startStatusWorkflow starts the workflow that follows the executed
// transaction until it is final.
func (s *Service) startStatusWorkflow(ctx context.Context, t *model.Transfer) error {
	if t.Execution == nil {
		return fmt.Errorf("transfer %s has no execution", t.ID)
	}
	workflowID := workflow.WorkflowID(t.ID)

	options := client.StartWorkflowOptions{
		ID:        workflowID,
		TaskQueue: taskQueue,
	}

	params := workflow.AwaitStatusParams{
		TransferID:  t.ID,
		ExecutionID: t.Execution.ID,
	}
	if s.cfg != nil {
		params.Interval = s.cfg.Polling.Interval
		params.Timeout = s.cfg.Polling.Timeout
	}

	_, err := s.temporal.ExecuteWorkflow(ctx, options, workflow.AwaitTransactionStatus, params)
	if err != nil {
		if temporal.IsWorkflowExecutionAlreadyStartedError(err) {
			rlog.Info("workflow already started", "id", t.ID, "workflow_id", workflowID)
			return nil
		}
		return fmt.Errorf("execute workflow %s: %w", workflowID, err)
	}
	return nil
}
