package workflow

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"encore.app/transfer/domain"
)

// StatusPollTimeoutError is the application error type returned when no
// terminal status was seen before the timeout.
const StatusPollTimeoutError = "StatusPollTimeout"

// AwaitStatusParams contains parameters for starting the status workflow
type AwaitStatusParams struct {
	TransferID  string        `json:"transfer_id"`
	ExecutionID string        `json:"execution_id"`
	Interval    time.Duration `json:"interval"`
	Timeout     time.Duration `json:"timeout"`
}

// WorkflowID is the id the status workflow of a transfer runs under.
func WorkflowID(transferID string) string { return "transfer-status-" + transferID }

// AwaitTransactionStatus polls the execution status every interval until it
// is terminal, then records it on the transfer. A status-reported signal
// ends the current wait: a terminal status finishes the workflow, any other
// polls again at once. The elapsed time is bounded by the timeout, and
// cancelling the workflow stops polling.
func AwaitTransactionStatus(ctx workflow.Context, params AwaitStatusParams) (domain.ExecutionStatus, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("Starting status workflow", "transferID", params.TransferID, "executionID", params.ExecutionID,
		"interval", params.Interval, "timeout", params.Timeout)

	if params.Interval <= 0 || params.Timeout <= 0 {
		return "", temporal.NewNonRetryableApplicationError("interval and timeout must be positive", "InvalidPollParams", nil)
	}

	deadline := workflow.Now(ctx).Add(params.Timeout)
	reportedCh := workflow.GetSignalChannel(ctx, StatusReportedSignalName)
	attempt := 0

	for {
		attempt++
		status, err := fetchStatus(ctx, params.ExecutionID)
		if err != nil {
			logger.Error("Failed to fetch status", "transferID", params.TransferID, "attempt", attempt, "error", err)
			return "", err
		}
		if status.IsTerminal() {
			return finish(ctx, params.TransferID, status)
		}

		remaining := deadline.Sub(workflow.Now(ctx))
		if remaining <= 0 {
			logger.Warn("Status polling timed out", "transferID", params.TransferID, "attempts", attempt, "lastStatus", status)
			return "", temporal.NewNonRetryableApplicationError("no terminal status before timeout", StatusPollTimeoutError, nil, status)
		}

		var reported domain.ExecutionStatus
		var waitErr error
		timerCtx, cancelTimer := workflow.WithCancel(ctx)
		selector := workflow.NewSelector(ctx)
		selector.AddFuture(workflow.NewTimer(timerCtx, min(params.Interval, remaining)), func(f workflow.Future) {
			waitErr = f.Get(ctx, nil)
		})
		selector.AddReceive(reportedCh, func(c workflow.ReceiveChannel, more bool) {
			var signal StatusReportedSignal
			c.Receive(ctx, &signal)
			logger.Info("Received reported status", "transferID", params.TransferID, "status", signal.Status)
			reported = signal.Status
		})
		selector.Select(ctx)
		cancelTimer()

		if waitErr != nil {
			if ctx.Err() != nil {
				logger.Info("Status workflow cancelled", "transferID", params.TransferID, "attempts", attempt)
				return "", ctx.Err()
			}
			return "", waitErr
		}
		if reported.IsTerminal() {
			return finish(ctx, params.TransferID, reported)
		}
	}
}

func finish(ctx workflow.Context, transferID string, status domain.ExecutionStatus) (domain.ExecutionStatus, error) {
	logger := workflow.GetLogger(ctx)
	if err := recordOutcome(ctx, transferID, status); err != nil {
		logger.Error("Failed to record outcome", "transferID", transferID, "status", status, "error", err)
		return "", err
	}
	logger.Info("Status workflow completed", "transferID", transferID, "status", status)
	return status, nil
}

// fetchStatus executes the FetchStatus activity
func fetchStatus(ctx workflow.Context, executionID string) (domain.ExecutionStatus, error) {
	activityOptions := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    500 * time.Millisecond,
			BackoffCoefficient: 2.0,
			MaximumInterval:    5 * time.Second,
			MaximumAttempts:    4,
		},
	}
	activityCtx := workflow.WithActivityOptions(ctx, activityOptions)
	var status domain.ExecutionStatus
	err := workflow.ExecuteActivity(activityCtx, FetchStatusActivity, executionID).Get(ctx, &status)
	return status, err
}

// recordOutcome executes the RecordOutcome activity
func recordOutcome(ctx workflow.Context, transferID string, status domain.ExecutionStatus) error {
	activityOptions := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    15 * time.Second,
			MaximumAttempts:    6,
		},
	}
	activityCtx := workflow.WithActivityOptions(ctx, activityOptions)
	return workflow.ExecuteActivity(activityCtx, RecordOutcomeActivity, transferID, status).Get(ctx, nil)
}
