package workflow

import (
	"context"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	"encore.dev/beta/errs"

	"encore.app/transfer/business/transaction"
	"encore.app/transfer/domain"
)

// ActivityDependencies holds what the activities call into.
type ActivityDependencies struct {
	Status   transaction.StatusSource
	Business transaction.Business
}

var activityDeps *ActivityDependencies

// SetActivityDependencies sets the dependencies for activities
func SetActivityDependencies(status transaction.StatusSource, business transaction.Business) {
	activityDeps = &ActivityDependencies{
		Status:   status,
		Business: business,
	}
}

// FetchStatusActivity reads the current status of an execution.
func FetchStatusActivity(ctx context.Context, executionID string) (domain.ExecutionStatus, error) {
	logger := activity.GetLogger(ctx)

	if activityDeps == nil || activityDeps.Status == nil {
		logger.Error("Activity dependencies not set")
		return "", temporal.NewApplicationError("activity dependencies not initialized", "DependencyError")
	}

	status, err := activityDeps.Status.Status(ctx, executionID)
	if err != nil {
		logger.Error("Failed to fetch execution status", "executionID", executionID, "error", err)
		if errs.Code(err) == errs.NotFound {
			return "", temporal.NewNonRetryableApplicationError("execution not found", "ExecutionNotFound", err)
		}
		return "", err
	}

	logger.Info("Fetched execution status", "executionID", executionID, "status", status)
	return status, nil
}

// RecordOutcomeActivity stores the final status on the transfer.
func RecordOutcomeActivity(ctx context.Context, transferID string, status domain.ExecutionStatus) error {
	logger := activity.GetLogger(ctx)
	logger.Info("Recording transfer outcome", "transferID", transferID, "status", status)

	if activityDeps == nil || activityDeps.Business == nil {
		logger.Error("Activity dependencies not set")
		return temporal.NewApplicationError("activity dependencies not initialized", "DependencyError")
	}

	err := activityDeps.Business.RecordOutcome(ctx, transferID, status)
	if err != nil {
		logger.Error("Failed to record transfer outcome", "transferID", transferID, "error", err)
		switch errs.Code(err) {
		case errs.InvalidArgument, errs.FailedPrecondition, errs.NotFound:
			return temporal.NewNonRetryableApplicationError("failed to record transfer outcome", "OUTCOME_REJECTED", err)
		}
		return err
	}

	logger.Info("Successfully recorded transfer outcome", "transferID", transferID, "status", status)
	return nil
}
