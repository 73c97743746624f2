package workflow

import "encore.app/transfer/domain"

const (
	// StatusReportedSignalName carries a status pushed by the network callback
	// so the workflow does not wait for its next poll.
	StatusReportedSignalName = "status-reported"
)

type StatusReportedSignal struct {
	Status domain.ExecutionStatus `json:"status"`
}
