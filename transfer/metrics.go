package transfer

import "encore.dev/metrics"

type AssetLabels struct {
	Asset string
}

type StatusLabels struct {
	Status string
}

var TransfersStarted = metrics.NewCounterGroup[AssetLabels, uint64]("transfers_started", metrics.CounterConfig{})

var TransfersExecuted = metrics.NewCounterGroup[AssetLabels, uint64]("transfers_executed", metrics.CounterConfig{})

// ExecutionReports counts status callbacks by reported status.
var ExecutionReports = metrics.NewCounterGroup[StatusLabels, uint64]("execution_reports", metrics.CounterConfig{})
