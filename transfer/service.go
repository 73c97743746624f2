package transfer

import (
	"context"
	"fmt"

	"encore.dev"
	"encore.dev/rlog"
	"encore.dev/storage/sqldb"
	"github.com/go-playground/validator/v10"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"

	"encore.app/transfer/address"
	"encore.app/transfer/business/transaction"
	"encore.app/transfer/config"
	"encore.app/transfer/provider"
	"encore.app/transfer/store"
	"encore.app/transfer/workflow"
)

var transferDB = sqldb.NewDatabase("transfer", sqldb.DatabaseConfig{
	Migrations: "./db/migrations",
})

var validate = validator.New()

// taskQueue is scoped per environment so local runs and deployed workers do
// not steal each other's tasks. It is set by initService.
var taskQueue = "transfer"

//encore:service
type Service struct {
	business transaction.Business
	temporal client.Client
	worker   worker.Worker
	ledger   Ledger
	cfg      *config.Config
}

func initService() (*Service, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	taskQueue = encore.Meta().Environment.Name + "-" + cfg.TaskQueue

	catalog, err := provider.NewCatalog(cfg)
	if err != nil {
		return nil, fmt.Errorf("build catalog: %w", err)
	}
	addresses, err := address.NewValidator(cfg.Network)
	if err != nil {
		return nil, err
	}

	pgxdb := sqldb.Driver(transferDB)
	rlog.Info("Initializing Store", "network", cfg.Network)
	st := store.NewStore(pgxdb)

	processors := provider.Processors(catalog, st.Ledger, st.Ledger, addresses, cfg.Countdown)
	business := transaction.NewTransactionBusiness(st.Sessions, processors)

	c, err := client.Dial(client.Options{})
	if err != nil {
		return nil, fmt.Errorf("create temporal client: %w", err)
	}
	workflow.SetActivityDependencies(st.Ledger, business)

	w := worker.New(c, taskQueue, worker.Options{})
	w.RegisterWorkflow(workflow.AwaitTransactionStatus)
	w.RegisterActivity(workflow.FetchStatusActivity)
	w.RegisterActivity(workflow.RecordOutcomeActivity)
	if err := w.Start(); err != nil {
		c.Close()
		return nil, fmt.Errorf("start temporal worker: %w", err)
	}
	rlog.Info("temporal worker started", "task_queue", taskQueue)

	return &Service{
		business: business,
		temporal: c,
		worker:   w,
		ledger:   st.Ledger,
		cfg:      cfg,
	}, nil
}

// Shutdown stops the worker before closing the client it polls with.
func (s *Service) Shutdown(force context.Context) {
	if s.worker != nil {
		s.worker.Stop()
	}
	if s.temporal != nil {
		s.temporal.Close()
	}
}
