package repository

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"encore.app/transfer/repository/ledger"
	"encore.app/transfer/repository/sessions"
)

// Repository combines the generated queriers of the transfer database.
type Repository struct {
	Sessions sessions.Querier
	Ledger   ledger.Querier
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{
		Sessions: sessions.New(db),
		Ledger:   ledger.New(db),
	}
}
