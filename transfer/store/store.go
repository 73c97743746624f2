package store

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"encore.app/transfer/repository"
)

// Store combines the session store and the ledger backed by one database.
type Store struct {
	Sessions Sessions
	Ledger   *Ledger
}

func NewStore(db *pgxpool.Pool) *Store {
	repo := repository.NewRepository(db)
	return &Store{
		Sessions: NewPostgres(repo.Sessions),
		Ledger:   NewLedger(repo.Ledger, db),
	}
}
