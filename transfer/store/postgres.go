package store

import (
	"context"

	"encore.dev/beta/errs"
	"encore.dev/rlog"

	"encore.app/transfer/repository/sessions"
)

// Postgres stores records in the sessions table.
type Postgres struct {
	q sessions.Querier
}

func NewPostgres(q sessions.Querier) *Postgres {
	return &Postgres{q: q}
}

func (p *Postgres) Create(ctx context.Context, rec Record) (Record, error) {
	row, err := toRow(rec)
	if err != nil {
		return Record{}, errs.WrapCode(err, errs.Internal, "failed to encode session")
	}
	created, err := p.q.CreateSession(ctx, sessions.CreateSessionParams{
		ID:        row.ID,
		AccountID: row.AccountID,
		Asset:     row.Asset,
		Action:    row.Action,
		Tier:      row.Tier,
		Snapshot:  row.Snapshot,
	})
	if err != nil {
		if isUniqueViolation(err) {
			return Record{}, &errs.Error{Code: errs.AlreadyExists, Message: "session " + rec.ID + " already exists"}
		}
		rlog.Error("failed to create session", "id", rec.ID, "error", err)
		return Record{}, &errs.Error{Code: errs.Internal, Message: "failed to create session"}
	}
	return p.decode(created)
}

func (p *Postgres) Get(ctx context.Context, id string) (Record, error) {
	row, err := p.q.GetSession(ctx, id)
	if err != nil {
		if isNoRows(err) {
			return Record{}, notFound(id)
		}
		rlog.Error("failed to get session", "id", id, "error", err)
		return Record{}, &errs.Error{Code: errs.Internal, Message: "failed to get session"}
	}
	return p.decode(row)
}

func (p *Postgres) Swap(ctx context.Context, rec Record) (Record, error) {
	row, err := toRow(rec)
	if err != nil {
		return Record{}, errs.WrapCode(err, errs.Internal, "failed to encode session")
	}
	swapped, err := p.q.SwapSession(ctx, sessions.SwapSessionParams{
		ID:        row.ID,
		Version:   row.Version,
		Snapshot:  row.Snapshot,
		Execution: row.Execution,
		Status:    row.Status,
	})
	if err == nil {
		return p.decode(swapped)
	}
	if !isNoRows(err) {
		rlog.Error("failed to swap session", "id", rec.ID, "error", err)
		return Record{}, &errs.Error{Code: errs.Internal, Message: "failed to update session"}
	}
	// No row matched: either the session is gone or another writer won.
	if _, err := p.Get(ctx, rec.ID); err != nil {
		return Record{}, err
	}
	return Record{}, stale(rec.ID)
}

func (p *Postgres) Delete(ctx context.Context, id string) error {
	n, err := p.q.DeleteSession(ctx, id)
	if err != nil {
		rlog.Error("failed to delete session", "id", id, "error", err)
		return &errs.Error{Code: errs.Internal, Message: "failed to delete session"}
	}
	if n == 0 {
		return notFound(id)
	}
	return nil
}

func (p *Postgres) decode(row sessions.Session) (Record, error) {
	rec, err := fromRow(row)
	if err != nil {
		rlog.Error("stored session is unreadable", "id", row.ID, "error", err)
		return Record{}, errs.WrapCode(err, errs.DataLoss, "stored session is unreadable")
	}
	return rec, nil
}
