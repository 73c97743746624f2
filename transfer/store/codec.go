package store

import (
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"

	"encore.app/transfer/domain"
	"encore.app/transfer/money"
	"encore.app/transfer/repository/sessions"
)

func toRow(rec Record) (sessions.Session, error) {
	snapshot, err := json.Marshal(rec.Transaction)
	if err != nil {
		return sessions.Session{}, fmt.Errorf("encode snapshot: %w", err)
	}
	var execution []byte
	if rec.Execution != nil {
		if execution, err = json.Marshal(rec.Execution); err != nil {
			return sessions.Session{}, fmt.Errorf("encode execution: %w", err)
		}
	}
	return sessions.Session{
		ID:        rec.ID,
		AccountID: rec.Account.ID,
		Asset:     rec.Account.Asset.Code(),
		Action:    string(rec.Account.Action),
		Tier:      string(rec.Account.Tier),
		Snapshot:  snapshot,
		Version:   rec.Version,
		Execution: execution,
		Status:    string(rec.Status),
		CreatedAt: pgtype.Timestamptz{Time: rec.CreatedAt, Valid: !rec.CreatedAt.IsZero()},
		UpdatedAt: pgtype.Timestamptz{Time: rec.UpdatedAt, Valid: !rec.UpdatedAt.IsZero()},
	}, nil
}

func fromRow(row sessions.Session) (Record, error) {
	asset, err := money.Lookup(row.Asset)
	if err != nil {
		return Record{}, fmt.Errorf("session %s: %w", row.ID, err)
	}
	rec := Record{
		ID: row.ID,
		Account: domain.Account{
			ID:     row.AccountID,
			Asset:  asset,
			Action: domain.Action(row.Action),
			Tier:   domain.UserTier(row.Tier),
		},
		Status:    domain.ExecutionStatus(row.Status),
		Version:   row.Version,
		CreatedAt: row.CreatedAt.Time,
		UpdatedAt: row.UpdatedAt.Time,
	}
	if err := json.Unmarshal(row.Snapshot, &rec.Transaction); err != nil {
		return Record{}, fmt.Errorf("session %s: decode snapshot: %w", row.ID, err)
	}
	if len(row.Execution) > 0 {
		var result domain.ExecutionResult
		if err := json.Unmarshal(row.Execution, &result); err != nil {
			return Record{}, fmt.Errorf("session %s: decode execution: %w", row.ID, err)
		}
		rec.Execution = &result
	}
	return rec, nil
}
