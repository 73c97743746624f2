package store

import (
	"context"
	"sync"
	"time"

	"encore.dev/beta/errs"

	"encore.app/transfer/repository/sessions"
)

// Memory keeps records in process. Records are stored in their encoded row
// form, so a read sees exactly what the postgres store would return.
type Memory struct {
	mu   sync.Mutex
	rows map[string]sessions.Session
	now  func() time.Time
}

func NewMemory() *Memory {
	return &Memory{rows: map[string]sessions.Session{}, now: time.Now}
}

func (m *Memory) Create(_ context.Context, rec Record) (Record, error) {
	now := m.now()
	rec.Version = 1
	rec.CreatedAt, rec.UpdatedAt = now, now
	row, err := toRow(rec)
	if err != nil {
		return Record{}, errs.WrapCode(err, errs.Internal, "failed to encode session")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[rec.ID]; ok {
		return Record{}, &errs.Error{Code: errs.AlreadyExists, Message: "session " + rec.ID + " already exists"}
	}
	m.rows[rec.ID] = row
	return fromRow(row)
}

func (m *Memory) Get(_ context.Context, id string) (Record, error) {
	m.mu.Lock()
	row, ok := m.rows[id]
	m.mu.Unlock()
	if !ok {
		return Record{}, notFound(id)
	}
	return fromRow(row)
}

func (m *Memory) Swap(_ context.Context, rec Record) (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	current, ok := m.rows[rec.ID]
	if !ok {
		return Record{}, notFound(rec.ID)
	}
	if current.Version != rec.Version {
		return Record{}, stale(rec.ID)
	}

	rec.Version++
	rec.UpdatedAt = m.now()
	row, err := toRow(rec)
	if err != nil {
		return Record{}, errs.WrapCode(err, errs.Internal, "failed to encode session")
	}
	row.CreatedAt = current.CreatedAt
	m.rows[rec.ID] = row
	return fromRow(row)
}

func (m *Memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return notFound(id)
	}
	delete(m.rows, id)
	return nil
}
