package sessions

import (
	"github.com/jackc/pgx/v5/pgtype"
)

type Session struct {
	ID        string             `json:"id"`
	AccountID string             `json:"account_id"`
	Asset     string             `json:"asset"`
	Action    string             `json:"action"`
	Tier      string             `json:"tier"`
	Snapshot  []byte             `json:"snapshot"`
	Version   int64              `json:"version"`
	Execution []byte             `json:"execution"`
	Status    string             `json:"status"`
	CreatedAt pgtype.Timestamptz `json:"created_at"`
	UpdatedAt pgtype.Timestamptz `json:"updated_at"`
}
