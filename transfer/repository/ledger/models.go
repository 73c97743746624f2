package ledger

import (
	"github.com/jackc/pgx/v5/pgtype"
)

type Balance struct {
	AccountID string             `json:"account_id"`
	Asset     string             `json:"asset"`
	Minor     string             `json:"minor"`
	UpdatedAt pgtype.Timestamptz `json:"updated_at"`
}

type Execution struct {
	ID          string             `json:"id"`
	Fingerprint string             `json:"fingerprint"`
	AccountID   string             `json:"account_id"`
	Asset       string             `json:"asset"`
	AmountMinor string             `json:"amount_minor"`
	FeeAsset    string             `json:"fee_asset"`
	FeeMinor    string             `json:"fee_minor"`
	Destination string             `json:"destination"`
	Memo        string             `json:"memo"`
	Status      string             `json:"status"`
	SubmittedAt pgtype.Timestamptz `json:"submitted_at"`
	UpdatedAt   pgtype.Timestamptz `json:"updated_at"`
}
