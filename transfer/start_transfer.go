package transfer

import (
	"context"
	"strings"

	"encore.dev/beta/errs"
	"encore.dev/rlog"

	"encore.app/transfer/business/transaction"
	"encore.app/transfer/domain"
	"encore.app/transfer/money"
)

type StartTransferRequest struct {
	Locale string `header:"Accept-Language" json:"-"`

	AccountID string `json:"account_id" validate:"required,max=100"`
	Asset     string `json:"asset" validate:"required,alphanum,max=10"`
	Action    string `json:"action" validate:"omitempty,oneof=send swap sell"`
	Tier      string `json:"tier" validate:"omitempty,oneof=silver gold"`
	Fiat      string `json:"fiat" validate:"omitempty,len=3,alpha"`
}

//encore:api public path=/v1/transfers method=POST
func (s *Service) StartTransfer(ctx context.Context, req *StartTransferRequest) (*TransferResponse, error) {
	asset, err := money.Lookup(strings.ToUpper(req.Asset))
	if err != nil {
		return nil, &errs.Error{Code: errs.InvalidArgument, Message: err.Error()}
	}
	fiatCode := req.Fiat
	if fiatCode == "" && s.cfg != nil {
		fiatCode = s.cfg.DefaultFiat
	}
	var fiat money.CurrencyType
	if fiatCode != "" {
		if fiat, err = money.Lookup(strings.ToUpper(fiatCode)); err != nil || !fiat.IsFiat() {
			return nil, &errs.Error{Code: errs.InvalidArgument, Message: "fiat must be a fiat currency"}
		}
	}

	result, err := s.business.Start(ctx, transaction.StartParams{
		AccountID: req.AccountID,
		Asset:     asset,
		Action:    domain.Action(req.Action),
		Tier:      domain.UserTier(req.Tier),
		Fiat:      fiat,
	})
	if err != nil {
		rlog.Error("failed to start transfer", "error", err, "account_id", req.AccountID, "asset", asset.Code())
		return nil, err
	}
	TransfersStarted.With(AssetLabels{Asset: asset.Code()}).Increment()

	return toResponse(result, localeOf(req.Locale)), nil
}

// Validate implements validation for StartTransferRequest
func (r *StartTransferRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return &errs.Error{Code: errs.InvalidArgument, Message: err.Error()}
	}
	return nil
}
