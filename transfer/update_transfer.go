package transfer

import (
	"context"

	"encore.dev/beta/errs"
	"encore.dev/rlog"

	"encore.app/transfer/domain"
	"encore.app/transfer/money"
)

// UpdateAmountRequest sets the amount in the asset or in the selected fiat
// currency. Amounts are major units written in the request locale.
type UpdateAmountRequest struct {
	Locale string `header:"Accept-Language" json:"-"`

	Amount   string `json:"amount" validate:"required,max=64"`
	Currency string `json:"currency" validate:"required,alphanum,max=10"`
}

//encore:api public path=/v1/transfers/:id/amount method=POST
func (s *Service) UpdateAmount(ctx context.Context, id string, req *UpdateAmountRequest) (*TransferResponse, error) {
	locale := localeOf(req.Locale)
	amount, err := parseMoney(req.Amount, req.Currency, locale)
	if err != nil {
		return nil, err
	}

	result, err := s.business.UpdateAmount(ctx, id, amount)
	if err != nil {
		rlog.Error("failed to update amount", "error", err, "id", id)
		return nil, err
	}
	return toResponse(result, locale), nil
}

type UseMaxRequest struct {
	Locale string `header:"Accept-Language"`
}

//encore:api public path=/v1/transfers/:id/max method=POST
func (s *Service) UseMaxSpendable(ctx context.Context, id string, req *UseMaxRequest) (*TransferResponse, error) {
	result, err := s.business.UseMaxSpendable(ctx, id)
	if err != nil {
		rlog.Error("failed to use max spendable", "error", err, "id", id)
		return nil, err
	}
	return toResponse(result, localeOf(req.Locale)), nil
}

// UpdateFeeRequest selects a fee level. CustomAmount is required for the
// custom level and is written in CustomCurrency, the asset's fee currency.
type UpdateFeeRequest struct {
	Locale string `header:"Accept-Language" json:"-"`

	Level          string `json:"level" validate:"required,oneof=none regular priority custom"`
	CustomAmount   string `json:"custom_amount" validate:"required_if=Level custom,max=64"`
	CustomCurrency string `json:"custom_currency" validate:"omitempty,alphanum,max=10"`
}

//encore:api public path=/v1/transfers/:id/fee method=POST
func (s *Service) UpdateFee(ctx context.Context, id string, req *UpdateFeeRequest) (*TransferResponse, error) {
	locale := localeOf(req.Locale)
	level, err := domain.ParseFeeLevel(req.Level)
	if err != nil {
		return nil, err
	}
	var custom *money.MoneyValue
	if req.CustomAmount != "" {
		v, err := parseMoney(req.CustomAmount, req.CustomCurrency, locale)
		if err != nil {
			return nil, err
		}
		custom = &v
	}

	result, err := s.business.UpdateFee(ctx, id, level, custom)
	if err != nil {
		rlog.Error("failed to update fee", "error", err, "id", id, "level", level)
		return nil, err
	}
	return toResponse(result, locale), nil
}

type SetDestinationRequest struct {
	Locale string `header:"Accept-Language" json:"-"`

	Address string `json:"address" validate:"required,max=128"`
}

//encore:api public path=/v1/transfers/:id/destination method=POST
func (s *Service) SetDestination(ctx context.Context, id string, req *SetDestinationRequest) (*TransferResponse, error) {
	result, err := s.business.SetDestination(ctx, id, req.Address)
	if err != nil {
		rlog.Error("failed to set destination", "error", err, "id", id)
		return nil, err
	}
	return toResponse(result, localeOf(req.Locale)), nil
}

// SetMemoRequest sets the memo or tag sent with the transfer. An empty memo
// clears it.
type SetMemoRequest struct {
	Locale string `header:"Accept-Language" json:"-"`

	Memo string `json:"memo" validate:"max=64"`
}

//encore:api public path=/v1/transfers/:id/memo method=POST
func (s *Service) SetMemo(ctx context.Context, id string, req *SetMemoRequest) (*TransferResponse, error) {
	result, err := s.business.SetMemo(ctx, id, req.Memo)
	if err != nil {
		rlog.Error("failed to set memo", "error", err, "id", id)
		return nil, err
	}
	return toResponse(result, localeOf(req.Locale)), nil
}

// SetDescriptionRequest attaches a private note to the transfer. An empty
// description clears it.
type SetDescriptionRequest struct {
	Locale string `header:"Accept-Language" json:"-"`

	Description string `json:"description" validate:"max=255"`
}

//encore:api public path=/v1/transfers/:id/description method=POST
func (s *Service) SetDescription(ctx context.Context, id string, req *SetDescriptionRequest) (*TransferResponse, error) {
	result, err := s.business.SetDescription(ctx, id, req.Description)
	if err != nil {
		rlog.Error("failed to set description", "error", err, "id", id)
		return nil, err
	}
	return toResponse(result, localeOf(req.Locale)), nil
}

type SetOptionRequest struct {
	Locale string `header:"Accept-Language" json:"-"`

	Type  string `json:"type" validate:"required,oneof=terms agreement generic"`
	Label string `json:"label" validate:"max=255"`
	Value bool   `json:"value"`
}

//encore:api public path=/v1/transfers/:id/options method=POST
func (s *Service) SetOption(ctx context.Context, id string, req *SetOptionRequest) (*TransferResponse, error) {
	result, err := s.business.SetOption(ctx, id, domain.BooleanOption{
		Type:  domain.BooleanOptionType(req.Type),
		Label: req.Label,
		Value: req.Value,
	})
	if err != nil {
		rlog.Error("failed to set option", "error", err, "id", id, "type", req.Type)
		return nil, err
	}
	return toResponse(result, localeOf(req.Locale)), nil
}

// Validate implements validation for UpdateAmountRequest
func (r *UpdateAmountRequest) Validate() error {
	return validateStruct(r)
}

// Validate implements validation for UpdateFeeRequest
func (r *UpdateFeeRequest) Validate() error {
	return validateStruct(r)
}

// Validate implements validation for SetDestinationRequest
func (r *SetDestinationRequest) Validate() error {
	return validateStruct(r)
}

// Validate implements validation for SetMemoRequest
func (r *SetMemoRequest) Validate() error {
	return validateStruct(r)
}

// Validate implements validation for SetDescriptionRequest
func (r *SetDescriptionRequest) Validate() error {
	return validateStruct(r)
}

// Validate implements validation for SetOptionRequest
func (r *SetOptionRequest) Validate() error {
	return validateStruct(r)
}

func validateStruct(r any) error {
	if err := validate.Struct(r); err != nil {
		return &errs.Error{Code: errs.InvalidArgument, Message: err.Error()}
	}
	return nil
}
