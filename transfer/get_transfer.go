package transfer

import (
	"context"

	"encore.dev/beta/errs"
	"encore.dev/rlog"
)

type GetTransferRequest struct {
	Locale string `header:"Accept-Language"`
}

//encore:api public path=/v1/transfers/:id method=GET
func (s *Service) GetTransfer(ctx context.Context, id string, req *GetTransferRequest) (*TransferResponse, error) {
	if id == "" {
		return nil, &errs.Error{Code: errs.InvalidArgument, Message: "invalid transfer ID"}
	}

	result, err := s.business.Get(ctx, id)
	if err != nil {
		rlog.Error("failed to get transfer", "error", err, "id", id)
		return nil, err
	}

	return toResponse(result, localeOf(req.Locale)), nil
}
