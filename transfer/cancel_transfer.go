package transfer

import (
	"context"

	"encore.dev/rlog"
)

// CancelTransfer abandons an attempt that has not been executed.
//
//encore:api public path=/v1/transfers/:id method=DELETE
func (s *Service) CancelTransfer(ctx context.Context, id string) error {
	if err := s.business.Cancel(ctx, id); err != nil {
		rlog.Error("failed to cancel transfer", "error", err, "id", id)
		return err
	}
	return nil
}
