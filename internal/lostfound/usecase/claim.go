package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/intelliverse/intelliverse/internal/pkg/goerror"
)

type ClaimInput struct {
	ItemID int64 `validate:"required"`
}

type ClaimOutput struct {
	ItemID    int64
	ClaimedBy int64
}

// Claim marks the item claimed by the authenticated user. An item can be
// claimed once; a second claim reports conflict.
func (s *Usecase) Claim(ctx context.Context, in ClaimInput) (*ClaimOutput, error) {
	ctx, span := s.startSpan(ctx, "Claim")
	defer span.End()

	clm, err := s.authenticated(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	err = s.repoDB.ClaimItem(ctx, in.ItemID, clm.UserID, s.clock.Now())
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, goerror.NewBusiness("item not found", goerror.CodeNotFound)
	}
	if errors.Is(err, goerror.ErrConflict) {
		return nil, goerror.NewBusiness("item has already been claimed", goerror.CodeConflict)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo claim item", "item_id", in.ItemID, "error", err)
		return nil, goerror.NewServer(err)
	}

	// The claim is recorded; the announcement is best effort off the request
	// path, drained by the server on shutdown.
	s.routine.Go(context.WithoutCancel(ctx), func(ctx context.Context) error {
		if err := s.repoMessaging.PublishItemClaimed(ctx, ItemClaimedEvent{
			ItemID:    in.ItemID,
			ClaimedBy: clm.UserID,
		}); err != nil {
			slog.WarnContext(ctx, "failed to publish item claimed event", "item_id", in.ItemID, "error", err)
		}
		return nil
	})

	return &ClaimOutput{
		ItemID:    in.ItemID,
		ClaimedBy: clm.UserID,
	}, nil
}
