package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/intelliverse/intelliverse/internal/pkg/goerror"
)

type ConsumeItemClaimedInput struct {
	ItemID    int64 `validate:"required,gt=0"`
	ClaimedBy int64 `validate:"required,gt=0"`
}

// ConsumeItemClaimed emails the reporter that someone claimed their item.
// Reporters claiming their own report get no email.
func (s *Usecase) ConsumeItemClaimed(ctx context.Context, in ConsumeItemClaimedInput) error {
	ctx, span := s.startSpan(ctx, "ConsumeItemClaimed")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		slog.ErrorContext(ctx, "Validation failed", "error", err)
		return nil
	}

	reporter, err := s.repoDB.GetItemReporter(ctx, in.ItemID)
	if errors.Is(err, goerror.ErrNotFound) {
		// The item was deleted between claim and delivery; nothing to notify.
		slog.WarnContext(ctx, "claimed item no longer exists", "item_id", in.ItemID)
		return nil
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get item reporter", "item_id", in.ItemID, "error", err)
		return err
	}

	if reporter.ReportedBy == in.ClaimedBy {
		return nil
	}

	if err := s.repoMail.SendClaimNotice(ctx, reporter.Email, reporter.FullName, reporter.Title); err != nil {
		slog.ErrorContext(ctx, "failed to send claim notice", "item_id", in.ItemID, "error", err)
		return err
	}

	return nil
}
