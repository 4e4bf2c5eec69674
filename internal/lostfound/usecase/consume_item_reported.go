package usecase

import (
	"context"
	"log/slog"
)

type ConsumeItemReportedInput struct {
	ItemID     int64  `validate:"required,gt=0"`
	Title      string `validate:"required"`
	Location   string
	Status     string
	ReportedBy int64
}

// ConsumeItemReported notifies the lost-and-found desk about a fresh report.
// The desk mailbox is optional; without one the event is dropped silently.
func (s *Usecase) ConsumeItemReported(ctx context.Context, in ConsumeItemReportedInput) error {
	ctx, span := s.startSpan(ctx, "ConsumeItemReported")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		slog.ErrorContext(ctx, "Validation failed", "error", err)
		return nil
	}

	desk := s.cfg.GetString("modules.lostfound.desk_email")
	if desk == "" {
		return nil
	}

	if err := s.repoMail.SendReportNotice(ctx, desk, in.Title, in.Location, in.Status); err != nil {
		slog.ErrorContext(ctx, "failed to send report notice", "item_id", in.ItemID, "error", err)
		return err
	}

	return nil
}
