package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/intelliverse/intelliverse/internal/lostfound/entity"
	"github.com/intelliverse/intelliverse/internal/pkg/goerror"
	"github.com/intelliverse/intelliverse/internal/pkg/idempotency"
	"github.com/intelliverse/intelliverse/internal/pkg/valueobject"
)

type ReportInput struct {
	Title       string `validate:"required,max=200"`
	Description string `validate:"required,max=2000"`
	Location    string `validate:"required,max=200"`
	Status      string `validate:"required,oneof=lost found"`
	OccurredAt  time.Time
	ImageKey    string `validate:"omitempty,max=300"`
	Attributes  valueobject.JSONMap
	// IdempotencyKey deduplicates retried submissions; optional.
	IdempotencyKey string `validate:"omitempty,max=100"`
}

type ReportOutput struct {
	ItemID    int64
	Status    string
	CreatedAt time.Time
}

// Report files a new lost or found item for the authenticated user and
// announces it on the bus. A client-supplied idempotency key makes retried
// submissions file a single report.
func (s *Usecase) Report(ctx context.Context, in ReportInput) (*ReportOutput, error) {
	ctx, span := s.startSpan(ctx, "Report")
	defer span.End()

	clm, err := s.authenticated(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if in.OccurredAt.IsZero() {
		in.OccurredAt = s.clock.Now()
	}

	var out *ReportOutput
	doReport := func(ctx context.Context) error {
		itemID := s.uid.Generate()
		now := s.clock.Now()

		if err := s.repoDB.CreateItem(ctx, entity.NewItem{
			ID:          itemID,
			Title:       in.Title,
			Description: in.Description,
			Location:    in.Location,
			OccurredAt:  in.OccurredAt,
			ImageKey:    in.ImageKey,
			Status:      entity.ItemStatusFromString(in.Status),
			Attributes:  in.Attributes,
			ReportedBy:  clm.UserID,
		}); err != nil {
			slog.ErrorContext(ctx, "failed to repo create item", "user_id", clm.UserID, "error", err)
			return goerror.NewServer(err)
		}

		// The report is filed; the announcement is best effort and must not
		// hold the response hostage, so it rides a managed goroutine that the
		// server drains on shutdown.
		s.routine.Go(context.WithoutCancel(ctx), func(ctx context.Context) error {
			if err := s.repoMessaging.PublishItemReported(ctx, ItemReportedEvent{
				ItemID:     itemID,
				Title:      in.Title,
				Location:   in.Location,
				Status:     in.Status,
				ReportedBy: clm.UserID,
			}); err != nil {
				slog.WarnContext(ctx, "failed to publish item reported event", "item_id", itemID, "error", err)
			}
			return nil
		})

		out = &ReportOutput{
			ItemID:    itemID,
			Status:    in.Status,
			CreatedAt: now,
		}
		return nil
	}

	if in.IdempotencyKey == "" {
		if err := doReport(ctx); err != nil {
			return nil, err
		}
		return out, nil
	}

	err = s.idemp.Exec(ctx, "lostfound:report:"+in.IdempotencyKey, doReport)
	if errors.Is(err, idempotency.ErrAlreadyCompleted) || errors.Is(err, idempotency.ErrAlreadyInProgress) {
		return nil, goerror.NewBusiness("report already submitted", goerror.CodeConflict)
	}
	if err != nil {
		return nil, err
	}

	return out, nil
}
