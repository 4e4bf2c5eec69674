package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/intelliverse/intelliverse/internal/lostfound/entity"
	"github.com/intelliverse/intelliverse/internal/pkg/goerror"
	"github.com/intelliverse/intelliverse/internal/pkg/valueobject"
	"github.com/samber/lo"
)

type ListInput struct {
	Status   string `validate:"omitempty,oneof=lost found claimed"`
	Location string `validate:"omitempty,max=200"`
	Limit    int    `validate:"omitempty,min=1,max=100"`
	Offset   int    `validate:"omitempty,min=0"`
}

type ListItem struct {
	ItemID      int64
	Title       string
	Description string
	Location    string
	OccurredAt  time.Time
	ImageURL    string
	Status      string
	Attributes  valueobject.JSONMap
	ReportedBy  int64
	ClaimedBy   *int64
	ClaimedAt   *time.Time
	CreatedAt   time.Time
}

type ListOutput struct {
	Items []ListItem
	Total int64
}

// List returns items newest first, optionally narrowed by status and
// location.
func (s *Usecase) List(ctx context.Context, in ListInput) (*ListOutput, error) {
	ctx, span := s.startSpan(ctx, "List")
	defer span.End()

	if _, err := s.authenticated(ctx); err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if in.Limit == 0 {
		in.Limit = 20
	}

	items, total, err := s.repoDB.GetItemList(ctx, entity.ItemListFilter{
		Status:   entity.ItemStatusFromString(in.Status),
		Location: in.Location,
		Limit:    in.Limit,
		Offset:   in.Offset,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get item list", "error", err)
		return nil, goerror.NewServer(err)
	}

	return &ListOutput{
		Items: lo.Map(items, func(item entity.Item, _ int) ListItem {
			return ListItem{
				ItemID:      item.ID,
				Title:       item.Title,
				Description: item.Description,
				Location:    item.Location,
				OccurredAt:  item.OccurredAt,
				ImageURL:    s.imageURL(ctx, item.ImageKey),
				Status:      item.Status.String(),
				Attributes:  item.Attributes,
				ReportedBy:  item.ReportedBy,
				ClaimedBy:   item.ClaimedBy,
				ClaimedAt:   item.ClaimedAt,
				CreatedAt:   item.CreatedAt,
			}
		}),
		Total: total,
	}, nil
}

type DetailInput struct {
	ItemID int64 `validate:"required"`
}

// Detail returns a single item.
func (s *Usecase) Detail(ctx context.Context, in DetailInput) (*ListItem, error) {
	ctx, span := s.startSpan(ctx, "Detail")
	defer span.End()

	if _, err := s.authenticated(ctx); err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	item, err := s.repoDB.GetItemByID(ctx, in.ItemID)
	if err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			return nil, goerror.NewBusiness("item not found", goerror.CodeNotFound)
		}
		slog.ErrorContext(ctx, "failed to repo get item", "item_id", in.ItemID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &ListItem{
		ItemID:      item.ID,
		Title:       item.Title,
		Description: item.Description,
		Location:    item.Location,
		OccurredAt:  item.OccurredAt,
		ImageURL:    s.imageURL(ctx, item.ImageKey),
		Status:      item.Status.String(),
		Attributes:  item.Attributes,
		ReportedBy:  item.ReportedBy,
		ClaimedBy:   item.ClaimedBy,
		ClaimedAt:   item.ClaimedAt,
		CreatedAt:   item.CreatedAt,
	}, nil
}
