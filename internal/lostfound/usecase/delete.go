package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/intelliverse/intelliverse/internal/pkg/goerror"
)

type DeleteInput struct {
	ItemID int64 `validate:"required"`
}

// Delete removes the item and its stored image. Restricted to admins.
func (s *Usecase) Delete(ctx context.Context, in DeleteInput) error {
	ctx, span := s.startSpan(ctx, "Delete")
	defer span.End()

	if _, err := s.authenticatedAndAuthorized(ctx, "lostfound.item", "delete"); err != nil {
		return err
	}

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	item, err := s.repoDB.GetItemByID(ctx, in.ItemID)
	if errors.Is(err, goerror.ErrNotFound) {
		return goerror.NewBusiness("item not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get item", "item_id", in.ItemID, "error", err)
		return goerror.NewServer(err)
	}

	if err := s.repoDB.DeleteItem(ctx, in.ItemID); err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			return goerror.NewBusiness("item not found", goerror.CodeNotFound)
		}
		slog.ErrorContext(ctx, "failed to repo delete item", "item_id", in.ItemID, "error", err)
		return goerror.NewServer(err)
	}

	if item.ImageKey != "" {
		if err := s.storage.DeleteObject(ctx, s.imageBucket(), item.ImageKey); err != nil {
			// The record is gone; an orphaned object only wastes space.
			slog.WarnContext(ctx, "failed to delete item image", "key", item.ImageKey, "error", err)
		}
	}

	return nil
}
