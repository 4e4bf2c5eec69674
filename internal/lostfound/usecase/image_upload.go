package usecase

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/intelliverse/intelliverse/internal/pkg/goerror"
	"github.com/intelliverse/intelliverse/internal/pkg/storage"
)

type ImageUploadInput struct {
	ContentType string `validate:"required,oneof=image/jpeg image/png image/webp"`
	Size        int64  `validate:"required,min=1,max=5242880"`
}

type ImageUploadOutput struct {
	Key       string
	UploadURL string
}

// ImageUpload mints a presigned upload URL for an item image. The returned
// key goes into the subsequent report.
func (s *Usecase) ImageUpload(ctx context.Context, in ImageUploadInput) (*ImageUploadOutput, error) {
	ctx, span := s.startSpan(ctx, "ImageUpload")
	defer span.End()

	clm, err := s.authenticated(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	ext := ".jpg"
	switch in.ContentType {
	case "image/png":
		ext = ".png"
	case "image/webp":
		ext = ".webp"
	}

	key := "items/" + strconv.FormatInt(clm.UserID, 10) + "/" + strconv.FormatInt(s.uid.Generate(), 10) + ext

	url, err := s.storage.PresignPut(ctx, s.imageBucket(), key, storage.PutOptions{
		Size:        in.Size,
		ContentType: in.ContentType,
	}, s.cfg.GetMinute("modules.lostfound.image_url_ttl_minutes"))
	if err != nil {
		slog.ErrorContext(ctx, "failed to presign upload url", "key", key, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &ImageUploadOutput{
		Key:       key,
		UploadURL: url,
	}, nil
}
