package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/intelliverse/intelliverse/internal/pkg/goerror"
	"github.com/intelliverse/intelliverse/internal/pkg/jwt"
)

type RefreshInput struct {
	RefreshToken string `validate:"required"`
}

type RefreshOutput struct {
	AccessToken string
}

// Refresh mints a new access token for a live session. The refresh token
// itself is never rotated; it stays valid until its session expires or is
// revoked.
func (s *Usecase) Refresh(ctx context.Context, in RefreshInput) (*RefreshOutput, error) {
	ctx, span := s.startSpan(ctx, "Refresh")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	clm, err := s.jwt.Verify(in.RefreshToken, jwt.ClassRefresh)
	if err != nil {
		slog.WarnContext(ctx, "refresh token rejected", "error", err)
		return nil, errInvalidRefreshToken()
	}

	tokenHash, err := s.hmac.Hash(in.RefreshToken)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash refresh token", "error", err)
		return nil, goerror.NewServer(err)
	}

	session, err := s.repoSession.FindActiveSession(ctx, string(tokenHash))
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "no live session for refresh token", "user_id", clm.UserID)
		return nil, errInvalidRefreshToken()
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo find session", "user_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	access, err := s.jwt.GenerateAccess(session.UserID, session.Email, session.Role.String())
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate access token", "user_id", session.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &RefreshOutput{AccessToken: access}, nil
}

func errInvalidRefreshToken() error {
	return goerror.NewBusiness("invalid or expired refresh token", goerror.CodeUnauthorized)
}
