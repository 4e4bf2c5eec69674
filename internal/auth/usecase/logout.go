package usecase

import (
	"context"
	"log/slog"

	"github.com/intelliverse/intelliverse/internal/pkg/goerror"
)

type LogoutInput struct {
	RefreshToken string `validate:"required"`
}

// Logout revokes the session behind the refresh token. The token is not
// verified first: a malformed, expired or already revoked token still logs
// out cleanly, since the only observable outcome is that the session is gone.
func (s *Usecase) Logout(ctx context.Context, in LogoutInput) error {
	ctx, span := s.startSpan(ctx, "Logout")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	tokenHash, err := s.hmac.Hash(in.RefreshToken)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash refresh token", "error", err)
		return goerror.NewServer(err)
	}

	if err = s.repoSession.DeactivateSession(ctx, string(tokenHash)); err != nil {
		slog.ErrorContext(ctx, "failed to repo deactivate session", "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
