package usecase

import (
	"context"
	"log/slog"

	"github.com/intelliverse/intelliverse/internal/pkg/goerror"
	"github.com/intelliverse/intelliverse/internal/pkg/jwt"
)

// LogoutAll revokes every live session of the authenticated user. The
// caller's access token stays valid until it expires on its own.
func (s *Usecase) LogoutAll(ctx context.Context) error {
	ctx, span := s.startSpan(ctx, "LogoutAll")
	defer span.End()

	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return goerror.NewBusiness("authentication required", goerror.CodeUnauthorized)
	}

	if err := s.repoSession.DeactivateUserSessions(ctx, clm.UserID); err != nil {
		slog.ErrorContext(ctx, "failed to repo deactivate user sessions", "user_id", clm.UserID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
