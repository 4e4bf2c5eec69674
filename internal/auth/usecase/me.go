package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/intelliverse/intelliverse/internal/auth/entity"
	"github.com/intelliverse/intelliverse/internal/pkg/goerror"
	"github.com/intelliverse/intelliverse/internal/pkg/jwt"
)

type MeOutput struct {
	UserID      int64
	Email       string
	Role        string
	Verified    bool
	Active      bool
	Profile     entity.Profile
	LastLoginAt *time.Time
	CreatedAt   time.Time
}

// Me returns the authenticated user's account and profile.
func (s *Usecase) Me(ctx context.Context) (*MeOutput, error) {
	ctx, span := s.startSpan(ctx, "Me")
	defer span.End()

	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return nil, goerror.NewBusiness("authentication required", goerror.CodeUnauthorized)
	}

	user, err := s.repoDB.GetIdentityByEmail(ctx, clm.UserEmail)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "account behind valid token is gone", "user_id", clm.UserID)
		return nil, goerror.NewBusiness("account not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get identity by email", "user_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &MeOutput{
		UserID:      user.ID,
		Email:       user.Email,
		Role:        user.Role.String(),
		Verified:    user.Verified,
		Active:      user.Active,
		Profile:     user.Profile,
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
	}, nil
}
