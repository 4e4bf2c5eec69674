package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/intelliverse/intelliverse/internal/auth/entity"
	"github.com/intelliverse/intelliverse/internal/pkg/goerror"
)

type LoginConfirmInput struct {
	Email string `validate:"required,email"`
	Code  string `validate:"required,numeric,len=6"`
	//
	DeviceID   string `validate:"omitempty,max=100"`
	DeviceType string `validate:"omitempty,oneof=mobile web desktop"`
	UserAgent  string `validate:"omitempty,max=512"`
}

type LoginConfirmOutput struct {
	AccessToken  string
	RefreshToken string
	UserID       int64
	Email        string
	Role         string
	FullName     string
}

// LoginConfirm redeems the login code and establishes a session: a fresh
// access and refresh token pair, with the refresh token recorded (hashed)
// as a revocable session.
func (s *Usecase) LoginConfirm(ctx context.Context, in LoginConfirmInput) (*LoginConfirmOutput, error) {
	ctx, span := s.startSpan(ctx, "LoginConfirm")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))

	// The account is re-checked here: it may have been deactivated between
	// the challenge and its confirmation.
	user, err := s.repoDB.GetIdentityByEmail(ctx, email)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "login confirm for unknown email", "email", email)
		return nil, errInvalidCredentials()
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get identity by email", "email", email, "error", err)
		return nil, goerror.NewServer(err)
	}

	if !user.Verified || !user.Active {
		slog.WarnContext(ctx, "login confirm for unusable account", "user_id", user.ID)
		return nil, errInvalidCredentials()
	}

	if err = s.consumeChallenge(ctx, entity.ChallengePurposeLogin, email, in.Code); err != nil {
		return nil, err
	}

	access, refresh, err := s.jwt.GeneratePair(user.ID, user.Email, user.Role.String())
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate token pair", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	refreshHash, err := s.hmac.Hash(refresh)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash refresh token", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	now := s.clock.Now()
	if err = s.repoSession.CreateSession(ctx, entity.Session{
		TokenHash: string(refreshHash),
		UserID:    user.ID,
		Email:     user.Email,
		Role:      user.Role,
		Device: entity.DeviceInfo{
			DeviceID:  in.DeviceID,
			Type:      entity.DeviceTypeFromString(in.DeviceType),
			UserAgent: in.UserAgent,
		},
		Active:    true,
		CreatedAt: now,
		// The session lives exactly as long as the refresh token it anchors.
		ExpiresAt: now.Add(s.cfg.GetDay("jwt.refresh_ttl_days")),
	}); err != nil {
		slog.ErrorContext(ctx, "failed to repo create session", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if err = s.repoDB.UpdateLastLogin(ctx, user.ID, now); err != nil {
		// The login already succeeded; the timestamp is bookkeeping.
		slog.WarnContext(ctx, "failed to update last login", "user_id", user.ID, "error", err)
	}

	return &LoginConfirmOutput{
		AccessToken:  access,
		RefreshToken: refresh,
		UserID:       user.ID,
		Email:        user.Email,
		Role:         user.Role.String(),
		FullName:     user.Profile.FullName(),
	}, nil
}
