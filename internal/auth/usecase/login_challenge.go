package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/intelliverse/intelliverse/internal/auth/entity"
	"github.com/intelliverse/intelliverse/internal/pkg/goerror"
)

type LoginChallengeInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

type LoginChallengeOutput struct {
	Email     string
	ExpiresAt time.Time
}

// LoginChallenge checks the password and, when it holds, mails a login code.
// Unknown address, wrong password, unverified account and deactivated
// account all produce the same response, so the endpoint reveals nothing
// about which addresses exist.
func (s *Usecase) LoginChallenge(ctx context.Context, in LoginChallengeInput) (*LoginChallengeOutput, error) {
	ctx, span := s.startSpan(ctx, "LoginChallenge")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))

	user, err := s.repoDB.GetIdentityByEmail(ctx, email)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "login for unknown email", "email", email)
		return nil, errInvalidCredentials()
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get identity by email", "email", email, "error", err)
		return nil, goerror.NewServer(err)
	}

	if !s.password.Verify(user.PasswordHash, in.Password) {
		slog.WarnContext(ctx, "password mismatch", "user_id", user.ID)
		return nil, errInvalidCredentials()
	}

	if !user.Verified {
		slog.WarnContext(ctx, "login for unverified account", "user_id", user.ID)
		return nil, errInvalidCredentials()
	}

	if !user.Active {
		slog.WarnContext(ctx, "login for deactivated account", "user_id", user.ID)
		return nil, errInvalidCredentials()
	}

	expiresAt, err := s.issueChallenge(ctx, email, user.Profile.FirstName, entity.ChallengePurposeLogin)
	if err != nil {
		return nil, err
	}

	return &LoginChallengeOutput{
		Email:     email,
		ExpiresAt: expiresAt,
	}, nil
}

func errInvalidCredentials() error {
	return goerror.NewBusiness("invalid email or password", goerror.CodeUnauthorized)
}
