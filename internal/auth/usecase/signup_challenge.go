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

type SignupChallengeInput struct {
	Email     string `validate:"required,email"`
	FirstName string `validate:"omitempty,alphaspace,max=100"`
}

type SignupChallengeOutput struct {
	Email     string
	ExpiresAt time.Time
}

// SignupChallenge starts registration by mailing a verification code to the
// address. An address that already belongs to an account is rejected before
// any code is issued.
func (s *Usecase) SignupChallenge(ctx context.Context, in SignupChallengeInput) (*SignupChallengeOutput, error) {
	ctx, span := s.startSpan(ctx, "SignupChallenge")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))

	_, err := s.repoDB.GetIdentityByEmail(ctx, email)
	if err == nil {
		slog.WarnContext(ctx, "signup for registered email", "email", email)
		return nil, goerror.NewBusiness("email is already registered", goerror.CodeConflict)
	}
	if !errors.Is(err, goerror.ErrNotFound) {
		slog.ErrorContext(ctx, "failed to repo get identity by email", "email", email, "error", err)
		return nil, goerror.NewServer(err)
	}

	expiresAt, err := s.issueChallenge(ctx, email, in.FirstName, entity.ChallengePurposeSignup)
	if err != nil {
		return nil, err
	}

	return &SignupChallengeOutput{
		Email:     email,
		ExpiresAt: expiresAt,
	}, nil
}
