package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/intelliverse/intelliverse/internal/auth/entity"
	"github.com/intelliverse/intelliverse/internal/pkg/clock"
	"github.com/intelliverse/intelliverse/internal/pkg/config"
	"github.com/intelliverse/intelliverse/internal/pkg/goerror"
	"github.com/intelliverse/intelliverse/internal/pkg/hash"
	"github.com/intelliverse/intelliverse/internal/pkg/instrument"
	"github.com/intelliverse/intelliverse/internal/pkg/jwt"
	"github.com/intelliverse/intelliverse/internal/pkg/otp"
	"github.com/intelliverse/intelliverse/internal/pkg/uid"
	"github.com/intelliverse/intelliverse/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

type repoDB interface {
	GetIdentityByEmail(ctx context.Context, email string) (entity.Identity, error)
	CreateIdentity(ctx context.Context, in entity.NewIdentity) error
	UpdateLastLogin(ctx context.Context, id int64, at time.Time) error
}

type repoChallenge interface {
	UpsertChallenge(ctx context.Context, ch entity.Challenge, ttl time.Duration) error
	FindChallenge(ctx context.Context, purpose entity.ChallengePurpose, email string) (entity.Challenge, error)
	RecordFailedAttempt(ctx context.Context, purpose entity.ChallengePurpose, email string) (int, error)
	InvalidateChallenge(ctx context.Context, purpose entity.ChallengePurpose, email string) error
}

type repoSession interface {
	CreateSession(ctx context.Context, session entity.Session) error
	FindActiveSession(ctx context.Context, tokenHash string) (entity.Session, error)
	DeactivateSession(ctx context.Context, tokenHash string) error
	DeactivateUserSessions(ctx context.Context, userID int64) error
}

type repoMailer interface {
	SendCode(ctx context.Context, to, name, code string, purpose entity.ChallengePurpose, expiryMinutes int) error
}

type Usecase struct {
	repoDB        repoDB
	repoChallenge repoChallenge
	repoSession   repoSession
	mailer        repoMailer
	validator     validator.Validator
	cfg           config.Config
	password      hash.Hash
	hmac          hash.Hash
	codes         otp.Generator
	uid           uid.NumberID
	clock         clock.Clocker
	jwt           jwt.JWT
	ins           instrument.Instrumentation
}

type Dependency struct {
	RepoDB        repoDB
	RepoChallenge repoChallenge
	RepoSession   repoSession
	Mailer        repoMailer
	Validator     validator.Validator
	Config        config.Config
	Password      hash.Hash
	HMAC          hash.Hash
	Codes         otp.Generator
	UID           uid.NumberID
	Clock         clock.Clocker
	JWT           jwt.JWT
	Instrument    instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:        dep.RepoDB,
		repoChallenge: dep.RepoChallenge,
		repoSession:   dep.RepoSession,
		mailer:        dep.Mailer,
		validator:     dep.Validator,
		cfg:           dep.Config,
		password:      dep.Password,
		hmac:          dep.HMAC,
		codes:         dep.Codes,
		uid:           dep.UID,
		clock:         dep.Clock,
		jwt:           dep.JWT,
		ins:           dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("auth.usecase").Start(ctx, name)
}

func (s *Usecase) otpTTL() time.Duration {
	return s.cfg.GetMinute("modules.auth.otp_ttl_minutes")
}

func (s *Usecase) otpMaxAttempts() int {
	if n := s.cfg.GetInt("modules.auth.otp_max_attempts"); n > 0 {
		return n
	}
	return 3
}

// issueChallenge generates a fresh code, stores it (replacing any pending
// challenge for the same email and purpose) and mails it out. If the mail
// cannot be delivered the stored challenge is destroyed again so a stale
// unverifiable code never lingers.
func (s *Usecase) issueChallenge(ctx context.Context, email, name string, purpose entity.ChallengePurpose) (time.Time, error) {
	code, err := s.codes.Generate()
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate verification code", "error", err)
		return time.Time{}, goerror.NewServer(err)
	}

	ttl := s.otpTTL()
	expiresAt := s.clock.Now().Add(ttl)

	if err = s.repoChallenge.UpsertChallenge(ctx, entity.Challenge{
		Email:     email,
		Purpose:   purpose,
		Code:      code,
		ExpiresAt: expiresAt,
	}, ttl); err != nil {
		slog.ErrorContext(ctx, "failed to store challenge", "email", email, "purpose", purpose, "error", err)
		return time.Time{}, goerror.NewServer(err)
	}

	if err = s.mailer.SendCode(ctx, email, name, code, purpose, int(ttl.Minutes())); err != nil {
		slog.ErrorContext(ctx, "failed to send verification email", "email", email, "error", err)

		if delErr := s.repoChallenge.InvalidateChallenge(ctx, purpose, email); delErr != nil {
			slog.ErrorContext(ctx, "failed to destroy challenge after delivery failure", "email", email, "error", delErr)
		}

		return time.Time{}, goerror.NewBusiness("failed to send verification email, please try again", goerror.CodeInternal)
	}

	return expiresAt, nil
}

// consumeChallenge verifies the submitted code against the pending challenge
// and destroys the challenge on success. Failure outcomes:
//   - no pending challenge: not found
//   - lapsed challenge: destroyed, expired error
//   - wrong code: attempt recorded; remaining tries reported, or the
//     challenge destroyed once the ceiling is reached
func (s *Usecase) consumeChallenge(ctx context.Context, purpose entity.ChallengePurpose, email, code string) error {
	ch, err := s.repoChallenge.FindChallenge(ctx, purpose, email)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "no pending challenge", "email", email, "purpose", purpose)
		return goerror.NewBusiness("verification code not found, request a new one", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to load challenge", "email", email, "error", err)
		return goerror.NewServer(err)
	}

	if ch.ExpiredAt(s.clock.Now()) {
		if delErr := s.repoChallenge.InvalidateChallenge(ctx, purpose, email); delErr != nil {
			slog.ErrorContext(ctx, "failed to destroy lapsed challenge", "email", email, "error", delErr)
			return goerror.NewServer(delErr)
		}

		slog.WarnContext(ctx, "challenge has lapsed", "email", email, "purpose", purpose)
		return goerror.NewBusiness("verification code has expired, request a new one", goerror.CodeUnauthorized)
	}

	if !s.codes.Match(code, ch.Code) {
		attempts, recErr := s.repoChallenge.RecordFailedAttempt(ctx, purpose, email)
		if recErr != nil && !errors.Is(recErr, goerror.ErrNotFound) {
			slog.ErrorContext(ctx, "failed to record failed attempt", "email", email, "error", recErr)
			return goerror.NewServer(recErr)
		}

		remaining := s.otpMaxAttempts() - attempts
		if remaining <= 0 {
			if delErr := s.repoChallenge.InvalidateChallenge(ctx, purpose, email); delErr != nil {
				slog.ErrorContext(ctx, "failed to destroy exhausted challenge", "email", email, "error", delErr)
				return goerror.NewServer(delErr)
			}

			slog.WarnContext(ctx, "challenge attempts exhausted", "email", email, "purpose", purpose)
			return goerror.NewBusiness("too many failed attempts, request a new code", goerror.CodeTooManyRequest)
		}

		slog.WarnContext(ctx, "verification code mismatch", "email", email, "purpose", purpose, "remaining", remaining)
		return goerror.NewBusinessWithFields("invalid verification code", goerror.CodeUnauthorized, map[string]string{
			"attempts_remaining": strconv.Itoa(remaining),
		})
	}

	// Consumed exactly once: a verified code must never confirm twice.
	if err = s.repoChallenge.InvalidateChallenge(ctx, purpose, email); err != nil {
		slog.ErrorContext(ctx, "failed to consume challenge", "email", email, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
