package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/intelliverse/intelliverse/internal/auth/entity"
	"github.com/intelliverse/intelliverse/internal/pkg/goerror"
)

type SignupConfirmInput struct {
	Email    string `validate:"required,email"`
	Code     string `validate:"required,numeric,len=6"`
	Password string `validate:"required,min=8,max=72"`
	Role     string `validate:"required,oneof=student faculty"`
	Profile  SignupProfileInput
}

type SignupProfileInput struct {
	FirstName  string `validate:"required,alphaspace,max=100"`
	LastName   string `validate:"required,alphaspace,max=100"`
	Department string `validate:"required,max=100"`
	Phone      string `validate:"omitempty,max=20"`
	Campus     string `validate:"omitempty,max=100"`
	StudentID  string `validate:"omitempty,max=50"`
	Semester   int    `validate:"omitempty,min=1,max=8"`
	EmployeeID string `validate:"omitempty,max=50"`
	Designation string `validate:"omitempty,max=100"`
}

type SignupConfirmOutput struct {
	UserID int64
	Email  string
	Role   string
}

// SignupConfirm redeems the signup code and creates the account, already
// verified and active. No tokens are issued here; the new account signs in
// through the login flow.
func (s *Usecase) SignupConfirm(ctx context.Context, in SignupConfirmInput) (*SignupConfirmOutput, error) {
	ctx, span := s.startSpan(ctx, "SignupConfirm")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	role := entity.RoleFromString(in.Role)
	if !role.IsRegisterable() {
		return nil, goerror.NewBusiness("role cannot be registered", goerror.CodeInvalidInput)
	}

	profile, err := entity.NewProfile(role, entity.Profile{
		FirstName:  in.Profile.FirstName,
		LastName:   in.Profile.LastName,
		Department: in.Profile.Department,
		Phone:      in.Profile.Phone,
		Campus:     in.Profile.Campus,
		Student:    studentVariant(role, in.Profile),
		Faculty:    facultyVariant(role, in.Profile),
	})
	if err != nil {
		return nil, goerror.NewBusiness(err.Error(), goerror.CodeInvalidInput)
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))

	if err = s.consumeChallenge(ctx, entity.ChallengePurposeSignup, email, in.Code); err != nil {
		return nil, err
	}

	passwordHash, err := s.password.Hash(in.Password)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash password", "error", err)
		return nil, goerror.NewServer(err)
	}

	userID := s.uid.Generate()

	err = s.repoDB.CreateIdentity(ctx, entity.NewIdentity{
		ID:           userID,
		Email:        email,
		PasswordHash: string(passwordHash),
		Role:         role,
		Verified:     true,
		Profile:      profile,
	})
	if errors.Is(err, goerror.ErrConflict) {
		// Raced with another confirmation for the same address.
		slog.WarnContext(ctx, "identity already exists", "email", email)
		return nil, goerror.NewBusiness("email is already registered", goerror.CodeConflict)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo create identity", "email", email, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &SignupConfirmOutput{
		UserID: userID,
		Email:  email,
		Role:   role.String(),
	}, nil
}

func studentVariant(role entity.Role, p SignupProfileInput) *entity.StudentProfile {
	if role != entity.RoleStudent {
		return nil
	}
	return &entity.StudentProfile{StudentID: p.StudentID, Semester: p.Semester}
}

func facultyVariant(role entity.Role, p SignupProfileInput) *entity.FacultyProfile {
	if role != entity.RoleFaculty {
		return nil
	}
	return &entity.FacultyProfile{EmployeeID: p.EmployeeID, Designation: p.Designation}
}
