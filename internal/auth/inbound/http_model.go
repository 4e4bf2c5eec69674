package inbound

import (
	"time"

	"github.com/intelliverse/intelliverse/internal/auth/entity"
)

type SignupChallengeRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name,omitempty"`
}

type SignupChallengeResponse struct {
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (SignupChallengeResponse) Message() string {
	return "Verification code sent to your email."
}

type ProfileRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Department  string `json:"department"`
	Phone       string `json:"phone,omitempty"`
	Campus      string `json:"campus,omitempty"`
	StudentID   string `json:"student_id,omitempty"`
	Semester    int    `json:"semester,omitempty"`
	EmployeeID  string `json:"employee_id,omitempty"`
	Designation string `json:"designation,omitempty"`
}

type SignupConfirmRequest struct {
	Email    string         `json:"email"`
	Code     string         `json:"code"`
	Password string         `json:"password"`
	Role     string         `json:"role"`
	Profile  ProfileRequest `json:"profile"`
}

type SignupConfirmResponse struct {
	UserID int64  `json:"user_id,string"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

func (SignupConfirmResponse) Message() string {
	return "Account created successfully. You can now log in."
}

type LoginChallengeRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginChallengeResponse struct {
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (LoginChallengeResponse) Message() string {
	return "Verification code sent to your email."
}

type LoginConfirmRequest struct {
	Email      string `json:"email"`
	Code       string `json:"code"`
	DeviceID   string `json:"device_id,omitempty"`
	DeviceType string `json:"device_type,omitempty"`
	UserAgent  string `json:"user_agent,omitempty"`
}

type LoginConfirmResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	UserID       int64  `json:"user_id,string"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	FullName     string `json:"full_name"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type RefreshResponse struct {
	AccessToken string `json:"access_token"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type LogoutResponse struct{}

func (LogoutResponse) Message() string {
	return "Logged out successfully."
}

type LogoutAllResponse struct{}

func (LogoutAllResponse) Message() string {
	return "All sessions have been revoked."
}

type MeResponse struct {
	UserID      int64          `json:"user_id,string"`
	Email       string         `json:"email"`
	Role        string         `json:"role"`
	Verified    bool           `json:"verified"`
	Active      bool           `json:"active"`
	Profile     entity.Profile `json:"profile"`
	LastLoginAt *time.Time     `json:"last_login_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}
