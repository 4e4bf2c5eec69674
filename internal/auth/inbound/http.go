package inbound

import (
	"context"
	"time"

	"github.com/intelliverse/intelliverse/internal/auth/usecase"
	"github.com/intelliverse/intelliverse/internal/pkg/router"
	"golang.org/x/time/rate"
)

type uc interface {
	SignupChallenge(ctx context.Context, in usecase.SignupChallengeInput) (*usecase.SignupChallengeOutput, error)
	SignupConfirm(ctx context.Context, in usecase.SignupConfirmInput) (*usecase.SignupConfirmOutput, error)

	LoginChallenge(ctx context.Context, in usecase.LoginChallengeInput) (*usecase.LoginChallengeOutput, error)
	LoginConfirm(ctx context.Context, in usecase.LoginConfirmInput) (*usecase.LoginConfirmOutput, error)

	Refresh(ctx context.Context, in usecase.RefreshInput) (*usecase.RefreshOutput, error)
	Logout(ctx context.Context, in usecase.LogoutInput) error
	LogoutAll(ctx context.Context) error

	Me(ctx context.Context) (*usecase.MeOutput, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	// Each challenge endpoint sends an email, so it gets its own rate limit.
	challengeLimit := router.RateLimit(rate.Every(30*time.Second), 3)

	// Registration & Login
	r.POST("/api/v1/auth/signup/challenge", end.SignupChallenge, challengeLimit)
	r.POST("/api/v1/auth/signup/confirm", end.SignupConfirm)
	r.POST("/api/v1/auth/login/challenge", end.LoginChallenge, challengeLimit)
	r.POST("/api/v1/auth/login/confirm", end.LoginConfirm)

	// Session lifecycle
	r.POST("/api/v1/auth/refresh", end.Refresh)
	r.POST("/api/v1/auth/logout", end.Logout)
	r.POST("/api/v1/auth/logout-all", end.LogoutAll) // need authenticated

	// Profile (need authenticated)
	r.GET("/api/v1/auth/me", end.Me)
}
