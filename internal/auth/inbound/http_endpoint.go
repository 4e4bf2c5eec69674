package inbound

import (
	"github.com/intelliverse/intelliverse/internal/auth/usecase"
	"github.com/intelliverse/intelliverse/internal/pkg/router"
)

// HTTPEndpoint exposes HTTP handlers for the email verification auth flows.
type HTTPEndpoint struct {
	uc uc
}

// SignupChallenge starts registration by mailing a verification code.
// @Summary Request signup verification code
// @Description Sends a one-time verification code to the email address if it is not already registered.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body SignupChallengeRequest true "Signup challenge payload"
// @Success 200 {object} router.successResponse{data=SignupChallengeResponse} "Code sent"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 409 {object} router.errorResponse "Email already registered"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/auth/signup/challenge [post]
func (h *HTTPEndpoint) SignupChallenge(r *router.Request) (any, error) {
	var req SignupChallengeRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.SignupChallenge(r.Context(), usecase.SignupChallengeInput{
		Email:     req.Email,
		FirstName: req.FirstName,
	})
	if err != nil {
		return nil, err
	}

	return SignupChallengeResponse{
		Email:     resp.Email,
		ExpiresAt: resp.ExpiresAt,
	}, nil
}

// SignupConfirm redeems a signup code and creates the account.
// @Summary Confirm signup
// @Description Verifies the signup code and creates a verified, active account. No tokens are issued.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body SignupConfirmRequest true "Signup confirmation payload"
// @Success 200 {object} router.successResponse{data=SignupConfirmResponse} "Account created"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Wrong or expired code"
// @Failure 404 {object} router.errorResponse "No pending verification"
// @Failure 409 {object} router.errorResponse "Email already registered"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 429 {object} router.errorResponse "Too many failed attempts"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/auth/signup/confirm [post]
func (h *HTTPEndpoint) SignupConfirm(r *router.Request) (any, error) {
	var req SignupConfirmRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.SignupConfirm(r.Context(), usecase.SignupConfirmInput{
		Email:    req.Email,
		Code:     req.Code,
		Password: req.Password,
		Role:     req.Role,
		Profile: usecase.SignupProfileInput{
			FirstName:   req.Profile.FirstName,
			LastName:    req.Profile.LastName,
			Department:  req.Profile.Department,
			Phone:       req.Profile.Phone,
			Campus:      req.Profile.Campus,
			StudentID:   req.Profile.StudentID,
			Semester:    req.Profile.Semester,
			EmployeeID:  req.Profile.EmployeeID,
			Designation: req.Profile.Designation,
		},
	})
	if err != nil {
		return nil, err
	}

	return SignupConfirmResponse{
		UserID: resp.UserID,
		Email:  resp.Email,
		Role:   resp.Role,
	}, nil
}

// LoginChallenge checks credentials and mails a login code.
// @Summary Request login verification code
// @Description Validates the password and sends a one-time login code to the email address.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body LoginChallengeRequest true "Login challenge payload"
// @Success 200 {object} router.successResponse{data=LoginChallengeResponse} "Code sent"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Invalid credentials"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/auth/login/challenge [post]
func (h *HTTPEndpoint) LoginChallenge(r *router.Request) (any, error) {
	var req LoginChallengeRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.LoginChallenge(r.Context(), usecase.LoginChallengeInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return nil, err
	}

	return LoginChallengeResponse{
		Email:     resp.Email,
		ExpiresAt: resp.ExpiresAt,
	}, nil
}

// LoginConfirm redeems a login code and issues tokens.
// @Summary Confirm login
// @Description Verifies the login code and returns an access/refresh token pair.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body LoginConfirmRequest true "Login confirmation payload"
// @Success 200 {object} router.successResponse{data=LoginConfirmResponse} "Authentication result"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Wrong or expired code"
// @Failure 404 {object} router.errorResponse "No pending verification"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 429 {object} router.errorResponse "Too many failed attempts"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/auth/login/confirm [post]
func (h *HTTPEndpoint) LoginConfirm(r *router.Request) (any, error) {
	var req LoginConfirmRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.LoginConfirm(r.Context(), usecase.LoginConfirmInput{
		Email:      req.Email,
		Code:       req.Code,
		DeviceID:   req.DeviceID,
		DeviceType: req.DeviceType,
		UserAgent:  req.UserAgent,
	})
	if err != nil {
		return nil, err
	}

	return LoginConfirmResponse{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		UserID:       resp.UserID,
		Email:        resp.Email,
		Role:         resp.Role,
		FullName:     resp.FullName,
	}, nil
}

// Refresh issues a new access token for a live session.
// @Summary Refresh access token
// @Description Exchanges a valid refresh token for a new access token. The refresh token is not rotated.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body RefreshRequest true "Refresh payload"
// @Success 200 {object} router.successResponse{data=RefreshResponse} "New access token"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Invalid or expired refresh token"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/auth/refresh [post]
func (h *HTTPEndpoint) Refresh(r *router.Request) (any, error) {
	var req RefreshRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Refresh(r.Context(), usecase.RefreshInput{RefreshToken: req.RefreshToken})
	if err != nil {
		return nil, err
	}

	return RefreshResponse{AccessToken: resp.AccessToken}, nil
}

// Logout revokes the session behind the refresh token.
// @Summary Logout
// @Description Revokes the session for the given refresh token. Succeeds even if the token is unknown.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body LogoutRequest true "Logout payload"
// @Success 200 {object} router.successResponse{data=LogoutResponse} "Logged out"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/auth/logout [post]
func (h *HTTPEndpoint) Logout(r *router.Request) (any, error) {
	var req LogoutRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.Logout(r.Context(), usecase.LogoutInput{RefreshToken: req.RefreshToken}); err != nil {
		return nil, err
	}

	return LogoutResponse{}, nil
}

// LogoutAll revokes every session of the authenticated user.
// @Summary Logout everywhere
// @Description Revokes all sessions belonging to the authenticated user.
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} router.successResponse{data=LogoutAllResponse} "Sessions revoked"
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/auth/logout-all [post]
func (h *HTTPEndpoint) LogoutAll(r *router.Request) (any, error) {
	if err := h.uc.LogoutAll(r.Context()); err != nil {
		return nil, err
	}

	return LogoutAllResponse{}, nil
}

// Me returns the authenticated user's account and profile.
// @Summary Current user
// @Description Returns the account and profile of the authenticated user.
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} router.successResponse{data=MeResponse} "Account detail"
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Failure 404 {object} router.errorResponse "Account not found"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/auth/me [get]
func (h *HTTPEndpoint) Me(r *router.Request) (any, error) {
	resp, err := h.uc.Me(r.Context())
	if err != nil {
		return nil, err
	}

	return MeResponse{
		UserID:      resp.UserID,
		Email:       resp.Email,
		Role:        resp.Role,
		Verified:    resp.Verified,
		Active:      resp.Active,
		Profile:     resp.Profile,
		LastLoginAt: resp.LastLoginAt,
		CreatedAt:   resp.CreatedAt,
	}, nil
}
