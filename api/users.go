package api

import (
	"context"
	"net/http"

	"abhyaasi/models"
)

// UsersClient covers registration, login, profile and account management.
// Any 401 from this client purges the stored credentials.
type UsersClient struct {
	c *Client
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Mobile   string `json:"mobile,omitempty"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the bearer token and the user it belongs to.
type LoginResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Register creates an account. The backend mails an OTP; the account is
// usable after VerifyOTP.
func (u *UsersClient) Register(ctx context.Context, req RegisterRequest) error {
	return u.c.do(ctx, http.MethodPost, "/api/users/register", req, nil, callOpts{purge401: true})
}

// VerifyOTP confirms a registration OTP and logs the user in.
func (u *UsersClient) VerifyOTP(ctx context.Context, email, otp string) (*LoginResponse, error) {
	body := map[string]string{"email": email, "otp": otp}
	var out LoginResponse
	if err := u.c.do(ctx, http.MethodPost, "/api/users/verify-otp", body, &out, callOpts{purge401: true}); err != nil {
		return nil, err
	}
	return &out, nil
}

func (u *UsersClient) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	var out LoginResponse
	if err := u.c.do(ctx, http.MethodPost, "/api/users/login", req, &out, callOpts{purge401: true}); err != nil {
		return nil, err
	}
	return &out, nil
}

// OAuthLogin exchanges a provider authorization code for a session.
func (u *UsersClient) OAuthLogin(ctx context.Context, provider, code string) (*LoginResponse, error) {
	body := map[string]string{"provider": provider, "code": code}
	var out LoginResponse
	if err := u.c.do(ctx, http.MethodPost, "/api/users/oauth", body, &out, callOpts{purge401: true}); err != nil {
		return nil, err
	}
	return &out, nil
}

func (u *UsersClient) Profile(ctx context.Context) (*models.User, error) {
	var out models.User
	if err := u.c.do(ctx, http.MethodGet, "/api/users/profile", nil, &out, callOpts{auth: true, purge401: true}); err != nil {
		return nil, err
	}
	return &out, nil
}

// TrackActivity records today as an active day. Best effort; callers may
// ignore the error.
func (u *UsersClient) TrackActivity(ctx context.Context) error {
	return u.c.do(ctx, http.MethodPost, "/api/users/activity", nil, nil, callOpts{auth: true, purge401: true})
}

// RequestEmailChange asks for an OTP to be sent to the new address.
func (u *UsersClient) RequestEmailChange(ctx context.Context, newEmail string) error {
	body := map[string]string{"newEmail": newEmail}
	return u.c.do(ctx, http.MethodPost, "/api/users/email-change/request", body, nil, callOpts{auth: true, purge401: true})
}

// ConfirmEmailChange applies the change using the OTP from the new address.
func (u *UsersClient) ConfirmEmailChange(ctx context.Context, newEmail, otp string) error {
	body := map[string]string{"newEmail": newEmail, "otp": otp}
	return u.c.do(ctx, http.MethodPost, "/api/users/email-change/confirm", body, nil, callOpts{auth: true, purge401: true})
}

// DeleteAccount permanently deletes the account, OTP-gated.
func (u *UsersClient) DeleteAccount(ctx context.Context, otp string) error {
	body := map[string]string{"otp": otp}
	return u.c.do(ctx, http.MethodDelete, "/api/users", body, nil, callOpts{auth: true, purge401: true})
}
