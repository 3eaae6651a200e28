package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"tickit/pkg/tasks"
)

// Session is what a successful login hands back
type Session struct {
	AccessToken string `json:"accessToken"`
	Username    string `json:"username"`
	Email       string `json:"email"`
}

// RegisterRequest is the sign-up form
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for a session
func (c *Client) Login(ctx context.Context, username, password string) (Session, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return Session{}, &tasks.FieldError{Field: "username", Message: "Username is required"}
	}
	if password == "" {
		return Session{}, &tasks.FieldError{Field: "password", Message: "Password is required"}
	}

	var s Session
	body := map[string]string{"username": username, "password": password}
	if err := c.do(ctx, call{op: "login", method: http.MethodPost, path: "/login", body: body, out: &s, public: true}); err != nil {
		return Session{}, err
	}
	if s.AccessToken == "" {
		return Session{}, &NetworkError{Op: "login", StatusCode: http.StatusOK, Err: errors.New("no access token in response")}
	}
	return s, nil
}

// Register starts a sign-up. The backend mails a code that VerifyRegistration confirms.
func (c *Client) Register(ctx context.Context, r RegisterRequest) error {
	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.TrimSpace(r.Email)
	if err := tasks.ValidateRegistration(r.Username, r.Email, r.Password); err != nil {
		return err
	}
	return c.do(ctx, call{op: "register", method: http.MethodPost, path: "/register", body: r, public: true})
}

// VerifyRegistration completes a sign-up with the mailed code
func (c *Client) VerifyRegistration(ctx context.Context, email, otp string) error {
	otp = strings.TrimSpace(otp)
	if err := tasks.ValidateOTP(otp); err != nil {
		return err
	}
	body := map[string]string{"email": strings.TrimSpace(email), "otp": otp}
	return c.do(ctx, call{op: "verify registration", method: http.MethodPost, path: "/verify-otp", body: body, public: true})
}

// VerifyMail asks the backend to mail a password reset code
func (c *Client) VerifyMail(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if err := tasks.ValidateEmail(email); err != nil {
		return err
	}
	body := map[string]string{"email": email}
	return c.do(ctx, call{op: "verify mail", method: http.MethodPost, path: "/forgetPassword/verifyMail", body: body, public: true})
}

// VerifyOTP checks the password reset code
func (c *Client) VerifyOTP(ctx context.Context, email, otp string) error {
	otp = strings.TrimSpace(otp)
	if err := tasks.ValidateOTP(otp); err != nil {
		return err
	}
	code, _ := strconv.Atoi(otp)
	body := map[string]any{"email": strings.TrimSpace(email), "otp": code}
	return c.do(ctx, call{op: "verify otp", method: http.MethodPost, path: "/forgetPassword/verifyOtp", body: body, public: true})
}

// ChangePassword sets a new password once the reset code was verified
func (c *Client) ChangePassword(ctx context.Context, email, newPassword, confirmPassword string) error {
	if newPassword != confirmPassword {
		return &tasks.FieldError{Field: "confirmPassword", Message: "Passwords do not match."}
	}
	if err := tasks.ValidatePassword(newPassword); err != nil {
		return err
	}
	body := map[string]string{
		"email":           strings.TrimSpace(email),
		"newPassword":     newPassword,
		"confirmPassword": confirmPassword,
	}
	return c.do(ctx, call{op: "change password", method: http.MethodPost, path: "/forgetPassword/changePassword", body: body, public: true})
}
