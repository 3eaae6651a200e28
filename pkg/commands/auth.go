package commands

import (
	"context"

	"tickit/pkg/api"
	"tickit/pkg/database"
	"tickit/pkg/tasks"
	"tickit/pkg/utils"
)

// HandleLogin signs in and stores the session locally
func HandleLogin(ctx context.Context, env *Env, username string) error {
	var err error
	if username == "" {
		if username, err = env.ask("Username: "); err != nil {
			return err
		}
	}
	password, err := env.secret("Password: ")
	if err != nil {
		return err
	}

	session, err := env.Gateway.Login(ctx, username, password)
	if err != nil {
		return err
	}
	if err := env.State.SaveSession(session.AccessToken, session.Username, session.Email); err != nil {
		return err
	}

	utils.Log("Logged in as %s", session.Username)
	env.printf("Logged in as %s\n", session.Username)
	return nil
}

// HandleLogout forgets the stored session
func HandleLogout(env *Env) error {
	if err := env.State.ClearSession(); err != nil {
		return err
	}
	env.printf("Logged out\n")
	return nil
}

// HandleRegister creates an account and completes it with the mailed code
func HandleRegister(ctx context.Context, env *Env, username, email string) error {
	password, err := env.secret("Password: ")
	if err != nil {
		return err
	}
	if strength, label := tasks.PasswordStrength(password); strength > 0 {
		env.printf("Password strength: %s\n", label)
	}

	req := api.RegisterRequest{Username: username, Email: email, Password: password}
	if err := env.Gateway.Register(ctx, req); err != nil {
		return err
	}
	if err := env.State.Set(database.KeyUserEmail, email); err != nil {
		return err
	}
	env.printf("We sent a verification code to %s\n", email)

	otp, err := env.ask("Verification code: ")
	if err != nil {
		return err
	}
	if err := tasks.ValidateOTP(otp); err != nil {
		return err
	}
	if err := env.Gateway.VerifyRegistration(ctx, email, otp); err != nil {
		return err
	}
	if err := env.State.Delete(database.KeyUserEmail); err != nil {
		return err
	}

	env.printf("Registration complete. You can now log in.\n")
	return nil
}

// HandleForgotPassword walks through mail verification, the one-time code and the new password
func HandleForgotPassword(ctx context.Context, env *Env, email string) error {
	if err := tasks.ValidateEmail(email); err != nil {
		return err
	}
	if err := env.Gateway.VerifyMail(ctx, email); err != nil {
		return err
	}
	// Remembered so an interrupted reset can resume with -otp
	if err := env.State.Set(database.KeyUserEmail, email); err != nil {
		return err
	}
	env.printf("We sent a one-time code to %s\n", email)
	return continueReset(ctx, env, email)
}

// HandleResumeReset continues a password reset for the remembered address
func HandleResumeReset(ctx context.Context, env *Env) error {
	email, err := env.State.Get(database.KeyUserEmail)
	if err != nil {
		return err
	}
	if email == "" {
		return &tasks.FieldError{Field: "email", Message: "No password reset in progress. Start with -forgot-password."}
	}
	return continueReset(ctx, env, email)
}

func continueReset(ctx context.Context, env *Env, email string) error {
	otp, err := env.ask("One-time code: ")
	if err != nil {
		return err
	}
	if err := tasks.ValidateOTP(otp); err != nil {
		return err
	}
	if err := env.Gateway.VerifyOTP(ctx, email, otp); err != nil {
		return err
	}

	password, err := env.secret("New password: ")
	if err != nil {
		return err
	}
	if err := tasks.ValidatePassword(password); err != nil {
		return err
	}
	confirm, err := env.secret("Confirm password: ")
	if err != nil {
		return err
	}
	if err := env.Gateway.ChangePassword(ctx, email, password, confirm); err != nil {
		return err
	}
	if err := env.State.Delete(database.KeyUserEmail); err != nil {
		return err
	}

	env.printf("Password changed successfully. Please log in.\n")
	return nil
}
