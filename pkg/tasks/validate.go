package tasks

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// FieldError is a client-side validation failure. The request is never sent.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Message
}

// Validate checks a task form and returns the first failing rule.
// The order matches the messages users have always seen; errors are not aggregated.
func Validate(d Draft) error {
	if utf8.RuneCountInString(strings.TrimSpace(d.Name)) < 3 {
		return &FieldError{Field: "name", Message: "Task name must be at least 3 characters long."}
	}
	if utf8.RuneCountInString(strings.TrimSpace(d.Description)) < 5 {
		return &FieldError{Field: "description", Message: "Description must be at least 5 characters long."}
	}
	if strings.TrimSpace(d.DueDate) == "" {
		return &FieldError{Field: "dueDate", Message: "Due date is required."}
	}
	if strings.TrimSpace(d.DueTime) == "" {
		return &FieldError{Field: "dueTime", Message: "Due time is required."}
	}
	if strings.TrimSpace(d.Priority) == "" {
		return &FieldError{Field: "priority", Message: "Please select a priority level."}
	}
	if strings.TrimSpace(d.Status) == "" {
		return &FieldError{Field: "status", Message: "Please select a status."}
	}
	return nil
}

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9._-]{3,}$`)
	hasLetter       = regexp.MustCompile(`[a-zA-Z]`)
	hasDigit        = regexp.MustCompile(`[0-9]`)
	otpPattern      = regexp.MustCompile(`^[0-9]{6}$`)
)

// ValidateRegistration mirrors the backend's registration rules so obvious
// mistakes are caught before a round trip
func ValidateRegistration(username, email, password string) error {
	if strings.TrimSpace(username) == "" {
		return &FieldError{Field: "username", Message: "Name is required"}
	}
	if !usernamePattern.MatchString(username) {
		return &FieldError{Field: "username", Message: "Username should only contain letters, numbers, dots, underscores, or hyphens"}
	}
	if err := ValidateEmail(email); err != nil {
		return err
	}
	return ValidatePassword(password)
}

// ValidateEmail checks that an address is present and looks like one
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return &FieldError{Field: "email", Message: "Email is required"}
	}
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return &FieldError{Field: "email", Message: "Please provide a valid email address"}
	}
	return nil
}

// ValidatePassword requires at least three characters with a letter and a digit
func ValidatePassword(password string) error {
	if password == "" {
		return &FieldError{Field: "password", Message: "Password is required"}
	}
	if utf8.RuneCountInString(password) < 3 || !hasLetter.MatchString(password) || !hasDigit.MatchString(password) {
		return &FieldError{Field: "password", Message: "Password must contain at least one letter and one number"}
	}
	return nil
}

// ValidateOTP checks the six-digit one-time password from the reset mail
func ValidateOTP(otp string) error {
	if !otpPattern.MatchString(strings.TrimSpace(otp)) {
		return &FieldError{Field: "otp", Message: "OTP must be 6 digits"}
	}
	return nil
}

// PasswordStrength scores a password by length only:
// 0 for empty, 1 Weak under 6, 2 Medium under 10, 3 Strong otherwise.
func PasswordStrength(password string) (int, string) {
	switch n := utf8.RuneCountInString(password); {
	case n == 0:
		return 0, ""
	case n < 6:
		return 1, "Weak"
	case n < 10:
		return 2, "Medium"
	default:
		return 3, "Strong"
	}
}
