package goSession

import (
	"net/mail"
	"strings"
)

// validEmail reports whether s is a plausible address. The check is
// deliberately lenient (net/mail plus a domain requirement); the identity
// provider remains the authority on deliverability.
func validEmail(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" || strings.ContainsAny(s, " \t\n") {
		return false
	}
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return false
	}
	at := strings.LastIndexByte(s, '@')
	return at > 0 && at < len(s)-1
}

// validateLogin checks login input locally. A failure here produces an Error
// state synchronously and never invokes an effect.
func validateLogin(email, password string, cfg ValidationConfig) error {
	if !validEmail(email) {
		return &validationError{msg: "invalid email"}
	}
	if len(password) < cfg.LoginPasswordMinLength {
		return &validationError{msg: "password required"}
	}
	return nil
}

// validateRegistration checks registration input locally. The password floor
// mirrors the backend policy so obviously unacceptable requests never leave
// the device.
func validateRegistration(email, password, fullName string, cfg ValidationConfig) error {
	if !validEmail(email) {
		return &validationError{msg: "invalid email"}
	}
	if len(password) < cfg.RegisterPasswordMinLength {
		return &validationError{msg: "password too short"}
	}
	if strings.TrimSpace(fullName) == "" {
		return &validationError{msg: "full name required"}
	}
	return nil
}
