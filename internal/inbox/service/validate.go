package service

import (
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	UsernameMinLen = 2
	UsernameMaxLen = 20
	PasswordMinLen = 6
	ContentMinLen  = 10
	ContentMaxLen  = 300
	CodeDigits     = 6
)

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	codePattern     = regexp.MustCompile(`^[0-9]{6}$`)
)

// NormalizeUsername trims and validates a username.
func NormalizeUsername(s string) (string, error) {
	s = strings.TrimSpace(s)
	switch n := utf8.RuneCountInString(s); {
	case n == 0:
		return "", invalid("username", "Username is required")
	case n < UsernameMinLen:
		return "", invalid("username", "Username must be at least 2 characters")
	case n > UsernameMaxLen:
		return "", invalid("username", "Username must be no more than 20 characters")
	case !usernamePattern.MatchString(s):
		return "", invalid("username", "Username must not contain special characters")
	}
	return s, nil
}

// NormalizeEmail trims, lower-cases and validates a bare address.
func NormalizeEmail(s string) (string, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return "", invalid("email", "Invalid email address")
	}
	return s, nil
}

func validatePassword(s string) error {
	if utf8.RuneCountInString(s) < PasswordMinLen {
		return invalid("password", "Password must be at least 6 characters")
	}
	return nil
}

// NormalizeContent trims a message body and checks its length in runes.
func NormalizeContent(s string) (string, error) {
	s = strings.TrimSpace(s)
	switch n := utf8.RuneCountInString(s); {
	case n == 0:
		return "", invalid("content", "Content is required")
	case n < ContentMinLen:
		return "", invalid("content", "Content must be at least 10 characters.")
	case n > ContentMaxLen:
		return "", invalid("content", "Content must not be longer than 300 characters.")
	}
	return s, nil
}

func validateCode(s string) (string, error) {
	s = strings.TrimSpace(s)
	if !codePattern.MatchString(s) {
		return "", invalid("code", "Verification code must be 6 digits")
	}
	return s, nil
}
