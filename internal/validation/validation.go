// Package validation enforces the account field policies. Each
// validator returns a human-readable message, empty when the value
// passes; request-level helpers collect them keyed by field so the
// handler can hand back a structured 400.
package validation

import (
	"regexp"
	"strings"
)

var (
	nameRE     = regexp.MustCompile(`^[a-zA-Z]+$`)
	usernameRE = regexp.MustCompile(`^[a-z][a-z0-9]{7,15}$`)
	contactRE  = regexp.MustCompile(`^\d{10}$`)
	emailRE    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

const passwordSpecials = "!@#$%^&*()_+=-"

// FieldErrors maps field name to the first failure message for it.
type FieldErrors map[string]string

func FirstName(value string) string {
	return name(value, "First name")
}

func LastName(value string) string {
	return name(value, "Last name")
}

func name(value, label string) string {
	if value == "" {
		return label + " is required"
	}
	if len(value) > 20 {
		return label + " must be at most 20 characters"
	}
	if !nameRE.MatchString(value) {
		return label + " must contain only alphabets"
	}
	return ""
}

func Username(value string) string {
	if value == "" {
		return "Username is required"
	}
	if !usernameRE.MatchString(value) {
		return "Username must be 8 to 16 lowercase letters and digits, starting with a letter"
	}
	return ""
}

// Password demands 8 to 16 characters with at least one lowercase
// letter, one uppercase letter, one digit and one special character,
// drawn only from those classes. Go's regexp has no lookahead, so the
// composition rules are checked one by one.
func Password(value string) string {
	if value == "" {
		return "Password is required"
	}
	if len(value) < 8 || len(value) > 16 {
		return "Password must be 8 to 16 characters"
	}

	var hasLower, hasUpper, hasDigit, hasSpecial bool
	for _, c := range value {
		switch {
		case c >= 'a' && c <= 'z':
			hasLower = true
		case c >= 'A' && c <= 'Z':
			hasUpper = true
		case c >= '0' && c <= '9':
			hasDigit = true
		case strings.ContainsRune(passwordSpecials, c):
			hasSpecial = true
		default:
			return "Password contains an invalid character"
		}
	}

	if !hasLower || !hasUpper || !hasDigit || !hasSpecial {
		return "Password must contain an uppercase letter, a lowercase letter, a digit and a special character"
	}
	return ""
}

func Email(value string) string {
	if value == "" {
		return "Email is required"
	}
	if !emailRE.MatchString(value) {
		return "Enter a valid email address"
	}
	return ""
}

func Contact(value string) string {
	if value == "" {
		return "Contact is required"
	}
	if !contactRE.MatchString(value) {
		return "Contact must be exactly 10 digits"
	}
	return ""
}

func GalleryName(value string) string {
	if value == "" {
		return "Please provide a gallery name"
	}
	if len(value) < 3 || len(value) > 20 {
		return "Gallery name must be 3 to 20 characters"
	}
	return ""
}

// SignupFields checks every account field and returns the failures
// keyed by field name.
func SignupFields(firstName, lastName, username, email, contact, password string) FieldErrors {
	errs := FieldErrors{}
	putField(errs, "first_name", FirstName(firstName))
	putField(errs, "last_name", LastName(lastName))
	putField(errs, "username", Username(username))
	putField(errs, "email", Email(email))
	putField(errs, "contact", Contact(contact))
	putField(errs, "password", Password(password))
	return errs
}

func putField(errs FieldErrors, field, msg string) {
	if msg != "" {
		errs[field] = msg
	}
}
