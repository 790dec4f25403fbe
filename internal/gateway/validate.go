package gateway

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Form field names reported in validation errors.
const (
	FieldName               = "name"
	FieldIdentifier         = "identifier"
	FieldSecret             = "secret"
	FieldSecretConfirmation = "secret_confirmation"
)

const minNameLen = 2

// emailShape is intentionally loose: the backend owns true address
// validation, the client only rejects obviously non-email input.
var emailShape = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// validateLogin returns per-field messages for invalid login input.
func validateLogin(identifier, secret string, minSecretLen int) map[string]string {
	fields := make(map[string]string)
	if strings.TrimSpace(identifier) == "" {
		fields[FieldIdentifier] = "Identifier is required."
	}
	if utf8.RuneCountInString(secret) < minSecretLen {
		fields[FieldSecret] = fmt.Sprintf("Secret must be at least %d characters.", minSecretLen)
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// validateRegister returns per-field messages for invalid registration
// input. Every failing field is reported, not just the first.
func validateRegister(in RegisterInput, minSecretLen int) map[string]string {
	fields := make(map[string]string)

	if utf8.RuneCountInString(strings.TrimSpace(in.Name)) < minNameLen {
		fields[FieldName] = fmt.Sprintf("Name must be at least %d characters.", minNameLen)
	}

	identifier := strings.TrimSpace(in.Identifier)
	if identifier == "" {
		fields[FieldIdentifier] = "Identifier is required."
	} else if !emailShape.MatchString(identifier) {
		fields[FieldIdentifier] = "Identifier must be an email address."
	}

	if utf8.RuneCountInString(in.Secret) < minSecretLen {
		fields[FieldSecret] = fmt.Sprintf("Secret must be at least %d characters.", minSecretLen)
	}

	if in.Secret != in.SecretConfirmation {
		fields[FieldSecretConfirmation] = "Secrets do not match."
	}

	if len(fields) == 0 {
		return nil
	}
	return fields
}
