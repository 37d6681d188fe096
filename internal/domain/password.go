package domain

import "strings"

// Password composition rules. Checked independently so a caller always sees
// the full list of problems, not just the first one.
const (
	passwordMinLength = 8
	// bcrypt reads at most 72 bytes of input; anything longer must be
	// rejected here instead of failing inside the hasher.
	passwordMaxLength = 72
	// The accepted special characters. Keep in sync with the message below.
	passwordSpecialSet = "@_!#$%^&*()<>?/\\|}{~:=+-.,[]"
)

const (
	MsgPasswordTooShort = "Password must be at least 8 characters long."
	MsgPasswordTooLong  = "Password must be at most 72 characters long."
	MsgPasswordNoLower  = "Password must contain at least one lower-case letter."
	MsgPasswordNoUpper  = "Password must contain at least one upper-case letter."
	MsgPasswordNoDigit  = "Password must contain at least one digit."
	MsgPasswordNoSpec   = "Password must contain at least one special character."
)

// ValidatePassword returns every rule the password violates, in a stable
// order. An empty slice means the password is acceptable. Pure function.
func ValidatePassword(password string) []string {
	var (
		hasLower bool
		hasUpper bool
		hasDigit bool
		hasSpec  bool
	)

	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= '0' && r <= '9':
			hasDigit = true
		case strings.ContainsRune(passwordSpecialSet, r):
			hasSpec = true
		}
	}

	var violations []string
	if len(password) < passwordMinLength {
		violations = append(violations, MsgPasswordTooShort)
	}
	if len(password) > passwordMaxLength {
		violations = append(violations, MsgPasswordTooLong)
	}
	if !hasLower {
		violations = append(violations, MsgPasswordNoLower)
	}
	if !hasUpper {
		violations = append(violations, MsgPasswordNoUpper)
	}
	if !hasDigit {
		violations = append(violations, MsgPasswordNoDigit)
	}
	if !hasSpec {
		violations = append(violations, MsgPasswordNoSpec)
	}
	return violations
}
