package credentials

import (
	"errors"
	"strings"
)

const (
	accountSIDPrefix = "AC"
	apiKeyPrefix     = "SK"
	accountSIDLength = 34
	authTokenLength  = 32
)

// ValidateAccountSID checks the shape of an account SID.
func ValidateAccountSID(input string) error {
	input = strings.TrimSpace(input)
	switch {
	case input == "":
		return errors.New("an account SID is required")
	case strings.HasPrefix(input, apiKeyPrefix):
		return errors.New("that looks like an API key SID; use your account SID, which starts with \"AC\"")
	case !strings.HasPrefix(input, accountSIDPrefix):
		return errors.New("the account SID must start with \"AC\"")
	case len(input) != accountSIDLength:
		return errors.New("the account SID must be 34 characters long")
	}
	return nil
}

// ValidateAuthToken checks the shape of an auth token.
func ValidateAuthToken(input string) error {
	input = strings.TrimSpace(input)
	switch {
	case input == "":
		return errors.New("an auth token is required")
	case len(input) != authTokenLength:
		return errors.New("the auth token must be 32 characters long")
	}
	return nil
}

// sensitivePatterns are substrings that indicate a value should be redacted.
var sensitivePatterns = []string{"TOKEN", "SECRET", "PASSWORD", "KEY", "SID"}

// RedactValue returns a redacted version of value if the key name contains
// a sensitive pattern. Values with 4+ chars keep the first 4 chars.
func RedactValue(key, value string) string {
	upper := strings.ToUpper(key)
	for _, pattern := range sensitivePatterns {
		if strings.Contains(upper, pattern) {
			if len(value) >= 4 {
				return value[:4] + "***"
			}
			return "***"
		}
	}
	return value
}
