package domain

import (
	"strings"

	"github.com/google/uuid"
)

// Keys of the per-user settings store.
const (
	MetaKeyAPIKey            = "gemini_api_key"
	MetaKeyPreferredLanguage = "preferred_language"
)

// UserCredential is what the AI client needs to act on behalf of a user.
// APIKey is a secret and must never be echoed back in full.
type UserCredential struct {
	UserID            uuid.UUID
	APIKey            string
	PreferredLanguage string
}

// HasAPIKey reports whether an API key is configured.
func (c UserCredential) HasAPIKey() bool {
	return strings.TrimSpace(c.APIKey) != ""
}

// Language returns the preferred language, falling back to DefaultLanguage.
func (c UserCredential) Language() string {
	if c.PreferredLanguage == "" {
		return DefaultLanguage
	}
	return c.PreferredLanguage
}

// UserSettings is the displayable view of a user's settings.
type UserSettings struct {
	UserID            uuid.UUID
	HasAPIKey         bool
	MaskedAPIKey      string
	PreferredLanguage string
}

// MaskAPIKey returns a preview of key safe to display: keys of up to 8
// characters are fully masked, longer keys keep the first and last 4.
func MaskAPIKey(key string) string {
	if key == "" {
		return ""
	}
	runes := []rune(key)
	n := len(runes)
	if n <= 8 {
		return strings.Repeat("*", n)
	}
	return string(runes[:4]) + strings.Repeat("*", n-8) + string(runes[n-4:])
}
