package settings

import (
	"strings"
	"unicode/utf8"

	"github.com/heartmarshall/writeassist-backend/internal/domain"
)

const maxAPIKeyLength = 256

// SaveSettingsInput holds a settings update. Nil fields are not changed.
type SaveSettingsInput struct {
	APIKey            *string
	PreferredLanguage *string
}

func (i SaveSettingsInput) normalized() SaveSettingsInput {
	if i.APIKey != nil {
		key := strings.TrimSpace(*i.APIKey)
		i.APIKey = &key
	}
	if i.PreferredLanguage != nil {
		lang := domain.NormalizeLanguageCode(*i.PreferredLanguage)
		i.PreferredLanguage = &lang
	}
	return i
}

// Validate validates the settings update.
func (i SaveSettingsInput) Validate() error {
	var errs []domain.FieldError

	if i.APIKey != nil {
		key := *i.APIKey
		switch {
		case utf8.RuneCountInString(key) > maxAPIKeyLength:
			errs = append(errs, domain.FieldError{Field: "apiKey", Message: "too long"})
		case strings.ContainsAny(key, " \t\r\n"):
			errs = append(errs, domain.FieldError{Field: "apiKey", Message: "must not contain whitespace"})
		}
	}

	if i.PreferredLanguage != nil && !domain.IsPreferenceLanguage(*i.PreferredLanguage) {
		errs = append(errs, domain.FieldError{Field: "preferredLanguage", Message: "unsupported language"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
