package domain

import "strings"

// DefaultLanguage is the preferred language of a user who never saved one.
const DefaultLanguage = "en"

// Language pairs an ISO 639-1 code with its display name.
type Language struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// PreferenceLanguages lists the languages a user may pick as preferred, in display order.
var PreferenceLanguages = []Language{
	{"en", "English"},
	{"es", "Spanish (Español)"},
	{"fr", "French (Français)"},
	{"de", "German (Deutsch)"},
	{"it", "Italian (Italiano)"},
	{"pt", "Portuguese (Português)"},
	{"hi", "Hindi (हिंदी)"},
	{"bn", "Bengali (বাংলা)"},
	{"pa", "Punjabi (ਪੰਜਾਬੀ)"},
	{"te", "Telugu (తెలుగు)"},
	{"mr", "Marathi (मराठी)"},
	{"ta", "Tamil (தமிழ்)"},
	{"ur", "Urdu (اردو)"},
	{"gu", "Gujarati (ગુજરાતી)"},
	{"ar", "Arabic (العربية)"},
	{"ja", "Japanese (日本語)"},
	{"ko", "Korean (한국어)"},
	{"zh", "Chinese (中文)"},
	{"ru", "Russian (Русский)"},
}

// GrammarLanguages is the allow-list the grammar check is restricted to.
var GrammarLanguages = []Language{
	{"en", "English"},
	{"hi", "Hindi (हिंदी)"},
	{"bn", "Bengali (বাংলা)"},
	{"ta", "Tamil (தமிழ்)"},
	{"te", "Telugu (తెలుగు)"},
	{"mr", "Marathi (मराठी)"},
	{"gu", "Gujarati (ગુજરાતી)"},
	{"kn", "Kannada (ಕನ್ನಡ)"},
	{"ml", "Malayalam (മലയാളം)"},
	{"pa", "Punjabi (ਪੰਜਾਬੀ)"},
	{"ur", "Urdu (اردو)"},
}

var languageNames = buildLanguageNames()

func buildLanguageNames() map[string]string {
	names := make(map[string]string, len(PreferenceLanguages)+len(GrammarLanguages))
	for _, l := range PreferenceLanguages {
		names[l.Code] = l.Name
	}
	for _, l := range GrammarLanguages {
		names[l.Code] = l.Name
	}
	return names
}

// NormalizeLanguageCode lowercases and trims a language code.
func NormalizeLanguageCode(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}

// LanguageName returns the display name for code, or "Unknown".
func LanguageName(code string) string {
	if name, ok := languageNames[NormalizeLanguageCode(code)]; ok {
		return name
	}
	return "Unknown"
}

// IsPreferenceLanguage reports whether code may be stored as a preferred language.
func IsPreferenceLanguage(code string) bool {
	return containsCode(PreferenceLanguages, NormalizeLanguageCode(code))
}

// IsGrammarLanguage reports whether code is on the grammar allow-list.
func IsGrammarLanguage(code string) bool {
	return containsCode(GrammarLanguages, NormalizeLanguageCode(code))
}

func containsCode(list []Language, code string) bool {
	for _, l := range list {
		if l.Code == code {
			return true
		}
	}
	return false
}
