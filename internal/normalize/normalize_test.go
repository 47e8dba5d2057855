package normalize

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/heartmarshall/writeassist-backend/internal/domain"
)

func TestStripBoilerplate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"rewritten label", "**Rewritten Text:**  Hello world.", "Hello world."},
		{"rewritten label lowercase", "**rewritten text:** Hello world.", "Hello world."},
		{"improved lead-in", "Here is the improved text:\n\nThe cat sat.", "The cat sat."},
		{"improved lead-in mixed case", "HERE IS THE IMPROVED TEXT: The cat sat.", "The cat sat."},
		{"generic bold label", "**Improved Version:** Better text.", "Better text."},
		{"generic plain label", "Result: Better text.", "Better text."},
		{"stacked labels", "Here is the improved text:\n**Final:** Answer: done", "done"},
		{"surrounding whitespace", "  \n plain text \n ", "plain text"},
		{"label only in middle", "The ratio is 3:1 here.", "The ratio is 3:1 here."},
		{"time at start", "10:30 is the meeting time.", "10:30 is the meeting time."},
		{"url at start", "https://example.com is the link.", "https://example.com is the link."},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, StripBoilerplate(tt.in))
		})
	}
}

func TestStripBoilerplate_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"Hello world.",
		"  Already clean text with trailing space  ",
		"**Rewritten Text:**  Hello world.",
		"Rewritten: Improved: Hello",
		"Multi\nline\ntext",
		"नमस्ते दुनिया",
		"",
	}

	for _, in := range inputs {
		once := StripBoilerplate(in)
		assert.Equal(t, once, StripBoilerplate(once), "input %q", in)
	}
}

func TestStripBoilerplate_CleanInputIsTrimmedOnly(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"Hello world.", "  spaced out  ", "The quick brown fox."} {
		assert.Equal(t, StripBoilerplate(s), StripBoilerplate(StripBoilerplate(s)))
		assert.Equal(t, trimmed(s), StripBoilerplate(s))
	}
}

func trimmed(s string) string {
	start, end := 0, len(s)
	for start < end && (s[start] == ' ' || s[start] == '\n' || s[start] == '\t') {
		start++
	}
	for end > start && (s[end-1] == ' ' || s[end-1] == '\n' || s[end-1] == '\t') {
		end--
	}
	return s[start:end]
}

func TestExtractGrammar_RoundTrip(t *testing.T) {
	t.Parallel()

	raw := `noise {"language":"English","errors":[],"score":77} trailing`

	got, ok := ExtractGrammar(raw)

	want := domain.GrammarResult{Language: "English", Errors: []domain.GrammarError{}, Score: 77}
	assert.True(t, ok)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ExtractGrammar() mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractGrammar_WithErrors(t *testing.T) {
	t.Parallel()

	raw := "```json\n" + `{"language":"English","errors":[{"type":"spelling","original":"sentance","suggestion":"sentence","explanation":"spelling"}],"score":95}` + "\n```"

	got, ok := ExtractGrammar(raw)

	want := domain.GrammarResult{
		Language: "English",
		Errors: []domain.GrammarError{{
			Type:        domain.GrammarErrorSpelling,
			Original:    "sentance",
			Suggestion:  "sentence",
			Explanation: "spelling",
		}},
		Score: 95,
	}
	assert.True(t, ok)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ExtractGrammar() mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractGrammar_Coercion(t *testing.T) {
	t.Parallel()

	raw := `{"errors":[{"type":"Punctuation","original":"a","suggestion":"b"}, "junk"],"score":"150"}`

	got, ok := ExtractGrammar(raw)

	assert.True(t, ok)
	assert.Equal(t, "Unknown", got.Language)
	assert.Equal(t, 100, got.Score)
	if assert.Len(t, got.Errors, 1) {
		assert.Equal(t, domain.GrammarErrorGrammar, got.Errors[0].Type)
		assert.Equal(t, "", got.Errors[0].Explanation)
	}
}

func TestExtractGrammar_NullErrorsBecomeEmpty(t *testing.T) {
	t.Parallel()

	got, ok := ExtractGrammar(`{"language":"Hindi","errors":null,"score":88}`)

	assert.True(t, ok)
	assert.NotNil(t, got.Errors)
	assert.Empty(t, got.Errors)
	assert.Equal(t, 88, got.Score)
}

func TestExtractGrammar_Fallback(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"The text has no issues.",
		"{not json}",
		`{"language":"English"} and then {"score":1}`,
		"{",
		"}{",
	}

	for _, raw := range inputs {
		_, ok := ExtractGrammar(raw)
		assert.False(t, ok, "input %q", raw)
		assert.Equal(t, domain.DefaultGrammarResult(), GrammarOrDefault(raw), "input %q", raw)
	}
}

func TestParseLanguage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want domain.LanguageResult
	}{
		{"en", domain.LanguageResult{Code: "en", Name: "English"}},
		{"  HI \n", domain.LanguageResult{Code: "hi", Name: "Hindi (हिंदी)"}},
		{"`ta`", domain.LanguageResult{Code: "ta", Name: "Tamil (தமிழ்)"}},
		{"es.\nSpanish", domain.LanguageResult{Code: "es", Name: "Spanish (Español)"}},
		{"pt-BR", domain.LanguageResult{Code: "pt-br", Name: "Portuguese (Português)"}},
		{"xx", domain.LanguageResult{Code: "xx", Name: "Unknown"}},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ParseLanguage(tt.raw))
		})
	}
}
