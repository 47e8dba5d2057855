// Package normalize turns raw model completions into action results.
package normalize

import (
	"math"
	"regexp"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/heartmarshall/writeassist-backend/internal/domain"
)

// boilerplate lists lead-ins models put before the answer. Order matters:
// specific phrases first, generic labels last. Each must be anchored at the start.
var boilerplate = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^\*\*rewritten text:\*\*`),
	regexp.MustCompile(`(?i)^here is the improved text:`),
	regexp.MustCompile(`(?i)^\*\*[^*\n]{1,60}:\*\*`),
	regexp.MustCompile(`(?i)^[a-z]+(?: [a-z]+){0,3}:[ \t]+`),
}

// maxStripPasses bounds the fixpoint loop in StripBoilerplate.
const maxStripPasses = 8

// StripBoilerplate removes known lead-in labels from the start of s and trims it.
// Patterns are applied in order, repeatedly, until s stops changing, so
// StripBoilerplate(StripBoilerplate(s)) == StripBoilerplate(s).
func StripBoilerplate(s string) string {
	s = strings.TrimSpace(s)
	for range maxStripPasses {
		changed := false
		for _, re := range boilerplate {
			loc := re.FindStringIndex(s)
			if loc == nil {
				continue
			}
			s = strings.TrimSpace(s[loc[1]:])
			changed = true
		}
		if !changed {
			break
		}
	}
	return s
}

var jsonBlock = regexp.MustCompile(`\{[\s\S]*\}`)

// ExtractGrammar is a best-effort extraction of a grammar result from free-form
// model output. It takes the outermost curly-brace block, parses it and coerces
// it to the GrammarResult shape. ok is false when no parsable object is found.
func ExtractGrammar(raw string) (result domain.GrammarResult, ok bool) {
	block := jsonBlock.FindString(raw)
	if block == "" || !gjson.Valid(block) {
		return domain.GrammarResult{}, false
	}

	doc := gjson.Parse(block)
	if !doc.IsObject() {
		return domain.GrammarResult{}, false
	}

	fallback := domain.DefaultGrammarResult()
	result = domain.GrammarResult{
		Language: strings.TrimSpace(doc.Get("language").String()),
		Errors:   []domain.GrammarError{},
		Score:    fallback.Score,
	}
	if result.Language == "" {
		result.Language = fallback.Language
	}

	if score := doc.Get("score"); score.Exists() {
		result.Score = clampScore(score.Float())
	}

	if errs := doc.Get("errors"); errs.IsArray() {
		for _, e := range errs.Array() {
			if !e.IsObject() {
				continue
			}
			result.Errors = append(result.Errors, domain.GrammarError{
				Type:        errorType(e.Get("type").String()),
				Original:    e.Get("original").String(),
				Suggestion:  e.Get("suggestion").String(),
				Explanation: e.Get("explanation").String(),
			})
		}
	}

	return result, true
}

// GrammarOrDefault returns the extracted grammar result or the documented default.
func GrammarOrDefault(raw string) domain.GrammarResult {
	if result, ok := ExtractGrammar(raw); ok {
		return result
	}
	return domain.DefaultGrammarResult()
}

func clampScore(f float64) int {
	if math.IsNaN(f) {
		return domain.DefaultGrammarResult().Score
	}
	score := int(math.Round(f))
	switch {
	case score < 0:
		return 0
	case score > 100:
		return 100
	}
	return score
}

func errorType(s string) domain.GrammarErrorType {
	t := domain.GrammarErrorType(strings.ToLower(strings.TrimSpace(s)))
	if !t.IsValid() {
		return domain.GrammarErrorGrammar
	}
	return t
}

// ParseLanguage maps a detection completion to a LanguageResult. The code is
// returned as the model wrote it (lowercased, trimmed) even when the name is unknown.
func ParseLanguage(raw string) domain.LanguageResult {
	line := strings.TrimSpace(raw)
	if i := strings.IndexAny(line, "\r\n"); i >= 0 {
		line = line[:i]
	}
	code := strings.Trim(domain.NormalizeLanguageCode(line), "`'\".* ")

	name := domain.LanguageName(code)
	if name == "Unknown" {
		if base, _, found := strings.Cut(code, "-"); found {
			name = domain.LanguageName(base)
		}
	}

	return domain.LanguageResult{Code: code, Name: name}
}
