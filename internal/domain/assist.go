package domain

import (
	"strings"
	"unicode/utf8"
)

// MaxTextLength bounds the text sent to the provider in a single request.
const MaxTextLength = 20000

// AssistRequest is one user action against the assistant. It is built per
// request and never persisted.
type AssistRequest struct {
	Action Action
	// Text is the selected text, or the instruction for ActionGenerate.
	Text        string
	Tone        Tone
	Language    string
	ContextText string
}

// Validate checks the request and fills defaults (tone, language).
// It performs no I/O so a rejected request never reaches the provider.
func (r *AssistRequest) Validate() error {
	var errs []FieldError

	if !r.Action.IsValid() {
		errs = append(errs, FieldError{Field: "action", Message: "unknown action"})
	}

	text := strings.TrimSpace(r.Text)
	switch {
	case text == "" && r.Action == ActionGenerate:
		errs = append(errs, FieldError{Field: "prompt", Message: "No prompt provided"})
	case text == "":
		errs = append(errs, FieldError{Field: "text", Message: "No text provided"})
	case utf8.RuneCountInString(text) > MaxTextLength:
		errs = append(errs, FieldError{Field: "text", Message: "Text is too long"})
	}

	if r.Action == ActionRewrite {
		if r.Tone == "" {
			r.Tone = DefaultTone
		} else if !r.Tone.IsValid() {
			errs = append(errs, FieldError{Field: "tone", Message: "Unknown tone"})
		}
	} else {
		r.Tone = ""
	}

	if r.Action != ActionGenerate {
		r.ContextText = ""
	}

	if r.Language != "" {
		r.Language = NormalizeLanguageCode(r.Language)
		if len(r.Language) < 2 || len(r.Language) > 8 {
			errs = append(errs, FieldError{Field: "language", Message: "Invalid language code"})
		}
	}

	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}

	r.Text = text
	return nil
}

// GrammarError is a single finding of the grammar action.
type GrammarError struct {
	Type        GrammarErrorType `json:"type"`
	Original    string           `json:"original"`
	Suggestion  string           `json:"suggestion"`
	Explanation string           `json:"explanation"`
}

// GrammarResult is the outcome of the grammar action. Errors is never nil.
type GrammarResult struct {
	Language string         `json:"language"`
	Errors   []GrammarError `json:"errors"`
	Score    int            `json:"score"`
}

// DefaultGrammarResult is substituted when the completion carries no parsable JSON.
func DefaultGrammarResult() GrammarResult {
	return GrammarResult{
		Language: "Unknown",
		Errors:   []GrammarError{},
		Score:    90,
	}
}

// TextResult is the outcome of improve, rewrite and generate.
type TextResult struct {
	Text string `json:"text"`
}

// LanguageResult is the outcome of language detection.
type LanguageResult struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// AssistResult is a tagged union over the action results. Exactly one of
// Text, Grammar and Language is set, according to Action.
type AssistResult struct {
	Action   Action
	Text     *TextResult
	Grammar  *GrammarResult
	Language *LanguageResult
}

// Payload returns the value carried in the response envelope. Text results
// travel as a bare string, the shape editor scripts splice into the document.
func (r *AssistResult) Payload() any {
	switch {
	case r.Grammar != nil:
		return r.Grammar
	case r.Language != nil:
		return r.Language
	case r.Text != nil:
		return r.Text.Text
	}
	return nil
}
