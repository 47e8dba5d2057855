// Package prompt turns an assist request into the single prompt string sent to the model.
package prompt

import (
	"fmt"
	"strings"

	"github.com/heartmarshall/writeassist-backend/internal/domain"
)

// Build returns the prompt for req. req must already be validated.
// It panics on an unknown action.
func Build(req domain.AssistRequest) string {
	switch req.Action {
	case domain.ActionImprove:
		return improve(req.Text)
	case domain.ActionRewrite:
		return rewrite(req.Text, req.Tone)
	case domain.ActionGrammar:
		return grammar(req.Text, req.Language)
	case domain.ActionGenerate:
		return generate(req.Text, req.ContextText, req.Language)
	case domain.ActionDetectLanguage:
		return detectLanguage(req.Text)
	}
	panic(fmt.Sprintf("prompt: unknown action %q", req.Action))
}

const noLabelsRule = `Return ONLY the final text. Do not add any introduction, label or heading such as "Here is the improved text:", "Rewritten Text:" or "**Result:**". Do not wrap the text in quotes or code fences.`

func improve(text string) string {
	return fmt.Sprintf(`You are a writing assistant.

RULES:
1. Detect the language of the text and respond in THE SAME LANGUAGE.
2. Improve the text for clarity, grammar and flow while keeping its meaning.
3. %s

Improve this text:

%s`, noLabelsRule, text)
}

func rewrite(text string, tone domain.Tone) string {
	if tone == "" {
		tone = domain.DefaultTone
	}
	return fmt.Sprintf(`You are a content rewriter.

RULES:
1. Detect the language of the text and rewrite it in THE SAME LANGUAGE. Never translate.
2. Use a %[1]s tone.
3. %[2]s

Rewrite this text in a %[1]s tone:

%[3]s`, tone, noLabelsRule, text)
}

func grammar(text, language string) string {
	names := make([]string, 0, len(domain.GrammarLanguages))
	for _, l := range domain.GrammarLanguages {
		names = append(names, l.Name)
	}

	hint := ""
	if language != "" && domain.IsGrammarLanguage(language) {
		hint = fmt.Sprintf("\nThe author usually writes in %s.", domain.LanguageName(language))
	}

	return fmt.Sprintf(`You are a grammar checker for these languages ONLY: %s.%s

RULES:
1. Detect the language of the text. If it is not one of the languages above, report "Unknown" and no errors.
2. Write suggestions and explanations in the SAME language as the text.
3. Respond with a single JSON object and nothing else, matching exactly:
{"language": "detected language", "errors": [{"type": "grammar|spelling|style|clarity", "original": "text", "suggestion": "fix", "explanation": "why"}], "score": 85}
4. "score" is an integer from 0 to 100. Use an empty "errors" array when the text has no issues.

Text to check:
%s`, strings.Join(names, ", "), hint, text)
}

func generate(instruction, contextText, language string) string {
	if language == "" {
		language = domain.DefaultLanguage
	}
	name := domain.LanguageName(language)
	if name == "Unknown" {
		name = language
	}

	var b strings.Builder
	b.WriteString("You are a content writer.\n\nRULES:\n")
	fmt.Fprintf(&b, "1. Write in %s unless the instruction asks for another language.\n", name)
	b.WriteString("2. Follow the instruction and stay consistent with the existing content when it is given.\n")
	b.WriteString("3. " + noLabelsRule + "\n\n")
	fmt.Fprintf(&b, "Instruction:\n%s\n", instruction)
	if ctx := strings.TrimSpace(contextText); ctx != "" {
		fmt.Fprintf(&b, "\nExisting content:\n%s\n", ctx)
	}
	return b.String()
}

func detectLanguage(text string) string {
	return fmt.Sprintf(`Detect the language of the text below. Respond with ONLY its two-letter ISO 639-1 code (for example: en, hi, es) and nothing else.

Text:
%s`, text)
}
