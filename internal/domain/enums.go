package domain

// Action selects one of the assistant operations.
type Action string

const (
	ActionImprove        Action = "improve"
	ActionGrammar        Action = "grammar"
	ActionRewrite        Action = "rewrite"
	ActionGenerate       Action = "generate"
	ActionDetectLanguage Action = "detectLanguage"
)

func (a Action) String() string { return string(a) }

func (a Action) IsValid() bool {
	switch a {
	case ActionImprove, ActionGrammar, ActionRewrite, ActionGenerate, ActionDetectLanguage:
		return true
	}
	return false
}

// Temperature returns the sampling temperature sent to the provider for the action.
// Deterministic tasks run cold; free-text tasks run warmer.
func (a Action) Temperature() float64 {
	switch a {
	case ActionDetectLanguage, ActionGrammar:
		return 0.1
	case ActionImprove, ActionRewrite:
		return 0.7
	case ActionGenerate:
		return 0.8
	}
	return 0.7
}

// Tone is a style modifier applied to the rewrite action.
type Tone string

const (
	ToneProfessional Tone = "professional"
	ToneCasual       Tone = "casual"
	ToneFriendly     Tone = "friendly"
	ToneAcademic     Tone = "academic"
	ToneCreative     Tone = "creative"
	ToneSimple       Tone = "simple"
	TonePersuasive   Tone = "persuasive"
)

// DefaultTone is used when a rewrite request carries no tone.
const DefaultTone = ToneProfessional

func (t Tone) String() string { return string(t) }

func (t Tone) IsValid() bool {
	switch t {
	case ToneProfessional, ToneCasual, ToneFriendly, ToneAcademic, ToneCreative, ToneSimple, TonePersuasive:
		return true
	}
	return false
}

// GrammarErrorType categorizes a single grammar finding.
type GrammarErrorType string

const (
	GrammarErrorGrammar  GrammarErrorType = "grammar"
	GrammarErrorSpelling GrammarErrorType = "spelling"
	GrammarErrorStyle    GrammarErrorType = "style"
	GrammarErrorClarity  GrammarErrorType = "clarity"
)

func (t GrammarErrorType) String() string { return string(t) }

func (t GrammarErrorType) IsValid() bool {
	switch t {
	case GrammarErrorGrammar, GrammarErrorSpelling, GrammarErrorStyle, GrammarErrorClarity:
		return true
	}
	return false
}
