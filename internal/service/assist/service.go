// Package assist runs one assistant action: validate, build the prompt, call
// the model once and normalize what it returns.
package assist

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/writeassist-backend/internal/domain"
	"github.com/heartmarshall/writeassist-backend/internal/normalize"
	"github.com/heartmarshall/writeassist-backend/internal/prompt"
	"github.com/heartmarshall/writeassist-backend/pkg/ctxutil"
)

type aiClient interface {
	Generate(ctx context.Context, prompt string, temperature float64, cred domain.UserCredential) (string, error)
}

type credentialStore interface {
	GetCredential(ctx context.Context, userID uuid.UUID) (domain.UserCredential, error)
}

// Service dispatches assist requests.
type Service struct {
	log   *slog.Logger
	ai    aiClient
	creds credentialStore
}

// NewService creates a new assist service instance.
func NewService(logger *slog.Logger, ai aiClient, creds credentialStore) *Service {
	return &Service{
		log:   logger.With("service", "assist"),
		ai:    ai,
		creds: creds,
	}
}

// Assist runs req for the authenticated user. Checks happen in order: caller,
// request, credential. Any failure before the model call costs no provider request.
func (s *Service) Assist(ctx context.Context, req domain.AssistRequest) (*domain.AssistResult, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}

	cred, err := s.creds.GetCredential(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("assist.%s: load credential: %w", req.Action, err)
	}
	if !cred.HasAPIKey() {
		return nil, domain.ErrCredentialMissing
	}

	if req.Language == "" {
		req.Language = cred.Language()
	}

	start := time.Now()
	raw, err := s.ai.Generate(ctx, prompt.Build(req), req.Action.Temperature(), cred)
	if err != nil {
		s.log.WarnContext(ctx, "assist provider call failed",
			slog.String("action", req.Action.String()),
			slog.String("user_id", userID.String()),
			slog.String("kind", string(domain.KindOf(err))),
		)
		return nil, fmt.Errorf("assist.%s: %w", req.Action, err)
	}

	result, err := s.normalize(ctx, req.Action, raw)
	if err != nil {
		return nil, fmt.Errorf("assist.%s: %w", req.Action, err)
	}

	s.log.InfoContext(ctx, "assist completed",
		slog.String("action", req.Action.String()),
		slog.String("user_id", userID.String()),
		slog.Int("text_len", len(req.Text)),
		slog.Duration("provider_latency", time.Since(start)),
	)

	return result, nil
}

func (s *Service) normalize(ctx context.Context, action domain.Action, raw string) (*domain.AssistResult, error) {
	result := &domain.AssistResult{Action: action}

	switch action {
	case domain.ActionGrammar:
		grammar, ok := normalize.ExtractGrammar(raw)
		if !ok {
			s.log.DebugContext(ctx, "grammar completion not parsable, using default result")
			grammar = domain.DefaultGrammarResult()
		}
		result.Grammar = &grammar

	case domain.ActionDetectLanguage:
		lang := normalize.ParseLanguage(raw)
		if lang.Code == "" {
			return nil, domain.NewProviderError("empty response")
		}
		result.Language = &lang

	default:
		text := normalize.StripBoilerplate(raw)
		if text == "" {
			return nil, domain.NewProviderError("empty response")
		}
		result.Text = &domain.TextResult{Text: text}
	}

	return result, nil
}

// Improve returns text with clarity, grammar and flow improved, in the same language.
func (s *Service) Improve(ctx context.Context, text string) (string, error) {
	res, err := s.Assist(ctx, domain.AssistRequest{Action: domain.ActionImprove, Text: text})
	if err != nil {
		return "", err
	}
	return res.Text.Text, nil
}

// CheckGrammar returns the grammar findings for text. language is an optional hint.
func (s *Service) CheckGrammar(ctx context.Context, text, language string) (*domain.GrammarResult, error) {
	res, err := s.Assist(ctx, domain.AssistRequest{Action: domain.ActionGrammar, Text: text, Language: language})
	if err != nil {
		return nil, err
	}
	return res.Grammar, nil
}

// Rewrite returns text rewritten in tone. An empty tone means professional.
func (s *Service) Rewrite(ctx context.Context, text string, tone domain.Tone) (string, error) {
	res, err := s.Assist(ctx, domain.AssistRequest{Action: domain.ActionRewrite, Text: text, Tone: tone})
	if err != nil {
		return "", err
	}
	return res.Text.Text, nil
}

// Generate writes new content from instruction, optionally continuing contextText.
// An empty language means the user's preferred language.
func (s *Service) Generate(ctx context.Context, instruction, contextText, language string) (string, error) {
	res, err := s.Assist(ctx, domain.AssistRequest{
		Action:      domain.ActionGenerate,
		Text:        instruction,
		ContextText: contextText,
		Language:    language,
	})
	if err != nil {
		return "", err
	}
	return res.Text.Text, nil
}

// DetectLanguage returns the ISO 639-1 code and display name of text's language.
func (s *Service) DetectLanguage(ctx context.Context, text string) (*domain.LanguageResult, error) {
	res, err := s.Assist(ctx, domain.AssistRequest{Action: domain.ActionDetectLanguage, Text: text})
	if err != nil {
		return nil, err
	}
	return res.Language, nil
}
