// Package settings manages the per-user Gemini API key and preferred language.
package settings

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/writeassist-backend/internal/domain"
	"github.com/heartmarshall/writeassist-backend/pkg/ctxutil"
)

type metaStore interface {
	GetMany(ctx context.Context, userID uuid.UUID, keys ...string) (map[string]string, error)
	Set(ctx context.Context, userID uuid.UUID, key, value string) error
	Delete(ctx context.Context, userID uuid.UUID, key string) error
}

type sealer interface {
	Seal(plaintext string) (string, error)
	Open(sealed string) (string, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service reads and writes user settings. The API key is sealed before it is stored.
type Service struct {
	log    *slog.Logger
	meta   metaStore
	sealer sealer
	tx     txManager
}

// NewService creates a new settings service instance.
func NewService(logger *slog.Logger, meta metaStore, sealer sealer, tx txManager) *Service {
	return &Service{
		log:    logger.With("service", "settings"),
		meta:   meta,
		sealer: sealer,
		tx:     tx,
	}
}

// GetSettings returns the authenticated user's settings with the key masked.
func (s *Service) GetSettings(ctx context.Context) (*domain.UserSettings, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	cred, err := s.GetCredential(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("settings.GetSettings: %w", err)
	}

	return view(cred), nil
}

// SaveSettings applies input for the authenticated user. Nil fields are left
// unchanged; an empty API key clears the stored key.
func (s *Service) SaveSettings(ctx context.Context, input SaveSettingsInput) (*domain.UserSettings, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	input = input.normalized()
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var sealed string
	if input.APIKey != nil && *input.APIKey != "" {
		var err error
		if sealed, err = s.sealer.Seal(*input.APIKey); err != nil {
			return nil, fmt.Errorf("settings.SaveSettings: seal api key: %w", err)
		}
	}

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if input.APIKey != nil {
			if sealed == "" {
				if err := s.meta.Delete(txCtx, userID, domain.MetaKeyAPIKey); err != nil {
					return fmt.Errorf("delete api key: %w", err)
				}
			} else if err := s.meta.Set(txCtx, userID, domain.MetaKeyAPIKey, sealed); err != nil {
				return fmt.Errorf("set api key: %w", err)
			}
		}

		if input.PreferredLanguage != nil {
			if err := s.meta.Set(txCtx, userID, domain.MetaKeyPreferredLanguage, *input.PreferredLanguage); err != nil {
				return fmt.Errorf("set preferred language: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("settings.SaveSettings: %w", err)
	}

	s.log.InfoContext(ctx, "settings saved",
		slog.String("user_id", userID.String()),
		slog.Bool("api_key_changed", input.APIKey != nil),
		slog.Bool("language_changed", input.PreferredLanguage != nil),
	)

	return s.GetSettings(ctx)
}

// GetCredential returns the user's decrypted API key and preferred language.
// A missing key is not an error here: callers decide via HasAPIKey. A key that
// can no longer be opened is reported as missing so the user is asked to save it again.
func (s *Service) GetCredential(ctx context.Context, userID uuid.UUID) (domain.UserCredential, error) {
	values, err := s.meta.GetMany(ctx, userID, domain.MetaKeyAPIKey, domain.MetaKeyPreferredLanguage)
	if err != nil {
		return domain.UserCredential{}, fmt.Errorf("load user meta: %w", err)
	}

	cred := domain.UserCredential{
		UserID:            userID,
		PreferredLanguage: values[domain.MetaKeyPreferredLanguage],
	}
	if !domain.IsPreferenceLanguage(cred.PreferredLanguage) {
		cred.PreferredLanguage = ""
	}

	if sealed := values[domain.MetaKeyAPIKey]; sealed != "" {
		key, err := s.sealer.Open(sealed)
		if err != nil {
			s.log.WarnContext(ctx, "stored api key cannot be opened",
				slog.String("user_id", userID.String()),
				slog.String("error", err.Error()),
			)
		} else {
			cred.APIKey = key
		}
	}

	return cred, nil
}

func view(cred domain.UserCredential) *domain.UserSettings {
	return &domain.UserSettings{
		UserID:            cred.UserID,
		HasAPIKey:         cred.HasAPIKey(),
		MaskedAPIKey:      domain.MaskAPIKey(cred.APIKey),
		PreferredLanguage: cred.Language(),
	}
}
