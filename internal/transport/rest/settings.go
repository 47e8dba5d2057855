package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/writeassist-backend/internal/domain"
	"github.com/heartmarshall/writeassist-backend/internal/service/settings"
	"github.com/heartmarshall/writeassist-backend/pkg/ctxutil"
)

// settingsService defines the minimal interface needed by SettingsHandler.
type settingsService interface {
	GetSettings(ctx context.Context) (*domain.UserSettings, error)
	SaveSettings(ctx context.Context, input settings.SaveSettingsInput) (*domain.UserSettings, error)
}

// actionTokens issues and checks per-user authenticity tokens.
type actionTokens interface {
	GenerateActionToken(userID uuid.UUID) (string, error)
	ValidateActionToken(token string, userID uuid.UUID) error
}

// SettingsHandler serves the session bootstrap and per-user settings.
type SettingsHandler struct {
	svc    settingsService
	tokens actionTokens
	log    *slog.Logger
}

// NewSettingsHandler creates a SettingsHandler.
func NewSettingsHandler(svc settingsService, tokens actionTokens, logger *slog.Logger) *SettingsHandler {
	return &SettingsHandler{svc: svc, tokens: tokens, log: logger.With("handler", "settings")}
}

type settingsResponse struct {
	HasAPIKey         bool   `json:"hasApiKey"`
	MaskedAPIKey      string `json:"maskedApiKey"`
	PreferredLanguage string `json:"preferredLanguage"`
}

type languagesResponse struct {
	Preference []domain.Language `json:"preference"`
	Grammar    []domain.Language `json:"grammar"`
}

type sessionResponse struct {
	ActionToken       string            `json:"actionToken"`
	HasAPIKey         bool              `json:"hasApiKey"`
	PreferredLanguage string            `json:"preferredLanguage"`
	Languages         languagesResponse `json:"languages"`
}

type saveSettingsRequest struct {
	ActionToken       string  `json:"actionToken"`
	APIKey            *string `json:"apiKey"`
	PreferredLanguage *string `json:"preferredLanguage"`
}

func languages() languagesResponse {
	return languagesResponse{
		Preference: domain.PreferenceLanguages,
		Grammar:    domain.GrammarLanguages,
	}
}

// Session handles GET /api/session. It issues a fresh action token along
// with the data an editor script needs at load time.
func (h *SettingsHandler) Session(w http.ResponseWriter, r *http.Request) {
	userID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		writeFault(w, http.StatusUnauthorized, domain.KindAuth, "unauthorized")
		return
	}

	us, err := h.svc.GetSettings(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	token, err := h.tokens.GenerateActionToken(userID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeOutcome(w, http.StatusOK, Success(sessionResponse{
		ActionToken:       token,
		HasAPIKey:         us.HasAPIKey,
		PreferredLanguage: us.PreferredLanguage,
		Languages:         languages(),
	}))
}

// Get handles GET /api/settings.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	us, err := h.svc.GetSettings(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeOutcome(w, http.StatusOK, Success(toSettingsResponse(us)))
}

// Save handles PUT /api/settings. An empty apiKey removes the stored key;
// an absent field is left unchanged.
func (h *SettingsHandler) Save(w http.ResponseWriter, r *http.Request) {
	userID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		writeFault(w, http.StatusUnauthorized, domain.KindAuth, "unauthorized")
		return
	}

	var req saveSettingsRequest
	decodeErr := json.NewDecoder(r.Body).Decode(&req)

	token := req.ActionToken
	if token == "" {
		token = r.Header.Get(actionTokenHeader)
	}
	if err := h.tokens.ValidateActionToken(token, userID); err != nil {
		writeFault(w, http.StatusForbidden, domain.KindAuth, "security check failed")
		return
	}
	if decodeErr != nil {
		writeFault(w, http.StatusBadRequest, domain.KindValidation, "invalid request body")
		return
	}

	us, err := h.svc.SaveSettings(r.Context(), settings.SaveSettingsInput{
		APIKey:            req.APIKey,
		PreferredLanguage: req.PreferredLanguage,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeOutcome(w, http.StatusOK, Success(toSettingsResponse(us)))
}

// Languages handles GET /api/languages.
func (h *SettingsHandler) Languages(w http.ResponseWriter, _ *http.Request) {
	writeOutcome(w, http.StatusOK, Success(languages()))
}

func (h *SettingsHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	f := faultFor(err)
	if f.Kind == domain.KindInternal {
		h.log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
	}
	writeOutcome(w, statusFor(f.Kind), Outcome{Fault: &f})
}

func toSettingsResponse(us *domain.UserSettings) settingsResponse {
	return settingsResponse{
		HasAPIKey:         us.HasAPIKey,
		MaskedAPIKey:      us.MaskedAPIKey,
		PreferredLanguage: us.PreferredLanguage,
	}
}
