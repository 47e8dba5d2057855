package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/heartmarshall/writeassist-backend/internal/domain"
	"github.com/heartmarshall/writeassist-backend/pkg/ctxutil"
)

// assistService defines the minimal interface needed by AssistHandler.
type assistService interface {
	Assist(ctx context.Context, req domain.AssistRequest) (*domain.AssistResult, error)
}

// actionTokenValidator checks the per-user authenticity token.
type actionTokenValidator interface {
	ValidateActionToken(token string, userID uuid.UUID) error
}

// AssistHandler dispatches assistant actions posted by editor scripts.
type AssistHandler struct {
	svc    assistService
	tokens actionTokenValidator
	log    *slog.Logger
}

// NewAssistHandler creates an AssistHandler.
func NewAssistHandler(svc assistService, tokens actionTokenValidator, logger *slog.Logger) *AssistHandler {
	return &AssistHandler{svc: svc, tokens: tokens, log: logger.With("handler", "assist")}
}

// Operation handles POST /api/assist/{operation}.
func (h *AssistHandler) Operation(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, func(assistForm) string { return chi.URLParam(r, "operation") })
}

// Ajax handles POST /api/ajax, selecting the action from the action field.
func (h *AssistHandler) Ajax(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, func(f assistForm) string { return f.Action })
}

func (h *AssistHandler) dispatch(w http.ResponseWriter, r *http.Request, actionName func(assistForm) string) {
	ctx := r.Context()

	form, parseErr := parseAssistForm(r)

	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		writeFault(w, http.StatusUnauthorized, domain.KindAuth, "unauthorized")
		return
	}
	if err := h.tokens.ValidateActionToken(form.token(r), userID); err != nil {
		h.log.WarnContext(ctx, "action token rejected", slog.String("error", err.Error()))
		writeFault(w, http.StatusForbidden, domain.KindAuth, "security check failed")
		return
	}

	if parseErr != nil {
		writeFault(w, http.StatusBadRequest, domain.KindValidation, "invalid request body")
		return
	}

	action, err := resolveAction(actionName(form))
	if err != nil {
		writeFault(w, http.StatusBadRequest, domain.KindValidation, "unknown action")
		return
	}

	result, err := h.svc.Assist(ctx, form.request(action))
	if err != nil {
		h.handleError(w, r, action, err)
		return
	}

	writeOutcome(w, http.StatusOK, Success(result.Payload()))
}

func (h *AssistHandler) handleError(w http.ResponseWriter, r *http.Request, action domain.Action, err error) {
	f := faultFor(err)
	status := statusFor(f.Kind)

	switch f.Kind {
	case domain.KindInternal:
		h.log.ErrorContext(r.Context(), "internal error",
			slog.String("action", action.String()),
			slog.String("error", err.Error()),
		)
	case domain.KindAPI, domain.KindNetwork:
		h.log.WarnContext(r.Context(), "provider call failed",
			slog.String("action", action.String()),
			slog.String("kind", string(f.Kind)),
		)
	}

	writeOutcome(w, status, Outcome{Fault: &f})
}
