package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strings"

	"github.com/heartmarshall/writeassist-backend/internal/domain"
)

const (
	actionTokenHeader   = "X-Action-Token"
	multipartFormMemory = 1 << 20
)

// assistForm is the union of fields an editor script may post.
type assistForm struct {
	Action      string `json:"action"`
	ActionToken string `json:"actionToken"`
	Nonce       string `json:"nonce"`
	Text        string `json:"text"`
	Tone        string `json:"tone"`
	Language    string `json:"language"`
	Prompt      string `json:"prompt"`
	Context     string `json:"context"`
}

// token returns the authenticity token from the body, falling back to the header.
func (f assistForm) token(r *http.Request) string {
	switch {
	case f.ActionToken != "":
		return f.ActionToken
	case f.Nonce != "":
		return f.Nonce
	}
	return r.Header.Get(actionTokenHeader)
}

// request builds the domain request for action. Generate reads its
// instruction from prompt and falls back to text.
func (f assistForm) request(action domain.Action) domain.AssistRequest {
	req := domain.AssistRequest{
		Action:   action,
		Text:     f.Text,
		Tone:     domain.Tone(strings.ToLower(strings.TrimSpace(f.Tone))),
		Language: f.Language,
	}
	if action == domain.ActionGenerate {
		if strings.TrimSpace(f.Prompt) != "" {
			req.Text = f.Prompt
		}
		req.ContextText = f.Context
	}
	return req
}

// parseAssistForm reads a URL-encoded, multipart or JSON body.
func parseAssistForm(r *http.Request) (assistForm, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	var f assistForm
	switch mediaType {
	case "application/json":
		if err := json.NewDecoder(r.Body).Decode(&f); err != nil {
			return assistForm{}, fmt.Errorf("decode json: %w", err)
		}
		return f, nil
	case "multipart/form-data":
		if err := r.ParseMultipartForm(multipartFormMemory); err != nil {
			return assistForm{}, fmt.Errorf("parse multipart: %w", err)
		}
	default:
		if err := r.ParseForm(); err != nil {
			return assistForm{}, fmt.Errorf("parse form: %w", err)
		}
	}

	f = assistForm{
		Action:      r.PostFormValue("action"),
		ActionToken: r.PostFormValue("actionToken"),
		Nonce:       r.PostFormValue("nonce"),
		Text:        r.PostFormValue("text"),
		Tone:        r.PostFormValue("tone"),
		Language:    r.PostFormValue("language"),
		Prompt:      r.PostFormValue("prompt"),
		Context:     r.PostFormValue("context"),
	}
	return f, nil
}

var errUnknownAction = errors.New("unknown action")

// actionNames maps operation and legacy AJAX action names to actions.
var actionNames = map[string]domain.Action{
	"improve":               domain.ActionImprove,
	"aiwa_improve":          domain.ActionImprove,
	"grammar":               domain.ActionGrammar,
	"checkGrammar":          domain.ActionGrammar,
	"aiwa_grammar":          domain.ActionGrammar,
	"aiwa_check_grammar":    domain.ActionGrammar,
	"rewrite":               domain.ActionRewrite,
	"rewriteContent":        domain.ActionRewrite,
	"aiwa_rewrite":          domain.ActionRewrite,
	"aiwa_rewrite_content":  domain.ActionRewrite,
	"generate":              domain.ActionGenerate,
	"generateContent":       domain.ActionGenerate,
	"aiwa_generate_content": domain.ActionGenerate,
	"detectLanguage":        domain.ActionDetectLanguage,
	"aiwa_detect_language":  domain.ActionDetectLanguage,
}

func resolveAction(name string) (domain.Action, error) {
	a, ok := actionNames[strings.TrimSpace(name)]
	if !ok {
		return "", errUnknownAction
	}
	return a, nil
}
