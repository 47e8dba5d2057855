package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"

	"github.com/heartmarshall/writeassist-backend/internal/domain"
)

// Fault describes a failed outcome.
type Fault struct {
	Kind    domain.ErrorKind
	Message string
}

// Outcome is the result of one inbound action: either OK with a Value, or a Fault.
type Outcome struct {
	OK    bool
	Value any
	Fault *Fault
}

// Success wraps v in a successful Outcome.
func Success(v any) Outcome {
	return Outcome{OK: true, Value: v}
}

// Failure builds a failed Outcome.
func Failure(kind domain.ErrorKind, message string) Outcome {
	return Outcome{Fault: &Fault{Kind: kind, Message: message}}
}

type envelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

type faultBody struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// MarshalJSON writes {success:true,data:<value>} or
// {success:false,data:{message,code}}.
func (o Outcome) MarshalJSON() ([]byte, error) {
	if o.OK {
		return json.Marshal(envelope{Success: true, Data: o.Value})
	}

	f := Fault{Kind: domain.KindInternal, Message: "internal server error"}
	if o.Fault != nil {
		f = *o.Fault
	}
	return json.Marshal(envelope{
		Success: false,
		Data:    faultBody{Message: f.Message, Code: string(f.Kind)},
	})
}

// DecodeEnvelope parses a response envelope. A successful outcome carries its
// data as json.RawMessage. Failure data is accepted both as a bare string and
// as an object with a message field.
func DecodeEnvelope(data []byte) (Outcome, error) {
	if !gjson.ValidBytes(data) {
		return Outcome{}, errors.New("envelope: invalid JSON")
	}

	doc := gjson.ParseBytes(data)
	success := doc.Get("success")
	if !success.IsBool() {
		return Outcome{}, errors.New("envelope: missing success flag")
	}

	payload := doc.Get("data")
	if success.Bool() {
		var raw json.RawMessage
		if payload.Exists() {
			raw = json.RawMessage(payload.Raw)
		}
		return Outcome{OK: true, Value: raw}, nil
	}

	switch {
	case payload.Type == gjson.String:
		return Failure("", payload.String()), nil
	case payload.IsObject():
		return Failure(domain.ErrorKind(payload.Get("code").String()), payload.Get("message").String()), nil
	default:
		return Outcome{}, fmt.Errorf("envelope: unsupported failure data %s", payload.Type)
	}
}

// statusFor maps an error kind to the HTTP status of the failure envelope.
func statusFor(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindValidation, domain.KindCredentialMissing:
		return http.StatusBadRequest
	case domain.KindAuth:
		return http.StatusUnauthorized
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindAPI, domain.KindNetwork:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// faultFor converts a service error into a displayable fault.
func faultFor(err error) Fault {
	kind := domain.KindOf(err)

	switch kind {
	case domain.KindValidation:
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			return Fault{Kind: kind, Message: ve.Messages()}
		}
		return Fault{Kind: kind, Message: "invalid request"}
	case domain.KindAuth:
		return Fault{Kind: kind, Message: "unauthorized"}
	case domain.KindCredentialMissing:
		return Fault{Kind: kind, Message: "No API key configured"}
	case domain.KindAPI:
		var pe *domain.ProviderError
		if errors.As(err, &pe) {
			return Fault{Kind: kind, Message: pe.Message}
		}
		return Fault{Kind: kind, Message: "invalid response"}
	case domain.KindNetwork:
		return Fault{Kind: kind, Message: "could not reach the AI provider"}
	case domain.KindNotFound:
		return Fault{Kind: kind, Message: "not found"}
	default:
		return Fault{Kind: domain.KindInternal, Message: "internal server error"}
	}
}

func writeOutcome(w http.ResponseWriter, status int, o Outcome) {
	writeJSON(w, status, o)
}

func writeFault(w http.ResponseWriter, status int, kind domain.ErrorKind, message string) {
	writeOutcome(w, status, Failure(kind, message))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}
