// Package httputil holds the JSON envelope helpers shared by every HTTP
// handler.
package httputil

import (
	"encoding/json"
	"errors"
	"net/http"

	dErrors "verifid/pkg/domain-errors"
)

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates a domain error into the JSON error envelope.
// Internal errors never leak their message to the client; everything else
// surfaces the message and, when present, the remediation hint.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeInternal
	message := ""
	var de *dErrors.DomainError
	if errors.As(err, &de) {
		code = de.Code
		message = de.Message
	}

	body := map[string]string{"error": string(code)}
	if code != dErrors.CodeInternal && code != dErrors.CodeUnknown {
		if message != "" {
			body["error_description"] = message
		}
		if hint := dErrors.HintOf(err); hint != "" {
			body["hint"] = hint
		}
	}
	WriteJSON(w, dErrors.ToHTTPStatus(code), body)
}
