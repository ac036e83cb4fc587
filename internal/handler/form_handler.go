package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/stitch/backend/internal/model"
	"github.com/stitch/backend/internal/service"
	"github.com/stitch/backend/pkg/formtoken"
)

// FormHandler handles form token issuing and form submission.
type FormHandler struct {
	submissions service.SubmissionService
	tokens      *formtoken.Verifier
}

// NewFormHandler creates a FormHandler with the given service and verifier.
func NewFormHandler(submissions service.SubmissionService, tokens *formtoken.Verifier) *FormHandler {
	return &FormHandler{submissions: submissions, tokens: tokens}
}

// Token handles GET /api/forms/token. Each form render fetches one token and
// echoes it back with the submission.
func (h *FormHandler) Token(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	_ = json.NewEncoder(w).Encode(map[string]string{"token": h.tokens.Issue()})
}

// Submit handles POST /api/forms/submit. The body is a flat mapping of field
// names to string values, either a JSON object or an urlencoded form.
func (h *FormHandler) Submit(w http.ResponseWriter, r *http.Request) {
	raw, ok := parseFlatBody(r)
	if !ok {
		writeResult(w, http.StatusBadRequest, model.Result{
			Success: false,
			Message: "Invalid request body",
		})
		return
	}

	sub := model.NewSubmission(raw, ClientIP(r))
	if sub.Action == "" {
		writeResult(w, http.StatusBadRequest, model.Result{
			Success: false,
			Message: "Invalid form action",
		})
		return
	}

	result, err := h.submissions.Process(r.Context(), sub)
	if err != nil {
		writeResult(w, statusFor(err), result)
		return
	}
	writeResult(w, http.StatusOK, result)
}

// statusFor maps a pipeline failure kind to its HTTP status.
func statusFor(err error) int {
	switch model.KindOf(err) {
	case model.KindAuth:
		if errors.Is(err, formtoken.ErrMissing) {
			return http.StatusBadRequest
		}
		return http.StatusForbidden
	case model.KindValidation:
		return http.StatusUnprocessableEntity
	case model.KindThrottled:
		return http.StatusTooManyRequests
	default:
		// Configuration, transport, remote rejection and store faults all
		// surface as a plain server error; the detail is log-only.
		return http.StatusInternalServerError
	}
}

// parseFlatBody reads the submission fields from a JSON object or an
// urlencoded form. Repeated form keys keep the first value.
func parseFlatBody(r *http.Request) (map[string]string, bool) {
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "application/json") {
		var raw map[string]string
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			return nil, false
		}
		return raw, true
	}

	if err := r.ParseForm(); err != nil {
		return nil, false
	}
	raw := make(map[string]string, len(r.PostForm))
	for key, values := range r.PostForm {
		if len(values) > 0 {
			raw[key] = values[0]
		}
	}
	return raw, true
}

func writeResult(w http.ResponseWriter, status int, result model.Result) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(result)
}
