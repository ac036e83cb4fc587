package model

import (
	"strings"
	"time"
)

// Reserved field names carried alongside user input in a form post.
// They steer the pipeline and are never forwarded to a delivery backend.
const (
	FieldAction         = "form_action"
	FieldToken          = "_token"
	FieldSuccessMessage = "success_message"
)

// FormData is a flat mapping of form field names to submitted values.
type FormData map[string]string

// ValidationErrors maps a field name to its error message.
// An empty map means the submission is valid.
type ValidationErrors map[string]string

// Submission is a single parsed form post: the routing envelope plus the
// sanitized user-supplied fields that delivery backends receive.
type Submission struct {
	Action         string
	Token          string
	SuccessMessage string
	Fields         FormData
	RemoteIP       string
	ReceivedAt     time.Time
}

// NewSubmission builds a Submission from the raw field mapping of a form
// post. Reserved keys are pulled into the envelope and dropped from Fields;
// every remaining value is sanitized before any rule sees it.
func NewSubmission(raw map[string]string, remoteIP string) *Submission {
	s := &Submission{
		Fields:     make(FormData, len(raw)),
		RemoteIP:   remoteIP,
		ReceivedAt: time.Now().UTC(),
	}
	for key, value := range raw {
		switch key {
		case FieldAction:
			s.Action = strings.TrimSpace(value)
		case FieldToken:
			s.Token = strings.TrimSpace(value)
		case FieldSuccessMessage:
			s.SuccessMessage = sanitizeLine(value)
		default:
			if key == "message" {
				s.Fields[key] = sanitizeText(value)
			} else {
				s.Fields[key] = sanitizeLine(value)
			}
		}
	}
	return s
}

// Email returns the submitted email field, normalized for identity use.
func (s *Submission) Email() string {
	return strings.ToLower(strings.TrimSpace(s.Fields["email"]))
}

// sanitizeLine strips all control characters and trims surrounding space.
// Used for single-line fields.
func sanitizeLine(v string) string {
	return strings.TrimSpace(strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, v))
}

// sanitizeText strips control characters but keeps newlines and tabs.
// Used for multi-line fields.
func sanitizeText(v string) string {
	return strings.TrimSpace(strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, v))
}

// Result is the response payload returned to the form caller.
type Result struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Errors  ValidationErrors `json:"errors,omitempty"`
}

// SubmissionRecord is an accepted submission archived for the site inbox.
type SubmissionRecord struct {
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	Email     string    `json:"email"`
	Fields    FormData  `json:"fields"`
	RemoteIP  string    `json:"remote_ip"`
	CreatedAt time.Time `json:"created_at"`
}
