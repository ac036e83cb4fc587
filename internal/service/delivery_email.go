package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/stitch/backend/internal/model"
	"github.com/stitch/backend/pkg/mail"
)

// EmailBackend forwards a submission as a plain-text email to a configured
// recipient. No retry: a failed handoff to the transport is reported once.
type EmailBackend struct {
	mailer    mail.Mailer
	recipient string
	siteName  string
	now       func() time.Time
}

// NewEmailBackend creates the email delivery backend. recipient may be empty
// when the destination is not configured; delivery then fails fast.
func NewEmailBackend(mailer mail.Mailer, recipient, siteName string) *EmailBackend {
	return &EmailBackend{
		mailer:    mailer,
		recipient: recipient,
		siteName:  siteName,
		now:       time.Now,
	}
}

var _ Backend = (*EmailBackend)(nil)

func (b *EmailBackend) Name() string { return "email" }

// Deliver formats every forwarded field as a "Label: value" line, appends
// the submission metadata footer and sends the result to the recipient.
func (b *EmailBackend) Deliver(ctx context.Context, sub *model.Submission) error {
	if b.recipient == "" {
		return model.NewError(model.KindConfigurationMissing, "contact recipient not configured")
	}

	subject := fmt.Sprintf("New Form Submission from %s", b.siteName)

	var body strings.Builder
	body.WriteString("New form submission:\n\n")

	names := make([]string, 0, len(sub.Fields))
	for name := range sub.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		body.WriteString(fieldLabel(name) + ": " + sub.Fields[name] + "\n")
	}

	ip := sub.RemoteIP
	if ip == "" {
		ip = "unknown"
	}
	body.WriteString("\n--- Submission Details ---\n")
	body.WriteString("Time: " + b.now().UTC().Format("2006-01-02 15:04:05") + "\n")
	body.WriteString("IP Address: " + ip + "\n")

	if err := b.mailer.Send(ctx, b.recipient, subject, body.String()); err != nil {
		return model.WrapError(model.KindTransport, "mail handoff failed", err)
	}
	return nil
}

// fieldLabel turns a field name into a human label: underscores and hyphens
// become spaces, first letter upper-cased.
func fieldLabel(name string) string {
	label := strings.NewReplacer("_", " ", "-", " ").Replace(name)
	if label == "" {
		return label
	}
	return strings.ToUpper(label[:1]) + label[1:]
}
