package model

import "testing"

func TestNewSubmission_StripsReservedKeys(t *testing.T) {
	raw := map[string]string{
		FieldAction:         "webhook",
		FieldToken:          "tok-123",
		FieldSuccessMessage: "Thanks!",
		"email":             "a@b.com",
		"name":              "Alice",
		"message":           "hello there friend",
	}
	sub := NewSubmission(raw, "203.0.113.7")

	if sub.Action != "webhook" {
		t.Errorf("expected action=webhook, got %q", sub.Action)
	}
	if sub.Token != "tok-123" {
		t.Errorf("expected token=tok-123, got %q", sub.Token)
	}
	if sub.SuccessMessage != "Thanks!" {
		t.Errorf("expected success message Thanks!, got %q", sub.SuccessMessage)
	}
	for _, reserved := range []string{FieldAction, FieldToken, FieldSuccessMessage} {
		if _, ok := sub.Fields[reserved]; ok {
			t.Errorf("reserved key %q must not appear in forwarded fields", reserved)
		}
	}
	if len(sub.Fields) != 3 {
		t.Errorf("expected 3 forwarded fields, got %d", len(sub.Fields))
	}
	if sub.RemoteIP != "203.0.113.7" {
		t.Errorf("expected remote IP preserved, got %q", sub.RemoteIP)
	}
}

func TestNewSubmission_SanitizesValues(t *testing.T) {
	raw := map[string]string{
		"name":    "  Ali\x00ce\x1b  ",
		"message": "line one\nline\ttwo\x00",
	}
	sub := NewSubmission(raw, "")

	if got := sub.Fields["name"]; got != "Alice" {
		t.Errorf("expected control chars stripped and trimmed, got %q", got)
	}
	// message keeps newlines and tabs but drops other control characters
	if got := sub.Fields["message"]; got != "line one\nline\ttwo" {
		t.Errorf("expected newline/tab preserved in message, got %q", got)
	}
}

func TestSubmission_Email_Normalizes(t *testing.T) {
	sub := NewSubmission(map[string]string{"email": " User@Example.COM "}, "")
	if got := sub.Email(); got != "user@example.com" {
		t.Errorf("expected normalized email, got %q", got)
	}
}

func TestKindOf(t *testing.T) {
	err := NewError(KindThrottled, "quota exceeded")
	if KindOf(err) != KindThrottled {
		t.Errorf("expected KindThrottled, got %q", KindOf(err))
	}
	wrapped := WrapError(KindTransport, "send failed", err)
	if KindOf(wrapped) != KindTransport {
		t.Errorf("expected outermost kind, got %q", KindOf(wrapped))
	}
	if KindOf(errPlain) != KindInternal {
		t.Errorf("expected unclassified errors to be internal, got %q", KindOf(errPlain))
	}
}

var errPlain = &plainError{}

type plainError struct{}

func (*plainError) Error() string { return "plain" }
