package impl

import (
	"context"
	"errors"
	"strings"
	"testing"

	"account/internal/domain"
	"account/internal/mail"
)

type recordingMailer struct {
	sent []domain.Mail
	err  error
}

func (m *recordingMailer) SendMail(_ context.Context, msg domain.Mail) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func newEmailService(t *testing.T, mailer *recordingMailer) *EmailServiceImpl {
	t.Helper()
	r, err := mail.NewRenderer()
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	return NewEmailServiceImpl(mailer, r)
}

func TestSendActivation(t *testing.T) {
	mailer := &recordingMailer{}
	svc := newEmailService(t, mailer)

	link := "https://iot.example.com/api/user/validate?email=a%40b.com&token=tok"
	if err := svc.SendActivation(context.Background(), "a@b.com", link); err != nil {
		t.Fatalf("send: %v", err)
	}
	if len(mailer.sent) != 1 {
		t.Fatalf("expected 1 mail, got %d", len(mailer.sent))
	}
	got := mailer.sent[0]
	if got.To != "a@b.com" || got.Subject != SubjectActivation {
		t.Fatalf("unexpected envelope: %+v", got)
	}
	if !strings.Contains(got.HTML, "token=tok") {
		t.Fatalf("expected link in html body")
	}
}

func TestSendPasswordResetSubject(t *testing.T) {
	mailer := &recordingMailer{}
	svc := newEmailService(t, mailer)

	if err := svc.SendPasswordReset(context.Background(), "a@b.com", "https://iot.example.com/password-reset"); err != nil {
		t.Fatalf("send: %v", err)
	}
	if mailer.sent[0].Subject != "iotMaster: Password reset" {
		t.Fatalf("unexpected subject %q", mailer.sent[0].Subject)
	}
}

func TestSendPropagatesMailerError(t *testing.T) {
	boom := errors.New("smtp down")
	svc := newEmailService(t, &recordingMailer{err: boom})

	if err := svc.SendActivation(context.Background(), "a@b.com", "https://x"); !errors.Is(err, boom) {
		t.Fatalf("expected mailer error, got %v", err)
	}
}
