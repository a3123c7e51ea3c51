package impl

import (
	"context"
	"fmt"

	"account/internal/domain"
	"account/internal/mail"
	"account/internal/observability/metrics"
	"account/internal/service"
)

var _ service.EmailService = (*EmailServiceImpl)(nil)

const (
	SubjectActivation    = "iotMaster: Confirm Your Email Address"
	SubjectPasswordReset = "iotMaster: Password reset"
)

type EmailServiceImpl struct {
	Mailer   service.Mailer
	Renderer *mail.Renderer
}

func NewEmailServiceImpl(mailer service.Mailer, renderer *mail.Renderer) *EmailServiceImpl {
	return &EmailServiceImpl{Mailer: mailer, Renderer: renderer}
}

func (e *EmailServiceImpl) SendActivation(ctx context.Context, to, link string) error {
	return e.send(ctx, mail.TemplateActivation, SubjectActivation, to, link)
}

func (e *EmailServiceImpl) SendPasswordReset(ctx context.Context, to, link string) error {
	return e.send(ctx, mail.TemplatePasswordReset, SubjectPasswordReset, to, link)
}

func (e *EmailServiceImpl) send(ctx context.Context, tmpl, subject, to, link string) (err error) {
	defer func() {
		metrics.MailsSentTotal.WithLabelValues(tmpl, metrics.Result(err)).Inc()
	}()
	html, err := e.Renderer.Render(tmpl, mail.Link{Email: to, Href: link})
	if err != nil {
		return fmt.Errorf("render %s: %w", tmpl, err)
	}
	return e.Mailer.SendMail(ctx, domain.Mail{To: to, Subject: subject, HTML: html})
}
