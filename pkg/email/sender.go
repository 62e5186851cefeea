package email

import (
	"context"

	"github.com/dmitrymomot/emailcraft/pkg/validator"
)

// EmailSender delivers one email.
type EmailSender interface {
	SendEmail(ctx context.Context, params SendEmailParams) error
}

// SendEmailParams describes one message.
type SendEmailParams struct {
	SendTo   string `json:"send_to"`
	Subject  string `json:"subject"`
	BodyHTML string `json:"body_html"`
	BodyText string `json:"body_text,omitempty"`
	Tag      string `json:"tag,omitempty"`
}

// Validate checks the recipient, subject and body.
func (p SendEmailParams) Validate() error {
	return validator.Apply(
		validator.Required("send_to", p.SendTo),
		validator.Email("send_to", p.SendTo),
		validator.Required("subject", p.Subject),
		validator.MaxLength("subject", p.Subject, 200),
		validator.Required("body_html", p.BodyHTML),
	)
}

// New returns a Postmark sender when a server token is set, a DevSender otherwise.
func New(cfg Config) (EmailSender, error) {
	if cfg.PostmarkServerToken == "" {
		return NewDevSender(cfg.DevDir), nil
	}
	return NewPostmarkClient(cfg)
}
