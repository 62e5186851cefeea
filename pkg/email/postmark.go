package email

import (
	"context"
	"errors"
	"fmt"

	"github.com/mrz1836/postmark"

	"github.com/dmitrymomot/emailcraft/pkg/validator"
)

type postmarkClient struct {
	client *postmark.Client
	config Config
}

// NewPostmarkClient returns a Postmark-backed EmailSender.
func NewPostmarkClient(cfg Config) (EmailSender, error) {
	if cfg.PostmarkServerToken == "" {
		return nil, fmt.Errorf("%w: postmark server token is required", ErrInvalidConfig)
	}
	if err := validator.Apply(
		validator.Email("sender_email", cfg.SenderEmail),
		validator.Email("support_email", cfg.SupportEmail),
	); err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}

	client := postmark.NewClient(cfg.PostmarkServerToken, cfg.PostmarkAccountToken)
	if cfg.PostmarkBaseURL != "" {
		client.BaseURL = cfg.PostmarkBaseURL
	}
	return &postmarkClient{client: client, config: cfg}, nil
}

func (c *postmarkClient) SendEmail(ctx context.Context, params SendEmailParams) error {
	if err := params.Validate(); err != nil {
		return err
	}

	resp, err := c.client.SendEmail(ctx, postmark.Email{
		From:       c.config.SenderEmail,
		ReplyTo:    c.config.SupportEmail,
		To:         params.SendTo,
		Subject:    params.Subject,
		Tag:        params.Tag,
		HTMLBody:   params.BodyHTML,
		TextBody:   params.BodyText,
		TrackOpens: false,
	})
	if err != nil {
		return errors.Join(ErrFailedToSendEmail, err)
	}
	if resp.ErrorCode > 0 {
		return errors.Join(ErrFailedToSendEmail, fmt.Errorf("postmark error %d: %s", resp.ErrorCode, resp.Message))
	}
	return nil
}
