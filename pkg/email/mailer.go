package email

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrymomot/pkgindex/pkg/validator"
)

type EmailSender interface {
	SendEmail(ctx context.Context, params SendEmailParams) error
}

type SendEmailParams struct {
	SendTo   string `json:"send_to"`
	Subject  string `json:"subject"`
	BodyHTML string `json:"body_html"`
	Tag      string `json:"tag,omitempty"`
}

func (p SendEmailParams) Validate() error {
	if err := validator.Apply(
		validator.ValidEmail("send_to", p.SendTo),
		validator.Required("subject", p.Subject),
		validator.MaxLen("subject", p.Subject, 255),
		validator.Required("body_html", strings.TrimSpace(p.BodyHTML)),
	); err != nil {
		return errors.Join(ErrInvalidParams, err)
	}
	return nil
}
