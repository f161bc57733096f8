package email

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/authkit/pkg/user"
)

// EmailSender sends a single message.
type EmailSender interface {
	SendEmail(ctx context.Context, params SendEmailParams) error
}

// SendEmailParams describes one outgoing message.
type SendEmailParams struct {
	SendTo   string `json:"send_to"`
	Subject  string `json:"subject"`
	BodyHTML string `json:"body_html"`
	Tag      string `json:"tag,omitempty"`
}

// Validate checks the recipient address and that subject and body are set.
func (p SendEmailParams) Validate() error {
	if p.SendTo == "" {
		return fmt.Errorf("%w: recipient is required", ErrInvalidParams)
	}
	if _, err := user.ValidateEmail(p.SendTo); err != nil {
		return fmt.Errorf("%w: recipient: %w", ErrInvalidParams, err)
	}
	if p.Subject == "" {
		return fmt.Errorf("%w: subject is required", ErrInvalidParams)
	}
	if p.BodyHTML == "" {
		return fmt.Errorf("%w: body is required", ErrInvalidParams)
	}
	return nil
}

// NewSender returns a PostmarkSender when cfg carries Postmark tokens and a
// DevSender otherwise.
func NewSender(cfg Config, log *slog.Logger) (EmailSender, error) {
	if cfg.UsePostmark() {
		return NewPostmarkSender(cfg)
	}
	return NewDevSender(log, cfg.DevDir), nil
}
