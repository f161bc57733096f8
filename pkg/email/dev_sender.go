package email

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/dmitrymomot/authkit/pkg/logger"
)

// DevSender logs messages instead of sending them. With a directory set it
// also writes each message as an .html body and a .json envelope.
type DevSender struct {
	log *slog.Logger
	dir string
	now func() time.Time
}

// NewDevSender returns a DevSender. dir may be empty.
func NewDevSender(log *slog.Logger, dir string) *DevSender {
	if log == nil {
		log = logger.Discard()
	}
	return &DevSender{log: log, dir: dir, now: time.Now}
}

type envelope struct {
	Timestamp string `json:"timestamp"`
	SendTo    string `json:"send_to"`
	Subject   string `json:"subject"`
	Tag       string `json:"tag,omitempty"`
}

func (d *DevSender) SendEmail(ctx context.Context, params SendEmailParams) error {
	if err := params.Validate(); err != nil {
		return err
	}

	d.log.InfoContext(ctx, "email captured",
		logger.Component("email"),
		slog.String("to", params.SendTo),
		slog.String("subject", params.Subject),
		slog.String("tag", params.Tag),
	)

	if d.dir == "" {
		return nil
	}
	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return fmt.Errorf("%w: create dir: %w", ErrFailedToSendEmail, err)
	}

	now := d.now()
	name := strings.ToLower(now.Format("2006_01_02_150405") + "_" + fileSlug(cmp.Or(params.Tag, params.Subject)))

	if err := os.WriteFile(filepath.Join(d.dir, name+".html"), []byte(params.BodyHTML), 0o644); err != nil {
		return fmt.Errorf("%w: write body: %w", ErrFailedToSendEmail, err)
	}

	data, err := json.MarshalIndent(envelope{
		Timestamp: now.Format(time.RFC3339),
		SendTo:    params.SendTo,
		Subject:   params.Subject,
		Tag:       params.Tag,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode envelope: %w", ErrFailedToSendEmail, err)
	}
	if err := os.WriteFile(filepath.Join(d.dir, name+".json"), data, 0o644); err != nil {
		return fmt.Errorf("%w: write envelope: %w", ErrFailedToSendEmail, err)
	}
	return nil
}

var unsafeFileChars = regexp.MustCompile(`[^a-zA-Z0-9\-_.]`)

func fileSlug(s string) string {
	s = unsafeFileChars.ReplaceAllString(strings.ReplaceAll(s, " ", "_"), "")
	if len(s) > 100 {
		s = s[:100]
	}
	if s == "" {
		return "email"
	}
	return s
}
