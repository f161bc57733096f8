package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/url"

	"github.com/dmitrymomot/authkit/pkg/user"
)

const resetTag = "password-reset"

var resetTemplate = template.Must(template.New("reset").Parse(`<!doctype html>
<html>
<body>
<p>Hello {{.Email}},</p>
<p>Someone asked to reset the password for this account. Use the token below or follow the link to choose a new password.</p>
<p><code>{{.Token}}</code></p>
{{if .Link}}<p><a href="{{.Link}}">Reset password</a></p>{{end}}
<p>If you did not ask for this, ignore this message.</p>
</body>
</html>
`))

// ResetNotifier mails password reset tokens.
type ResetNotifier struct {
	sender  EmailSender
	baseURL string
}

// NewResetNotifier returns a notifier. When baseURL is set the message links to
// it with the token in the "token" query parameter.
func NewResetNotifier(sender EmailSender, baseURL string) *ResetNotifier {
	return &ResetNotifier{sender: sender, baseURL: baseURL}
}

// Notify has the shape expected by auth.WithAfterResetRequest.
func (n *ResetNotifier) Notify(ctx context.Context, u *user.User, token string) error {
	body, err := n.render(u.Email, token)
	if err != nil {
		return err
	}
	return n.sender.SendEmail(ctx, SendEmailParams{
		SendTo:   u.Email,
		Subject:  "Reset your password",
		BodyHTML: body,
		Tag:      resetTag,
	})
}

func (n *ResetNotifier) render(email, token string) (string, error) {
	data := struct {
		Email, Token, Link string
	}{Email: email, Token: token}

	if n.baseURL != "" {
		link, err := url.Parse(n.baseURL)
		if err != nil {
			return "", fmt.Errorf("%w: reset url: %w", ErrInvalidConfig, err)
		}
		q := link.Query()
		q.Set("token", token)
		link.RawQuery = q.Encode()
		data.Link = link.String()
	}

	var buf bytes.Buffer
	if err := resetTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render reset email: %w", err)
	}
	return buf.String(), nil
}
