package email

// Config holds email delivery settings. The Postmark tokens are optional; when
// either is empty NewSender falls back to DevSender.
type Config struct {
	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	SenderEmail          string `env:"SENDER_EMAIL" envDefault:"noreply@localhost"`
	SupportEmail         string `env:"SUPPORT_EMAIL" envDefault:"support@localhost"`
	DevDir               string `env:"EMAIL_DEV_DIR"`
	ResetURL             string `env:"EMAIL_RESET_URL" envDefault:"http://localhost:8080/reset_password"`
}

// UsePostmark reports whether both Postmark tokens are set.
func (c Config) UsePostmark() bool {
	return c.PostmarkServerToken != "" && c.PostmarkAccountToken != ""
}
