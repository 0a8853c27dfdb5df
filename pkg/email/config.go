package email

// Config selects and configures the outbound mail transport. Without a
// Postmark server token messages are written to DevDir instead of sent.
type Config struct {
	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	SenderEmail          string `env:"SENDER_EMAIL" envDefault:"noreply@pkgindex.local"`
	SupportEmail         string `env:"SUPPORT_EMAIL" envDefault:"support@pkgindex.local"`
	DevDir               string `env:"MAIL_DEV_DIR" envDefault:"tmp/mail"`
}

// NewSenderFromConfig returns a Postmark sender when a server token is set
// and a DevSender otherwise.
func NewSenderFromConfig(cfg Config) (EmailSender, error) {
	if cfg.PostmarkServerToken == "" {
		return NewDevSender(cfg.DevDir), nil
	}
	return NewPostmarkClient(cfg)
}
