package email

// Config holds email delivery settings.
type Config struct {
	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	PostmarkBaseURL      string `env:"POSTMARK_BASE_URL"`
	SenderEmail          string `env:"SENDER_EMAIL" envDefault:"editor@emailcraft.local"`
	SupportEmail         string `env:"SUPPORT_EMAIL" envDefault:"support@emailcraft.local"`
	DevDir               string `env:"EMAIL_DEV_DIR" envDefault:"tmp/emails"`
}
