package config

import "sync"

// MailerConfig holds the identity written into every generated email.
type MailerConfig struct {
	CompanyName   string
	SenderName    string
	DefaultLength string
}

var (
	mailerConfig *MailerConfig
	mailerOnce   sync.Once
)

func LoadMailerConfig() *MailerConfig {
	mailerOnce.Do(func() {
		mailerConfig = &MailerConfig{
			CompanyName:   getEnv("MAILER_COMPANY_NAME", "TCS"),
			SenderName:    getEnv("MAILER_SENDER_NAME", "Om Thakare"),
			DefaultLength: getEnv("MAILER_DEFAULT_LENGTH", "Medium"),
		}
	})
	return mailerConfig
}
