package config

import (
	"UnaxHelper/internal/core/domain"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// LogConfig controls the log file and threshold.
type LogConfig struct {
	Dir       string
	Prefix    string
	Threshold string
}

// MailConfig holds sender identity and the SMTP relay.
type MailConfig struct {
	AdministratorEmail string
	ReplyTo            string
	FromName           string
	ContentType        string
	SMTPHost           string
	SMTPPort           int
}

// PostgresConfig is optional; notices live in memory when URL is empty.
type PostgresConfig struct {
	URL string
}

// TelegramConfig is optional; admin alerts are disabled when Token is empty.
type TelegramConfig struct {
	Token       string
	AdminChatID int64
}

// NonceConfig signs form nonces.
type NonceConfig struct {
	Secret   string
	Lifespan time.Duration
}

// Config holds all configuration for the application.
type Config struct {
	AppEnv     string
	Cipher     domain.CipherConfig
	Log        LogConfig
	Mail       MailConfig
	Postgres   PostgresConfig
	Telegram   TelegramConfig
	Nonce      NonceConfig
	DateLayout string
}

// bindings maps viper keys to the environment variables that feed them.
var bindings = map[string]string{
	"app.env":                  "APP_ENV",
	"cipher.algorithm":         "CIPHER_ALGORITHM",
	"cipher.passphrase":        "CIPHER_PASSPHRASE",
	"log.dir":                  "LOG_DIR",
	"log.prefix":               "LOG_PREFIX",
	"log.threshold":            "LOG_THRESHOLD",
	"mail.administrator_email": "MAIL_ADMINISTRATOR_EMAIL",
	"mail.reply_to":            "MAIL_REPLY_TO",
	"mail.from_name":           "MAIL_FROM_NAME",
	"mail.content_type":        "MAIL_CONTENT_TYPE",
	"mail.smtp_host":           "SMTP_HOST",
	"mail.smtp_port":           "SMTP_PORT",
	"postgres.url":             "DATABASE_URL",
	"telegram.token":           "TELEGRAM_TOKEN",
	"telegram.admin_chat_id":   "TELEGRAM_ADMIN_CHAT_ID",
	"nonce.secret":             "NONCE_SECRET",
	"nonce.lifespan":           "NONCE_LIFESPAN",
	"date.layout":              "DATE_LAYOUT",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "dev")
	v.SetDefault("cipher.algorithm", domain.DefaultCipherAlgorithm)
	v.SetDefault("cipher.passphrase", domain.DefaultCipherPassphrase)
	v.SetDefault("log.threshold", "info")
	v.SetDefault("mail.reply_to", "no-reply@localhost")
	v.SetDefault("mail.from_name", "Helper")
	v.SetDefault("mail.content_type", "text/html")
	v.SetDefault("mail.smtp_host", "localhost")
	v.SetDefault("mail.smtp_port", 25)
	v.SetDefault("nonce.lifespan", 24*time.Hour)
	v.SetDefault("date.layout", "02/01/2006")
}

// Load loads configuration from the environment (and a .env file if present).
// Flags in fs, when non-nil, override the environment; a flag named
// "cipher-algorithm" feeds the key "cipher.algorithm".
func Load(fs *pflag.FlagSet) (*Config, error) {
	// A missing .env is fine in prod, anything else is not.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("could not bind %s: %w", key, err)
		}
	}
	setDefaults(v)

	if fs != nil {
		var bindErr error
		fs.VisitAll(func(f *pflag.Flag) {
			key := flagKey(f.Name)
			if _, known := bindings[key]; !known || bindErr != nil {
				return
			}
			bindErr = v.BindPFlag(key, f)
		})
		if bindErr != nil {
			return nil, fmt.Errorf("could not bind flags: %w", bindErr)
		}
	}

	cfg := Config{
		AppEnv: v.GetString("app.env"),
		Cipher: domain.CipherConfig{
			Algorithm:  v.GetString("cipher.algorithm"),
			Passphrase: v.GetString("cipher.passphrase"),
		},
		Log: LogConfig{
			Dir:       v.GetString("log.dir"),
			Prefix:    v.GetString("log.prefix"),
			Threshold: v.GetString("log.threshold"),
		},
		Mail: MailConfig{
			AdministratorEmail: v.GetString("mail.administrator_email"),
			ReplyTo:            v.GetString("mail.reply_to"),
			FromName:           v.GetString("mail.from_name"),
			ContentType:        v.GetString("mail.content_type"),
			SMTPHost:           v.GetString("mail.smtp_host"),
			SMTPPort:           v.GetInt("mail.smtp_port"),
		},
		Postgres: PostgresConfig{URL: v.GetString("postgres.url")},
		Telegram: TelegramConfig{
			Token:       v.GetString("telegram.token"),
			AdminChatID: v.GetInt64("telegram.admin_chat_id"),
		},
		Nonce: NonceConfig{
			Secret:   v.GetString("nonce.secret"),
			Lifespan: v.GetDuration("nonce.lifespan"),
		},
		DateLayout: v.GetString("date.layout"),
	}

	// Cipher settings are deliberately not checked here; a bad algorithm
	// name is reported by the cipher itself.
	if cfg.Mail.SMTPPort <= 0 || cfg.Mail.SMTPPort > 65535 {
		return nil, fmt.Errorf("SMTP_PORT must be between 1 and 65535, but got %d", cfg.Mail.SMTPPort)
	}
	if cfg.Nonce.Lifespan <= 0 {
		return nil, fmt.Errorf("NONCE_LIFESPAN must be positive, but got %s", cfg.Nonce.Lifespan)
	}
	if cfg.Telegram.Token != "" && cfg.Telegram.AdminChatID == 0 {
		return nil, fmt.Errorf("TELEGRAM_ADMIN_CHAT_ID is required when TELEGRAM_TOKEN is set")
	}

	return &cfg, nil
}

// flagKey turns "mail-smtp-host" style flag names into viper keys
// ("mail.smtp_host"): the first dash separates the section.
func flagKey(name string) string {
	key := strings.Replace(name, "-", ".", 1)
	return strings.ReplaceAll(key, "-", "_")
}

// IsDev reports whether human-readable console logging should be used.
func (c *Config) IsDev() bool {
	return c.AppEnv == "dev"
}

// ReplyToAddress returns the configured reply-to, or no-reply@host when it is empty.
func (c *Config) ReplyToAddress(host string) string {
	if c.Mail.ReplyTo != "" {
		return c.Mail.ReplyTo
	}
	if host == "" {
		host = "localhost"
	}
	return "no-reply@" + host
}
