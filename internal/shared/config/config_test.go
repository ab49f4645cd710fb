package config

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.AppEnv)
	assert.True(t, cfg.IsDev())
	assert.Equal(t, "aes-256-ctr", cfg.Cipher.Algorithm)
	assert.Equal(t, "passphrase", cfg.Cipher.Passphrase)
	assert.Equal(t, "info", cfg.Log.Threshold)
	assert.Equal(t, "no-reply@localhost", cfg.Mail.ReplyTo)
	assert.Equal(t, "text/html", cfg.Mail.ContentType)
	assert.Equal(t, 25, cfg.Mail.SMTPPort)
	assert.Equal(t, 24*time.Hour, cfg.Nonce.Lifespan)
	assert.Empty(t, cfg.Postgres.URL)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("CIPHER_ALGORITHM", "not-a-real-cipher")
	t.Setenv("CIPHER_PASSPHRASE", "s3cret")
	t.Setenv("SMTP_PORT", "2525")
	t.Setenv("NONCE_LIFESPAN", "2h")
	t.Setenv("TELEGRAM_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_ADMIN_CHAT_ID", "-1001")

	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.False(t, cfg.IsDev())
	// Unknown algorithms are accepted here and rejected by the cipher
	assert.Equal(t, "not-a-real-cipher", cfg.Cipher.Algorithm)
	assert.Equal(t, "s3cret", cfg.Cipher.Passphrase)
	assert.Equal(t, 2525, cfg.Mail.SMTPPort)
	assert.Equal(t, 2*time.Hour, cfg.Nonce.Lifespan)
	assert.Equal(t, int64(-1001), cfg.Telegram.AdminChatID)
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	t.Setenv("CIPHER_ALGORITHM", "aes-128-ctr")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("cipher-algorithm", "", "")
	fs.String("mail-administrator-email", "", "")
	fs.Bool("verbose", false, "") // not a config key, ignored
	require.NoError(t, fs.Parse([]string{"--cipher-algorithm=chacha20", "--mail-administrator-email=admin@example.com"}))

	cfg, err := Load(fs)
	require.NoError(t, err)

	assert.Equal(t, "chacha20", cfg.Cipher.Algorithm)
	assert.Equal(t, "admin@example.com", cfg.Mail.AdministratorEmail)
}

func TestLoad_Invalid(t *testing.T) {
	testCases := []struct {
		name string
		env  map[string]string
	}{
		{"bad port", map[string]string{"SMTP_PORT": "70000"}},
		{"bad lifespan", map[string]string{"NONCE_LIFESPAN": "-1s"}},
		{"telegram without chat", map[string]string{"TELEGRAM_TOKEN": "123:abc"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := Load(nil)
			assert.Error(t, err)
		})
	}
}

func TestFlagKey(t *testing.T) {
	assert.Equal(t, "mail.smtp_host", flagKey("mail-smtp-host"))
	assert.Equal(t, "cipher.algorithm", flagKey("cipher-algorithm"))
	assert.Equal(t, "verbose", flagKey("verbose"))
}

func TestReplyToAddress(t *testing.T) {
	cfg := &Config{}
	assert.Equal(t, "no-reply@example.com", cfg.ReplyToAddress("example.com"))
	assert.Equal(t, "no-reply@localhost", cfg.ReplyToAddress(""))

	cfg.Mail.ReplyTo = "noreply@example.com"
	assert.Equal(t, "noreply@example.com", cfg.ReplyToAddress("example.com"))
}
