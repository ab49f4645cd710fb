package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRun_NoticesRequireDatabase(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("TELEGRAM_TOKEN", "")
	t.Setenv("APP_ENV", "prod")
	t.Setenv("LOG_DIR", t.TempDir())

	// An in-memory queue cannot carry a notice from one run to the next.
	assert.Equal(t, 1, run([]string{"notice", "add", "Settings saved"}))
	assert.Equal(t, 1, run([]string{"notice", "flush"}))
}

func TestRun_UsageErrors(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("TELEGRAM_TOKEN", "")
	t.Setenv("APP_ENV", "prod")
	t.Setenv("LOG_DIR", t.TempDir())

	assert.Equal(t, 2, run(nil))
	assert.Equal(t, 2, run([]string{"frobnicate"}))
	assert.Equal(t, 0, run([]string{"algorithms"}))
}
