package main

import (
	"UnaxHelper/internal/adapters/eventbus"
	"UnaxHelper/internal/adapters/memory"
	"UnaxHelper/internal/adapters/postgres"
	"UnaxHelper/internal/adapters/security"
	"UnaxHelper/internal/adapters/smtp"
	"UnaxHelper/internal/adapters/telegram"
	"UnaxHelper/internal/core/ports"
	"UnaxHelper/internal/core/services/mail"
	"UnaxHelper/internal/core/services/nonce"
	"UnaxHelper/internal/core/services/notice"
	"UnaxHelper/internal/core/services/validator"
	"UnaxHelper/internal/shared/config"
	"UnaxHelper/internal/shared/datefmt"
	"UnaxHelper/internal/shared/logger"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
)

// app bundles the wired services the subcommands use.
type app struct {
	cipher    ports.CipherPort
	validator *validator.Validator
	notices   *notice.Service
	mail      *mail.Service
	nonces    *nonce.Service
	dates     datefmt.Formatter
	out       io.Writer

	// durableNotices is false when notices only live in this process.
	durableNotices bool
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := pflag.NewFlagSet("helper", pflag.ContinueOnError)
	fs.SetInterspersed(false)
	fs.String("app-env", "", "dev (console logs) or prod (JSON logs)")
	fs.String("cipher-algorithm", "", "cipher algorithm, see 'helper algorithms'")
	fs.String("cipher-passphrase", "", "cipher passphrase")
	fs.String("log-dir", "", "directory for daily log files")
	fs.String("log-threshold", "", "minimum log level")
	fs.String("mail-administrator-email", "", "administrator address for admin mails")
	fs.String("postgres-url", "", "database for queued notices (required by the notice commands)")
	fs.Usage = usage(fs)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}

	// 1. Load Configuration
	cfg, err := config.Load(fs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to load configuration: %v\n", err)
		return 1
	}

	// 2. Initialize Logger (stderr only if the log file cannot be opened)
	baseLogger, closer, err := logger.NewWithFile(cfg.IsDev(), logger.FileOptions{
		Dir:       cfg.Log.Dir,
		Prefix:    cfg.Log.Prefix,
		Threshold: cfg.Log.Threshold,
	}, time.Now())
	if err != nil {
		baseLogger = logger.New(cfg.IsDev())
		baseLogger.Error().Err(err).Msg("Log file unavailable, logging to stderr only")
	} else {
		defer closer.Close()
	}
	baseLogger.Debug().
		Str("app_env", cfg.AppEnv).
		Str("cipher_algorithm", cfg.Cipher.Algorithm).
		Msg("Configuration loaded")

	ctx := context.Background()

	// 3. Event bus and optional admin alerts
	bus := eventbus.NewInMemoryEventBus(&baseLogger)
	defer bus.Wait()
	if cfg.Telegram.Token != "" {
		api, err := telegram.NewBotAPI(cfg.Telegram.Token)
		if err != nil {
			baseLogger.Error().Err(err).Msg("Telegram alerts disabled")
		} else {
			telegram.NewAlertNotifier(api, cfg.Telegram.AdminChatID, &baseLogger).Subscribe(bus)
		}
	}

	// 4. Notice storage
	noticeRepo := memory.NewNoticeRepository()
	if cfg.Postgres.URL != "" {
		db, err := postgres.NewDB(ctx, cfg.Postgres.URL, &baseLogger)
		if err != nil {
			baseLogger.Error().Err(err).Msg("Failed to initialize database")
			return 1
		}
		defer db.Close()
		if err := db.Migrate(ctx); err != nil {
			return 1
		}
		noticeRepo = postgres.NewNoticeRepository(db, &baseLogger)
	}

	// 5. Services
	host, _ := os.Hostname()
	replyTo := cfg.ReplyToAddress(host)
	mailer := smtp.NewMailer(cfg.Mail.SMTPHost, cfg.Mail.SMTPPort, replyTo, &baseLogger)

	nonces, err := nonce.NewService(cfg.Nonce.Secret, cfg.Nonce.Lifespan, &baseLogger)
	if err != nil {
		baseLogger.Error().Err(err).Msg("Failed to initialize nonce service")
		return 1
	}

	a := &app{
		cipher:    security.NewSymmetricCipher(security.NewConfigStore(cfg.Cipher), security.NewProvider(), &baseLogger),
		validator: validator.New(&baseLogger),
		notices:   notice.NewService(noticeRepo, bus, &baseLogger),
		mail: mail.NewService(mailer, bus, mail.Settings{
			FromName:           cfg.Mail.FromName,
			FromEmail:          replyTo,
			ReplyTo:            replyTo,
			AdministratorEmail: cfg.Mail.AdministratorEmail,
			ContentType:        cfg.Mail.ContentType,
		}, &baseLogger),
		nonces:         nonces,
		dates:          datefmt.New(cfg.DateLayout, ""),
		durableNotices: cfg.Postgres.URL != "",
		out:            os.Stdout,
	}

	// 6. Run the subcommand
	if err := a.dispatch(ctx, fs.Arg(0), fs.Args()[1:]); err != nil {
		var ue *usageError
		if errors.As(err, &ue) {
			fmt.Fprintln(os.Stderr, ue.Error())
			return 2
		}
		logCommandError(&baseLogger, fs.Arg(0), err)
		fmt.Fprintf(os.Stderr, "helper %s: %v\n", fs.Arg(0), err)
		return 1
	}
	return 0
}

func logCommandError(log *zerolog.Logger, cmd string, err error) {
	ev := log.Error().Err(err).Str("command", cmd)
	if kind := security.KindOf(err); kind != 0 {
		ev = ev.Str("kind", kind.String())
	}
	ev.Msg("Command failed")
}

func usage(fs *pflag.FlagSet) func() {
	return func() {
		fmt.Fprint(os.Stderr, `Usage: helper [flags] <command> [args]

Commands:
  encrypt <plaintext>                 encrypt with the configured cipher
  decrypt <ciphertext>                decrypt a value produced by encrypt
  algorithms                          list supported cipher algorithms
  validate [--type t] [--optional] [--min n] [--max n] <value>...
  notice add [--admin] [--type t] [--dismissible] <text>
  notice flush [--admin]              print and clear queued notices as HTML
  mail send <to> <subject> <message>
  mail admin <subject> <message> [to]
  mail notify <to> <subject> <message>
  nonce create <action> <user>
  nonce verify <nonce> <action> <user>
  date iso <date>                     display format -> YYYY-MM-DD
  date display [--time] <date>        YYYY-MM-DD -> display format

Flags:
`)
		fs.PrintDefaults()
	}
}
