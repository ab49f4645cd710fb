package main

import (
	"UnaxHelper/internal/adapters/security"
	"UnaxHelper/internal/core/domain"
	"UnaxHelper/internal/core/services/nonce"
	"UnaxHelper/internal/core/services/validator"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// errNoticeStore is returned by the notice commands when no database is
// configured; an in-memory queue would be lost when the command exits.
var errNoticeStore = errors.New("notices need a database: set DATABASE_URL or --postgres-url")

type usageError struct {
	msg string
}

func (e *usageError) Error() string { return "usage: helper " + e.msg }

func usagef(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

func (a *app) dispatch(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "encrypt":
		return a.encrypt(args)
	case "decrypt":
		return a.decrypt(args)
	case "algorithms":
		fmt.Fprintln(a.out, strings.Join(security.Algorithms(), "\n"))
		return nil
	case "validate":
		return a.validate(args)
	case "notice":
		return a.notice(ctx, args)
	case "mail":
		return a.sendMail(ctx, args)
	case "nonce":
		return a.nonce(args)
	case "date":
		return a.date(args)
	default:
		return usagef("unknown command %q", cmd)
	}
}

func (a *app) encrypt(args []string) error {
	if len(args) != 1 {
		return usagef("encrypt <plaintext>")
	}
	out, err := a.cipher.Encrypt(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, out)
	return nil
}

func (a *app) decrypt(args []string) error {
	if len(args) != 1 {
		return usagef("decrypt <ciphertext>")
	}
	out, err := a.cipher.Decrypt(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, out)
	return nil
}

// validate prints the ValidationResult as JSON. Several values are validated
// as one multi-valued field. A failed validation is not a command error.
func (a *app) validate(args []string) error {
	fs := pflag.NewFlagSet("validate", pflag.ContinueOnError)
	fieldType := fs.String("type", string(domain.FieldText), "text, email or tel")
	optional := fs.Bool("optional", false, "allow an empty value")
	minLength := fs.Int("min", 0, "minimum length")
	maxLength := fs.Int("max", 0, "maximum length")
	if err := fs.Parse(args); err != nil {
		return usagef("validate: %v", err)
	}

	ft, ok := domain.ParseFieldType(*fieldType)
	if !ok {
		return usagef("validate: unknown --type %q", *fieldType)
	}

	value := domain.Scalar("")
	switch fs.NArg() {
	case 0:
	case 1:
		value = domain.Scalar(fs.Arg(0))
	default:
		value = domain.List(fs.Args()...)
	}

	res := a.validator.Validate(value, ft, !*optional,
		validator.WithMinLength(*minLength), validator.WithMaxLength(*maxLength))

	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

func (a *app) notice(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usagef("notice add|flush ...")
	}
	if !a.durableNotices {
		return errNoticeStore
	}
	fs := pflag.NewFlagSet("notice", pflag.ContinueOnError)
	admin := fs.Bool("admin", false, "admin screen notice")
	noticeType := fs.String("type", "", "error, warning, info or success")
	dismissible := fs.Bool("dismissible", true, "admin notice can be dismissed")
	if err := fs.Parse(args[1:]); err != nil {
		return usagef("notice: %v", err)
	}

	switch args[0] {
	case "add":
		if fs.NArg() != 1 {
			return usagef("notice add [--admin] [--type t] <text>")
		}
		if *admin {
			return a.notices.AddAdminNotice(ctx, fs.Arg(0), domain.NoticeType(*noticeType), *dismissible)
		}
		return a.notices.AddNotice(ctx, fs.Arg(0), domain.NoticeType(*noticeType))
	case "flush":
		render := a.notices.Notices
		if *admin {
			render = a.notices.AdminNotices
		}
		out, err := render(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(a.out, out)
		return nil
	default:
		return usagef("unknown notice command %q", args[0])
	}
}

func (a *app) sendMail(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usagef("mail send|admin|notify ...")
	}
	rest := args[1:]

	switch args[0] {
	case "send":
		if len(rest) != 3 {
			return usagef("mail send <to> <subject> <message>")
		}
		return a.mail.SendEmail(ctx, rest[0], rest[1], rest[2])
	case "admin":
		if len(rest) != 2 && len(rest) != 3 {
			return usagef("mail admin <subject> <message> [to]")
		}
		to := ""
		if len(rest) == 3 {
			to = rest[2]
		}
		return a.mail.AdminNotification(ctx, rest[0], rest[1], to)
	case "notify":
		if len(rest) != 3 {
			return usagef("mail notify <to> <subject> <message>")
		}
		return a.mail.Notification(ctx, rest[0], rest[1], rest[2])
	default:
		return usagef("unknown mail command %q", args[0])
	}
}

func (a *app) nonce(args []string) error {
	switch {
	case len(args) == 3 && args[0] == "create":
		fmt.Fprintln(a.out, a.nonces.Create(args[1], args[2]))
		return nil
	case len(args) == 4 && args[0] == "verify":
		result := a.nonces.Verify(args[1], args[2], args[3])
		if result == nonce.Invalid {
			return fmt.Errorf("nonce not valid")
		}
		fmt.Fprintln(a.out, result)
		return nil
	default:
		return usagef("nonce create <action> <user> | nonce verify <nonce> <action> <user>")
	}
}

func (a *app) date(args []string) error {
	if len(args) == 0 {
		return usagef("date iso|display ...")
	}
	fs := pflag.NewFlagSet("date", pflag.ContinueOnError)
	withTime := fs.Bool("time", false, "append the time")
	if err := fs.Parse(args[1:]); err != nil || fs.NArg() != 1 {
		return usagef("date iso|display [--time] <date>")
	}

	var out string
	switch args[0] {
	case "iso":
		out = a.dates.ToISO(fs.Arg(0))
	case "display":
		out = a.dates.Display(fs.Arg(0), *withTime)
	default:
		return usagef("unknown date command %q", args[0])
	}
	if out == "" {
		return fmt.Errorf("could not parse date %q", fs.Arg(0))
	}
	fmt.Fprintln(a.out, out)
	return nil
}
