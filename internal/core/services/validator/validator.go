package validator

import (
	"UnaxHelper/internal/core/domain"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"
)

var (
	emailRegex = regexp.MustCompile(
		"^[A-Za-z0-9!#$%&'*+/=?^_`{|}~-]+(\\.[A-Za-z0-9!#$%&'*+/=?^_`{|}~-]+)*" +
			`@([A-Za-z0-9]([A-Za-z0-9-]{0,61}[A-Za-z0-9])?\.)+[A-Za-z][A-Za-z0-9]{0,62}$`)
	telRejectRegex = regexp.MustCompile(`[^0-9+\s]`)
)

const (
	maxEmailLength = 254
	maxLocalLength = 64
)

// typeRule checks one (trimmed) value and returns a failure message, or "" when it passes.
type typeRule func(value string) string

// rules has an entry for every domain.FieldType; TestRulesCoverEveryFieldType keeps it that way.
var rules = map[domain.FieldType]typeRule{
	domain.FieldText:  func(string) string { return "" },
	domain.FieldEmail: checkEmail,
	domain.FieldTel:   checkTel,
}

func checkEmail(value string) string {
	if len(value) > maxEmailLength || !emailRegex.MatchString(value) {
		return domain.MsgInvalidEmail
	}
	if at := strings.LastIndexByte(value, '@'); at > maxLocalLength {
		return domain.MsgInvalidEmail
	}
	return ""
}

func checkTel(value string) string {
	if telRejectRegex.MatchString(value) {
		return domain.MsgInvalidPhone
	}
	return ""
}

type options struct {
	minLength int
	maxLength int
}

// Option sets an optional length bound. Bounds of zero or less are ignored.
type Option func(*options)

// WithMinLength fails values shorter than n characters. Length is counted
// in runes, so "héllo" has length 5, not 6.
func WithMinLength(n int) Option {
	return func(o *options) { o.minLength = n }
}

// WithMaxLength fails values longer than n characters (runes, not bytes).
func WithMaxLength(n int) Option {
	return func(o *options) { o.maxLength = n }
}

// Validator checks submitted form values.
type Validator struct {
	log zerolog.Logger
}

// New creates a Validator.
func New(baseLogger *zerolog.Logger) *Validator {
	return &Validator{log: baseLogger.With().Str("component", "field_validator").Logger()}
}

// Validate checks one form value. Checks run in order: required, type,
// then length; the first failure is returned. Scalars are trimmed first and
// the trimmed value is what a successful result carries. Lists are neither
// trimmed nor length-checked; the type rule applies to each element.
func (v *Validator) Validate(value domain.FieldValue, fieldType domain.FieldType, required bool, opts ...Option) domain.ValidationResult {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	if !value.IsList() {
		value = domain.Scalar(strings.TrimSpace(value.String()))
	}

	if required && value.IsEmpty() {
		return v.invalid(fieldType, domain.MsgMandatoryField)
	}

	rule, ok := rules[fieldType]
	if !ok {
		v.log.Warn().Str("type", string(fieldType)).Msg("Unknown field type, validating as text")
		rule = rules[domain.FieldText]
	}
	for _, s := range value.Values() {
		if msg := rule(s); msg != "" {
			return v.invalid(fieldType, msg)
		}
	}

	if !value.IsList() {
		n := utf8.RuneCountInString(value.String())
		if o.minLength > 0 && n < o.minLength {
			return v.invalid(fieldType, fmt.Sprintf("Field length minimum %d.", o.minLength))
		}
		if o.maxLength > 0 && n > o.maxLength {
			return v.invalid(fieldType, fmt.Sprintf("Field length maximum %d.", o.maxLength))
		}
	}

	return domain.Valid(value)
}

// ValidateString is Validate for a single scalar value.
func (v *Validator) ValidateString(value string, fieldType domain.FieldType, required bool, opts ...Option) domain.ValidationResult {
	return v.Validate(domain.Scalar(value), fieldType, required, opts...)
}

func (v *Validator) invalid(fieldType domain.FieldType, msg string) domain.ValidationResult {
	v.log.Debug().Str("type", string(fieldType)).Str("reason", msg).Msg("Field rejected")
	return domain.Invalid(msg)
}
