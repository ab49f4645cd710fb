package nonce

import (
	"UnaxHelper/internal/shared/logger"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// DefaultPrefix is prepended to the nonce name to build the form field name.
const DefaultPrefix = "_nonce_"

// Verification results. A nonce stays valid for one to two ticks of half
// the lifespan.
const (
	Invalid      = 0
	CurrentTick  = 1
	PreviousTick = 2
)

// Service creates and checks form nonces bound to an action and a user.
type Service struct {
	secret   []byte
	lifespan time.Duration
	now      func() time.Time
	log      zerolog.Logger
}

// NewService creates a nonce service. With an empty secret a random one is
// generated, so nonces do not survive a restart.
func NewService(secret string, lifespan time.Duration, baseLogger *zerolog.Logger) (*Service, error) {
	if lifespan < 2*time.Second {
		return nil, fmt.Errorf("nonce lifespan %s is too short", lifespan)
	}
	log := baseLogger.With().Str("component", "nonce_service").Logger()

	key := []byte(secret)
	if secret == "" {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("could not generate nonce secret: %w", err)
		}
		log.Warn().Msg("NONCE_SECRET not set, using a per-process secret")
	}

	return &Service{secret: key, lifespan: lifespan, now: time.Now, log: log}, nil
}

func (s *Service) tick() int64 {
	half := int64(s.lifespan / 2)
	now := s.now().UnixNano()
	return (now + half - 1) / half
}

func (s *Service) hash(tick int64, action, userID string) string {
	mac := hmac.New(sha256.New, s.secret)
	fmt.Fprintf(mac, "%d|%s|%s", tick, action, userID)
	sum := hex.EncodeToString(mac.Sum(nil))
	return sum[len(sum)-12 : len(sum)-2]
}

// Create returns the nonce for action and userID in the current tick.
func (s *Service) Create(action, userID string) string {
	return s.hash(s.tick(), action, userID)
}

// Verify returns CurrentTick or PreviousTick when nonce is valid, else Invalid.
func (s *Service) Verify(nonce, action, userID string) int {
	if nonce == "" {
		return Invalid
	}
	tick := s.tick()
	if hmac.Equal([]byte(nonce), []byte(s.hash(tick, action, userID))) {
		return CurrentTick
	}
	if hmac.Equal([]byte(nonce), []byte(s.hash(tick-1, action, userID))) {
		return PreviousTick
	}
	return Invalid
}

type fieldOptions struct {
	context string
	prefix  string
}

// FieldOption customizes Field and VerifyRequest.
type FieldOption func(*fieldOptions)

// WithContext binds the nonce to an action other than its name.
func WithContext(context string) FieldOption {
	return func(o *fieldOptions) { o.context = context }
}

// WithPrefix replaces DefaultPrefix.
func WithPrefix(prefix string) FieldOption {
	return func(o *fieldOptions) { o.prefix = prefix }
}

func resolve(name string, opts []FieldOption) fieldOptions {
	o := fieldOptions{context: name, prefix: DefaultPrefix}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Field returns the form field name and value of a nonce for name.
func (s *Service) Field(name, userID string, opts ...FieldOption) (field, value string) {
	o := resolve(name, opts)
	return o.prefix + name, s.Create(o.context, userID)
}

// VerifyRequest checks the nonce field submitted with r. Missing and
// invalid nonces are logged with the nonce name, context and postID.
func (s *Service) VerifyRequest(r *http.Request, name, userID string, postID int, opts ...FieldOption) bool {
	o := resolve(name, opts)
	params := map[string]any{"nonce": name, "context": o.context, "post_id": postID}

	submitted := r.FormValue(o.prefix + name)
	if submitted == "" {
		logger.Log(&s.log, zerolog.ErrorLevel, "Verify nonce", "Nonce missing", params)
		return false
	}

	if s.Verify(submitted, o.context, userID) == Invalid {
		logger.Log(&s.log, zerolog.ErrorLevel, "Verify nonce", "Nonce not valid", params)
		return false
	}
	return true
}
