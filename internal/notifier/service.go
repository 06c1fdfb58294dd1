// Package notifier simulates a chat bot: messages are rendered, appended to a
// local JSON-lines log and echoed to the console instead of being delivered.
package notifier

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"phonechecker/platform/logger"
	"phonechecker/platform/sanitize"
	"phonechecker/platform/validator"

	"github.com/google/uuid"
)

// DefaultActivationTTL is how long an activation code stays valid.
const DefaultActivationTTL = 30 * time.Second

const notificationTimeLayout = "2006-01-02 15:04:05"

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator overrides message ID generation.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

// Service renders and records simulated messages.
type Service struct {
	store   MessageStore
	console io.Writer
	audit   *logger.Logger
	val     *validator.Validator
	now     func() time.Time
	newID   func() string
}

// NewService creates a notifier. console receives the human-readable summary
// and audit receives one line per attempt.
func NewService(store MessageStore, console io.Writer, audit *logger.Logger, val *validator.Validator, opts ...Option) *Service {
	if console == nil {
		console = io.Discard
	}
	if audit == nil {
		audit = logger.Discard()
	}
	if val == nil {
		val = validator.New()
	}

	s := &Service{
		store:   store,
		console: console,
		audit:   audit,
		val:     val,
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SendActivationCode records an activation code message for handle.
// A non-positive expiresIn falls back to DefaultActivationTTL.
func (s *Service) SendActivationCode(ctx context.Context, handle, code string, expiresIn time.Duration) SendResult {
	if expiresIn <= 0 {
		expiresIn = DefaultActivationTTL
	}

	in := activationInput{Handle: normalizeHandle(handle), Code: strings.TrimSpace(code), ExpiresIn: expiresIn}
	chatID := chatIDFor(in.Handle)
	if err := s.val.Struct(in); err != nil {
		return s.fail(ctx, KindActivation, chatID, fmt.Errorf("invalid activation request: %v", validator.FieldErrors(err)))
	}

	s.audit.WithContext(ctx).Info(fmt.Sprintf("Sending activation code to %s: %s", chatID, in.Code))

	seconds := int64(expiresIn / time.Second)
	text, err := renderActivation(activationData{Code: in.Code, ExpiresIn: seconds})
	if err != nil {
		return s.fail(ctx, KindActivation, chatID, err)
	}

	now := s.now()
	expiresAt := now.Add(expiresIn)
	msg := Message{
		ID:        s.newID(),
		ChatID:    chatID,
		Text:      text,
		Timestamp: now,
		ExpiresAt: &expiresAt,
		Type:      KindActivation,
		Code:      in.Code,
	}
	if err := s.store.Append(msg); err != nil {
		return s.fail(ctx, KindActivation, chatID, err)
	}

	fmt.Fprintf(s.console, "📱 Telegram Message Sent to %s:\n", chatID)
	fmt.Fprintf(s.console, "🔐 Activation Code: %s\n", in.Code)
	fmt.Fprintf(s.console, "⏰ Expires in: %d seconds\n", seconds)
	fmt.Fprintf(s.console, "📝 Full message logged to: %s\n", s.store.Path())

	s.audit.WithContext(ctx).MessageSent(string(KindActivation), chatID, "code "+in.Code)
	return s.succeed(msg)
}

// SendNotification records a titled notification message for handle.
// Markup is stripped from title and body.
func (s *Service) SendNotification(ctx context.Context, handle, title, body string) SendResult {
	in := notificationInput{Handle: normalizeHandle(handle), Title: sanitize.Line(title), Body: sanitize.Text(body)}
	chatID := chatIDFor(in.Handle)
	if err := s.val.Struct(in); err != nil {
		return s.fail(ctx, KindNotification, chatID, fmt.Errorf("invalid notification request: %v", validator.FieldErrors(err)))
	}

	now := s.now()
	text, err := renderNotification(notificationData{
		Title:  in.Title,
		Body:   in.Body,
		SentAt: now.Format(notificationTimeLayout),
	})
	if err != nil {
		return s.fail(ctx, KindNotification, chatID, err)
	}

	msg := Message{
		ID:        s.newID(),
		ChatID:    chatID,
		Text:      text,
		Timestamp: now,
		Type:      KindNotification,
	}
	if err := s.store.Append(msg); err != nil {
		return s.fail(ctx, KindNotification, chatID, err)
	}

	fmt.Fprintf(s.console, "📢 Notification Sent to %s: %s\n", chatID, in.Title)

	s.audit.WithContext(ctx).MessageSent(string(KindNotification), chatID, in.Title)
	return s.succeed(msg)
}

func (s *Service) succeed(msg Message) SendResult {
	sentAt := s.now()
	return SendResult{
		Success:   true,
		MessageID: msg.ID,
		ChatID:    msg.ChatID,
		SentAt:    &sentAt,
	}
}

func (s *Service) fail(ctx context.Context, kind Kind, chatID string, err error) SendResult {
	s.audit.WithContext(ctx).MessageFailed(string(kind), chatID, err)
	return SendResult{
		Success: false,
		ChatID:  chatID,
		Error:   err.Error(),
	}
}

func normalizeHandle(handle string) string {
	return strings.TrimPrefix(strings.TrimSpace(handle), "@")
}

func chatIDFor(handle string) string {
	return "@" + handle
}
