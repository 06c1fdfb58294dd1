package notifier

import "time"

// Kind distinguishes the two message templates.
type Kind string

const (
	KindActivation   Kind = "activation"
	KindNotification Kind = "notification"
)

// Message is one line of the message log.
type Message struct {
	ID        string     `json:"id"`
	ChatID    string     `json:"chat_id"`
	Text      string     `json:"text"`
	Timestamp time.Time  `json:"timestamp"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	Type      Kind       `json:"type"`
	Code      string     `json:"code,omitempty"`
}

// SendResult reports what happened to a simulated send.
type SendResult struct {
	Success   bool       `json:"success"`
	MessageID string     `json:"message_id,omitempty"`
	ChatID    string     `json:"chat_id,omitempty"`
	SentAt    *time.Time `json:"sent_at,omitempty"`
	Error     string     `json:"error,omitempty"`
}

type activationInput struct {
	Handle    string        `validate:"required,max=64,telegram_handle"`
	Code      string        `validate:"required,max=32"`
	ExpiresIn time.Duration `validate:"gt=0s"`
}

type notificationInput struct {
	Handle string `validate:"required,max=64,telegram_handle"`
	Title  string `validate:"required,max=255"`
	Body   string `validate:"max=4096"`
}
