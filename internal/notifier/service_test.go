package notifier

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"phonechecker/platform/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 4, 2, 9, 30, 0, 0, time.UTC)

func newTestService(t *testing.T, console *bytes.Buffer, audit *bytes.Buffer) (*Service, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data", "telegram_messages.json")
	svc := NewService(
		NewFileStore(path),
		console,
		logger.NewWriter(audit, "production"),
		nil,
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(func() string { return "msg-1" }),
	)
	return svc, path
}

func readMessages(t *testing.T, path string) []Message {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var out []Message
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var m Message
		require.NoError(t, json.Unmarshal(sc.Bytes(), &m), sc.Text())
		out = append(out, m)
	}
	require.NoError(t, sc.Err())
	return out
}

func TestSendActivationCode(t *testing.T) {
	var console, audit bytes.Buffer
	svc, path := newTestService(t, &console, &audit)

	res := svc.SendActivationCode(context.Background(), "@alice", "123456", 0)

	require.True(t, res.Success, res.Error)
	assert.Equal(t, "msg-1", res.MessageID)
	assert.Equal(t, "@alice", res.ChatID)
	require.NotNil(t, res.SentAt)

	msgs := readMessages(t, path)
	require.Len(t, msgs, 1)
	msg := msgs[0]
	assert.Equal(t, KindActivation, msg.Type)
	assert.Equal(t, "123456", msg.Code)
	assert.Equal(t, "@alice", msg.ChatID)
	assert.Contains(t, msg.Text, "123456")
	assert.Contains(t, msg.Text, "30")
	require.NotNil(t, msg.ExpiresAt)
	assert.True(t, msg.ExpiresAt.Equal(fixedNow.Add(DefaultActivationTTL)))
	assert.True(t, msg.Timestamp.Equal(fixedNow))

	out := console.String()
	assert.Contains(t, out, "📱 Telegram Message Sent to @alice:")
	assert.Contains(t, out, "🔐 Activation Code: 123456")
	assert.Contains(t, out, "⏰ Expires in: 30 seconds")
	assert.Contains(t, out, "📝 Full message logged to: "+path)

	assert.Contains(t, audit.String(), "Sending activation code to @alice: 123456")
}

func TestSendActivationCode_CustomExpiry(t *testing.T) {
	var console, audit bytes.Buffer
	svc, path := newTestService(t, &console, &audit)

	res := svc.SendActivationCode(context.Background(), "bob", "999", 2*time.Minute)

	require.True(t, res.Success)
	msgs := readMessages(t, path)
	require.Len(t, msgs, 1)
	assert.True(t, msgs[0].ExpiresAt.Equal(fixedNow.Add(2*time.Minute)))
	assert.Contains(t, console.String(), "Expires in: 120 seconds")
}

func TestSendNotification(t *testing.T) {
	var console, audit bytes.Buffer
	svc, path := newTestService(t, &console, &audit)

	res := svc.SendNotification(context.Background(), "alice", "Welcome", "Hello there")

	require.True(t, res.Success, res.Error)
	msgs := readMessages(t, path)
	require.Len(t, msgs, 1)
	msg := msgs[0]
	assert.Equal(t, KindNotification, msg.Type)
	assert.Nil(t, msg.ExpiresAt)
	assert.Empty(t, msg.Code)
	assert.Equal(t, "📢 Welcome\n\nHello there\n\n🌐 فاحص أرقام الهواتف\n⏰ 2026-04-02 09:30:00", msg.Text)
	assert.Contains(t, console.String(), "📢 Notification Sent to @alice: Welcome")
}

func TestSendAppendsOneLinePerMessage(t *testing.T) {
	var console, audit bytes.Buffer
	svc, path := newTestService(t, &console, &audit)
	ctx := context.Background()

	require.True(t, svc.SendActivationCode(ctx, "alice", "1", 0).Success)
	require.True(t, svc.SendNotification(ctx, "alice", "t", "b").Success)
	require.True(t, svc.SendActivationCode(ctx, "carol", "2", 0).Success)

	msgs := readMessages(t, path)
	require.Len(t, msgs, 3)
	assert.Equal(t, "1", msgs[0].Code)
	assert.Equal(t, KindNotification, msgs[1].Type)
	assert.Equal(t, "@carol", msgs[2].ChatID)
}

func TestSend_StoreFailureIsReported(t *testing.T) {
	dir := t.TempDir()
	var console, audit bytes.Buffer
	svc := NewService(NewFileStore(dir), &console, logger.NewWriter(&audit, "production"), nil)

	res := svc.SendActivationCode(context.Background(), "alice", "123456", 0)

	assert.False(t, res.Success)
	assert.NotEmpty(t, res.Error)
	assert.Empty(t, res.MessageID)
	assert.Empty(t, console.String())
	assert.Contains(t, audit.String(), "failed to send activation to @alice")
}

func TestSend_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		send func(*Service) SendResult
	}{
		{name: "empty handle", send: func(s *Service) SendResult {
			return s.SendActivationCode(context.Background(), "  @ ", "123", 0)
		}},
		{name: "handle with spaces", send: func(s *Service) SendResult {
			return s.SendNotification(context.Background(), "bad handle", "title", "body")
		}},
		{name: "empty code", send: func(s *Service) SendResult {
			return s.SendActivationCode(context.Background(), "alice", " ", 0)
		}},
		{name: "empty title", send: func(s *Service) SendResult {
			return s.SendNotification(context.Background(), "alice", "", "body")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var console, audit bytes.Buffer
			svc, path := newTestService(t, &console, &audit)

			res := tt.send(svc)

			assert.False(t, res.Success)
			assert.NotEmpty(t, res.Error)
			_, err := os.Stat(path)
			assert.True(t, os.IsNotExist(err))
		})
	}
}

func TestRenderActivation_Bilingual(t *testing.T) {
	text, err := renderActivation(activationData{Code: "4242", ExpiresIn: 30})
	require.NoError(t, err)

	assert.Contains(t, text, "Activation code: 4242")
	assert.Contains(t, text, "رمز التفعيل")
	assert.Contains(t, text, "Valid for 30 seconds only")
	assert.NotContains(t, text, "\n\n\n")
}
