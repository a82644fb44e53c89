package mail

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompose_StripsHeaderInjection(t *testing.T) {
	t.Parallel()

	msg := string(Compose("site@example.com", "me@example.com", Contact{
		Name:    "Eve\r\nBcc: victim@example.com",
		Email:   "eve@example.com\nX-Evil: 1",
		Subject: "Hello",
		Message: "line one\nline two",
	}))

	headers, body, ok := strings.Cut(msg, "\r\n\r\n")
	require.True(t, ok)
	assert.NotContains(t, headers, "\r\nBcc:")
	assert.NotContains(t, headers, "\nX-Evil")
	assert.Contains(t, headers, "Subject: Portfolio Contact: Eve  Bcc: victim@example.com - Hello")
	assert.Contains(t, headers, "To: me@example.com")
	assert.Contains(t, body, "line one\nline two")
}

func TestSMTPSender_Send(t *testing.T) {
	t.Parallel()

	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte
	sender := NewSMTPSender(Config{Host: "smtp.example.com", Port: 587, User: "site@example.com", Password: "pw", To: "me@example.com"}).
		WithSendFunc(func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
			gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
			return nil
		})

	err := sender.Send(context.Background(), Contact{Name: "Ada", Email: "ada@example.com", Subject: "Hi", Message: "Hello"})
	require.NoError(t, err)
	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.Equal(t, "site@example.com", gotFrom)
	assert.Equal(t, []string{"me@example.com"}, gotTo)
	assert.Contains(t, string(gotMsg), "Reply-To: ada@example.com")
}

func TestSMTPSender_Errors(t *testing.T) {
	t.Parallel()

	unconfigured := NewSMTPSender(Config{Host: "smtp.example.com", Port: 587})
	assert.ErrorIs(t, unconfigured.Send(context.Background(), Contact{}), ErrNotConfigured)

	boom := errors.New("relay down")
	failing := NewSMTPSender(Config{Host: "h", Port: 25, User: "u", Password: "p", To: "t"}).
		WithSendFunc(func(string, smtp.Auth, string, []string, []byte) error { return boom })
	assert.ErrorIs(t, failing.Send(context.Background(), Contact{}), boom)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, failing.Send(ctx, Contact{}), context.Canceled)

	assert.ErrorIs(t, Discard{}.Send(context.Background(), Contact{}), ErrNotConfigured)
}
