package mail

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSendDisabledReturnsSentinel(t *testing.T) {
	mailer, err := NewSMTPMailer(SMTPSettings{Enabled: false})
	require.NoError(t, err)

	err = mailer.Send(context.Background(), Message{To: []string{"a@example.com"}})
	require.ErrorIs(t, err, ErrSMTPDisabled)
}

func TestNewSMTPMailerValidatesConfig(t *testing.T) {
	_, err := NewSMTPMailer(SMTPSettings{Enabled: true})
	require.Error(t, err)

	_, err = NewSMTPMailer(SMTPSettings{Enabled: true, Host: "smtp.example.com"})
	require.Error(t, err)
}

func TestFormatMessageHeaders(t *testing.T) {
	msg := formatMessage("noreply@example.com", []string{"a@example.com"}, "You're invited", "body")

	require.True(t, strings.HasPrefix(msg, "From: noreply@example.com\r\n"))
	require.Contains(t, msg, "Subject: You're invited\r\n")
	require.True(t, strings.HasSuffix(msg, "\r\nbody"))
}

func TestEscapeHeaderStripsNewlines(t *testing.T) {
	require.Equal(t, "a b c", escapeHeader("a\rb\nc"))
}

func TestUniqueAddresses(t *testing.T) {
	out := uniqueAddresses([]string{" a@example.com", "a@example.com", "", "b@example.com"})
	require.Equal(t, []string{"a@example.com", "b@example.com"}, out)
}
