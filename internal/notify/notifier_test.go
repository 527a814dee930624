package notify

import (
	"bytes"
	"errors"
	"io"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsoleNotifier(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(io.Discard)
	n := NewConsoleNotifier(&buf, &logger)

	n.Success("Booking accepted")
	n.Error("Failed to decline booking")

	out := buf.String()
	assert.Contains(t, out, "✅ Booking accepted\n")
	assert.Contains(t, out, "❌ Failed to decline booking\n")
}

type fakeSender struct {
	sent []tgbotapi.Chattable
	err  error
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.sent = append(f.sent, c)
	return tgbotapi.Message{}, f.err
}

func TestTelegramNotifier(t *testing.T) {
	logger := zerolog.New(io.Discard)

	t.Run("SendsToConfiguredChat", func(t *testing.T) {
		sender := &fakeSender{}
		n := NewTelegramNotifier(sender, 42, &logger)

		n.Success("Job completed")

		require.Len(t, sender.sent, 1)
		msg, ok := sender.sent[0].(tgbotapi.MessageConfig)
		require.True(t, ok)
		assert.Equal(t, int64(42), msg.ChatID)
		assert.Equal(t, "✅ Job completed", msg.Text)
	})

	t.Run("SendFailureIsSwallowed", func(t *testing.T) {
		sender := &fakeSender{err: errors.New("blocked by user")}
		n := NewTelegramNotifier(sender, 42, &logger)

		// must not panic or propagate
		n.Error("Failed to accept booking")
		assert.Len(t, sender.sent, 1)
	})
}

func TestMultiFansOut(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(io.Discard)
	sender := &fakeSender{}

	m := Multi{
		NewConsoleNotifier(&buf, &logger),
		NewTelegramNotifier(sender, 7, &logger),
	}

	m.Success("Price proposal sent")
	m.Error("No booking selected")

	assert.Contains(t, buf.String(), "✅ Price proposal sent")
	assert.Contains(t, buf.String(), "❌ No booking selected")
	assert.Len(t, sender.sent, 2)
}
