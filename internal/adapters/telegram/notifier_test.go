package telegram

import (
	"UnaxHelper/internal/core/domain"
	"UnaxHelper/internal/core/ports"
	"context"
	"errors"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

type MockBot struct {
	mock.Mock
}

func (m *MockBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	args := m.Called(c)
	return tgbotapi.Message{}, args.Error(0)
}

// fakeBus runs handlers synchronously so tests need no waiting.
type fakeBus struct {
	handlers map[string][]ports.EventHandler
}

func (b *fakeBus) Publish(ctx context.Context, topic string, data interface{}) error {
	for _, h := range b.handlers[topic] {
		if err := h(ctx, ports.Event{Topic: topic, Data: data}); err != nil {
			return err
		}
	}
	return nil
}

func (b *fakeBus) Subscribe(topic string, handler ports.EventHandler) {
	if b.handlers == nil {
		b.handlers = make(map[string][]ports.EventHandler)
	}
	b.handlers[topic] = append(b.handlers[topic], handler)
}

func textIs(want string) interface{} {
	return mock.MatchedBy(func(c tgbotapi.Chattable) bool {
		msg, ok := c.(tgbotapi.MessageConfig)
		return ok && msg.ChatID == -100 && msg.Text == want
	})
}

// --- Tests ---

func TestAlertNotifier_Alert(t *testing.T) {
	nopLogger := zerolog.Nop()
	bot := new(MockBot)
	n := NewAlertNotifier(bot, -100, &nopLogger)

	bot.On("Send", textIs("hello admin")).Return(nil).Once()
	require.NoError(t, n.Alert(context.Background(), "hello admin"))

	bot.On("Send", textIs("boom")).Return(errors.New("telegram down")).Once()
	assert.Error(t, n.Alert(context.Background(), "boom"))

	bot.AssertExpectations(t)
}

func TestAlertNotifier_Subscriptions(t *testing.T) {
	nopLogger := zerolog.Nop()
	bot := new(MockBot)
	bus := &fakeBus{}
	n := NewAlertNotifier(bot, -100, &nopLogger)
	n.Subscribe(bus)
	ctx := context.Background()

	bot.On("Send", textIs("Sending email to a@example.com failed: Welcome (relay down)")).Return(nil).Once()
	bot.On("Send", textIs("[ERROR] Disk full")).Return(nil).Once()

	require.NoError(t, bus.Publish(ctx, ports.TopicMailFailed, ports.MailFailedEvent{
		To: []string{"a@example.com"}, Subject: "Welcome", Err: errors.New("relay down"),
	}))
	require.NoError(t, bus.Publish(ctx, ports.TopicNoticeAdded, domain.Notice{Text: "Disk full", Type: domain.NoticeError}))
	// Not forwarded
	require.NoError(t, bus.Publish(ctx, ports.TopicNoticeAdded, domain.Notice{Text: "Saved", Type: domain.NoticeSuccess}))
	require.NoError(t, bus.Publish(ctx, ports.TopicNoticeAdded, "not a notice"))

	bot.AssertExpectations(t)
	bot.AssertNumberOfCalls(t, "Send", 2)
}
