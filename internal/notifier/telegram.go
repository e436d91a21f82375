package notifier

import (
	"context"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"SignalRelay/internal/model"
)

// MessageHandler is called for every inbound text message.
type MessageHandler func(msg model.RawMessage)

// Telegram is the message transport: it delivers inbound messages to a
// handler and sends outbound texts to chats, the broadcast channel, and
// the operator allow-list. Delivery is fire-and-forget; no confirmation
// is awaited beyond the API call itself.
type Telegram struct {
	bot         *tgbotapi.BotAPI
	broadcastID int64
	operatorIDs []int64
	log         zerolog.Logger
}

// NewTelegram authorizes against the Bot API.
func NewTelegram(token string, broadcastID int64, operatorIDs []int64, log zerolog.Logger) (*Telegram, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram auth: %w", err)
	}
	l := log.With().Str("component", "telegram").Logger()
	l.Info().Str("account", bot.Self.UserName).Msg("authorized")
	return &Telegram{
		bot:         bot,
		broadcastID: broadcastID,
		operatorIDs: operatorIDs,
		log:         l,
	}, nil
}

// SendTo sends one text to a chat.
func (t *Telegram) SendTo(chatID int64, text string) error {
	if _, err := t.bot.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		return fmt.Errorf("telegram send to %d: %w", chatID, err)
	}
	return nil
}

// Broadcast sends one text to the broadcast channel, if configured.
func (t *Telegram) Broadcast(text string) {
	if t.broadcastID == 0 {
		return
	}
	if err := t.SendTo(t.broadcastID, text); err != nil {
		t.log.Error().Err(err).Msg("broadcast failed")
	}
}

// AlertOperators routes an error report to every allow-listed operator.
func (t *Telegram) AlertOperators(text string) {
	for _, id := range t.operatorIDs {
		if err := t.SendTo(id, text); err != nil {
			t.log.Error().Int64("operator", id).Err(err).Msg("operator alert failed")
		}
	}
}

// Listen long-polls for updates and hands every text message to the
// handler on its own goroutine. Blocks until ctx is cancelled.
func (t *Telegram) Listen(ctx context.Context, handle MessageHandler) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := t.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			t.bot.StopReceivingUpdates()
			t.log.Info().Msg("polling stopped")
			return
		case upd, ok := <-updates:
			if !ok {
				return
			}
			if upd.Message == nil || upd.Message.Text == "" {
				continue
			}
			msg := model.RawMessage{
				ID:         uuid.NewString(),
				ChatID:     upd.Message.Chat.ID,
				MessageID:  upd.Message.MessageID,
				Text:       upd.Message.Text,
				ReceivedAt: time.Now(),
			}
			if upd.Message.From != nil {
				msg.UserID = upd.Message.From.ID
			}
			go handle(msg)
		}
	}
}
