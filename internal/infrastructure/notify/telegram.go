// Package notify canales de aviso al restaurante.
package notify

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/jhoicas/afrispot-api/internal/application/ports"
)

var _ ports.MessageSender = (*TelegramSender)(nil)

// TelegramSender envía los avisos a un chat de Telegram del restaurante.
type TelegramSender struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegramSender autentica el bot con token.
func NewTelegramSender(token string, chatID int64) (*TelegramSender, error) {
	if token == "" || chatID == 0 {
		return nil, fmt.Errorf("telegram: token y chat_id son requeridos")
	}
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram: %w", err)
	}
	return &TelegramSender{bot: bot, chatID: chatID}, nil
}

// Name implementa ports.MessageSender.
func (s *TelegramSender) Name() string { return "telegram" }

// Send implementa ports.MessageSender. El asunto va en negrita como primera línea.
func (s *TelegramSender) Send(ctx context.Context, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := tgbotapi.NewMessage(s.chatID, TelegramText(subject, body))
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := s.bot.Send(msg); err != nil {
		return fmt.Errorf("telegram: enviar: %w", err)
	}
	return nil
}

// TelegramText compone el texto HTML del mensaje.
func TelegramText(subject, body string) string {
	return "<b>" + escapeHTML(subject) + "</b>\n\n" + escapeHTML(body)
}

func escapeHTML(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch r {
		case '<':
			out = append(out, []rune("&lt;")...)
		case '>':
			out = append(out, []rune("&gt;")...)
		case '&':
			out = append(out, []rune("&amp;")...)
		default:
			out = append(out, r)
		}
	}
	return string(out)
}
