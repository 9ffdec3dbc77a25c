package log

import (
	"context"

	"github.com/chatgpti/webapp-bot/pkg/botapi"
)

// TelegramWriter ships log lines to a Telegram chat, so that error-level
// output can be mirrored into an operator chat via io.MultiWriter.
type TelegramWriter struct {
	api    botapi.API
	chatID int64
}

func NewTelegramWriter(token string, chatID int64) *TelegramWriter {
	return &TelegramWriter{
		api:    botapi.NewAPI(token),
		chatID: chatID,
	}
}

func (w TelegramWriter) Write(p []byte) (n int, err error) {
	_, err = w.api.SendMessage(context.Background(), string(p), w.chatID, nil)
	return len(p), err
}
