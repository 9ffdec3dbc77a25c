package domain

import (
	"context"

	"github.com/chatgpti/webapp-bot/pkg/tgrouter"
)

// TelegramClient is the messaging capability the access gate depends on.
type TelegramClient interface {
	SendMessage(ctx context.Context, chatID int64, message string) error
	SendMessageHTML(ctx context.Context, chatID int64, message string, buttons ...KeyboardButton) (*TelegramMessage, error)
	EditMessageHTML(ctx context.Context, chatID int64, messageID int, message string, buttons ...KeyboardButton) error
	DeleteMessage(ctx context.Context, chatID int64, messageID int) error
	AnswerCallback(ctx context.Context, callbackID, text string, showAlert bool) error
	AnswerWebAppQuery(ctx context.Context, queryID, text string) error
	GetChatMember(ctx context.Context, channel Channel, userID int64) (MembershipStatus, error)
	SetBotCommands(ctx context.Context, commands []BotCommand) error
}

// TelegramRoute is the route type mounted onto the bot server.
type TelegramRoute interface {
	tgrouter.Route
}

// TelegramMessage is a sent message as the gate sees it.
type TelegramMessage struct {
	ID   int
	Text string
}

// KeyboardButton is one inline keyboard button. Exactly one of URL,
// CallbackData and WebAppURL must be set.
type KeyboardButton struct {
	Text         string
	URL          string
	CallbackData string
	WebAppURL    string
}

type BotCommand struct {
	Command     string
	Description string
}
