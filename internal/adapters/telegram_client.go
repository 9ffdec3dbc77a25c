package adapters

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/chatgpti/webapp-bot/internal/domain"
	"github.com/chatgpti/webapp-bot/pkg/botapi"
)

// TelegramClient implements domain.TelegramClient over the Bot API bindings.
type TelegramClient struct {
	botapi.API
}

func NewTelegramClient(token string) *TelegramClient {
	return &TelegramClient{API: botapi.NewAPI(token)}
}

func (c *TelegramClient) SendMessage(ctx context.Context, chatID int64, message string) error {
	_, err := c.API.SendMessage(ctx, message, chatID, nil)
	return err
}

func (c *TelegramClient) SendMessageHTML(ctx context.Context, chatID int64, message string, buttons ...domain.KeyboardButton) (*domain.TelegramMessage, error) {
	res, err := c.API.SendMessage(ctx, message, chatID, htmlOptions(buttons))
	if err != nil {
		return nil, err
	}
	return &domain.TelegramMessage{
		ID:   res.Result.ID,
		Text: res.Result.Text,
	}, nil
}

func (c *TelegramClient) EditMessageHTML(ctx context.Context, chatID int64, messageID int, message string, buttons ...domain.KeyboardButton) error {
	_, err := c.API.EditMessageText(ctx, message, chatID, messageID, htmlOptions(buttons))
	return err
}

func (c *TelegramClient) DeleteMessage(ctx context.Context, chatID int64, messageID int) error {
	_, err := c.API.DeleteMessage(ctx, chatID, messageID)
	return err
}

func (c *TelegramClient) AnswerCallback(ctx context.Context, callbackID, text string, showAlert bool) error {
	_, err := c.API.AnswerCallbackQuery(ctx, callbackID, &botapi.CallbackQueryOptions{
		Text:      text,
		ShowAlert: showAlert,
	})
	return err
}

func (c *TelegramClient) AnswerWebAppQuery(ctx context.Context, queryID, text string) error {
	result := botapi.NewArticleResult(uuid.NewString(), "ChatGPTi", text)
	_, err := c.API.AnswerWebAppQuery(ctx, queryID, result)
	return err
}

func (c *TelegramClient) GetChatMember(ctx context.Context, channel domain.Channel, userID int64) (domain.MembershipStatus, error) {
	res, err := c.API.GetChatMember(ctx, string(channel), userID)
	if err != nil {
		return "", fmt.Errorf("get chat member %s: %w", channel, err)
	}
	return domain.MembershipStatus(res.Result.Status), nil
}

func (c *TelegramClient) SetBotCommands(ctx context.Context, commands []domain.BotCommand) error {
	var cmds []botapi.BotCommand
	for _, cmd := range commands {
		cmds = append(cmds, botapi.BotCommand{
			Command:     cmd.Command,
			Description: cmd.Description,
		})
	}
	_, err := c.API.SetMyCommands(ctx, cmds...)
	return err
}

func htmlOptions(buttons []domain.KeyboardButton) *botapi.MessageOptions {
	opts := &botapi.MessageOptions{
		ParseMode:          botapi.HTML,
		LinkPreviewOptions: &botapi.LinkPreviewOptions{IsDisabled: true},
	}
	if len(buttons) == 0 {
		return opts
	}
	var rows [][]botapi.InlineKeyboardButton
	for _, b := range buttons {
		btn := botapi.InlineKeyboardButton{
			Text:         b.Text,
			URL:          b.URL,
			CallbackData: b.CallbackData,
		}
		if b.WebAppURL != "" {
			btn.WebApp = &botapi.WebAppInfo{URL: b.WebAppURL}
		}
		rows = append(rows, []botapi.InlineKeyboardButton{btn})
	}
	opts.ReplyMarkup = &botapi.InlineKeyboardMarkup{InlineKeyboard: rows}
	return opts
}
