// Package botapi is a thin wrapper around the Telegram Bot API methods
// this bot actually calls. Every method takes a context and returns the
// raw API response envelope next to the transport error.
package botapi

import (
	"context"
	"fmt"
)

// API is the object that wraps the Telegram Bot API methods.
type API struct {
	base   string
	client *client
}

// NewAPI returns a new API object.
func NewAPI(token string) API {
	return NewLocalAPI(fmt.Sprintf("https://api.telegram.org/bot%s/", token))
}

// NewLocalAPI is like NewAPI but allows to use a local API server.
// The base URL must contain the bot token and end with a slash.
func NewLocalAPI(base string) API {
	return API{
		base:   base,
		client: newClient(),
	}
}

// GetMe is a simple method for testing the bot's auth token.
func (a API) GetMe(ctx context.Context) (res APIResponseUser, err error) {
	return res, a.client.postJSON(ctx, a.base+"getMe", nil, &res)
}

// GetUpdates is used to receive incoming updates using long polling.
func (a API) GetUpdates(ctx context.Context, opts *UpdateOptions) (res APIResponseUpdate, err error) {
	return res, a.client.postJSON(ctx, a.base+"getUpdates", opts, &res)
}

// DeleteWebhook is used to remove webhook integration before switching to GetUpdates.
func (a API) DeleteWebhook(ctx context.Context, dropPendingUpdates bool) (res APIResponseBool, err error) {
	payload := struct {
		DropPendingUpdates bool `json:"drop_pending_updates"`
	}{dropPendingUpdates}
	return res, a.client.postJSON(ctx, a.base+"deleteWebhook", payload, &res)
}

// SendMessage is used to send text messages.
func (a API) SendMessage(ctx context.Context, text string, chatID int64, opts *MessageOptions) (res APIResponseMessage, err error) {
	payload := struct {
		ChatID int64  `json:"chat_id"`
		Text   string `json:"text"`
		*MessageOptions
	}{chatID, text, opts}
	return res, a.client.postJSON(ctx, a.base+"sendMessage", payload, &res)
}

// EditMessageText is used to edit text of an already sent message.
func (a API) EditMessageText(ctx context.Context, text string, chatID int64, messageID int, opts *MessageOptions) (res APIResponseMessage, err error) {
	payload := struct {
		ChatID    int64  `json:"chat_id"`
		MessageID int    `json:"message_id"`
		Text      string `json:"text"`
		*MessageOptions
	}{chatID, messageID, text, opts}
	return res, a.client.postJSON(ctx, a.base+"editMessageText", payload, &res)
}

// DeleteMessage is used to delete a message, with the API-side limitation
// that a message can only be deleted if it was sent less than 48 hours ago.
func (a API) DeleteMessage(ctx context.Context, chatID int64, messageID int) (res APIResponseBool, err error) {
	payload := struct {
		ChatID    int64 `json:"chat_id"`
		MessageID int   `json:"message_id"`
	}{chatID, messageID}
	return res, a.client.postJSON(ctx, a.base+"deleteMessage", payload, &res)
}

// AnswerCallbackQuery is used to send answers to callback queries sent from inline keyboards.
func (a API) AnswerCallbackQuery(ctx context.Context, callbackID string, opts *CallbackQueryOptions) (res APIResponseBool, err error) {
	payload := struct {
		CallbackQueryID string `json:"callback_query_id"`
		*CallbackQueryOptions
	}{callbackID, opts}
	return res, a.client.postJSON(ctx, a.base+"answerCallbackQuery", payload, &res)
}

// AnswerWebAppQuery is used to set the result of an interaction with a web app
// and send a corresponding message on behalf of the user.
func (a API) AnswerWebAppQuery(ctx context.Context, queryID string, result InlineQueryResultArticle) (res APIResponseSentWebAppMessage, err error) {
	payload := struct {
		WebAppQueryID string                   `json:"web_app_query_id"`
		Result        InlineQueryResultArticle `json:"result"`
	}{queryID, result}
	return res, a.client.postJSON(ctx, a.base+"answerWebAppQuery", payload, &res)
}

// GetChatMember is used to get information about a member of a chat.
// chatID accepts both a numeric ID and a channel username in the @name form.
func (a API) GetChatMember(ctx context.Context, chatID string, userID int64) (res APIResponseChatMember, err error) {
	payload := struct {
		ChatID string `json:"chat_id"`
		UserID int64  `json:"user_id"`
	}{chatID, userID}
	return res, a.client.postJSON(ctx, a.base+"getChatMember", payload, &res)
}

// SetMyCommands is used to change the list of the bot's commands.
func (a API) SetMyCommands(ctx context.Context, commands ...BotCommand) (res APIResponseBool, err error) {
	payload := struct {
		Commands []BotCommand `json:"commands"`
	}{commands}
	return res, a.client.postJSON(ctx, a.base+"setMyCommands", payload, &res)
}
