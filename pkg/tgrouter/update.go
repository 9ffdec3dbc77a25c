package tgrouter

import (
	"github.com/chatgpti/webapp-bot/pkg/botapi"
)

// Update wraps a raw API update together with the API instance that
// received it and the bot's own identity.
type Update struct {
	*botapi.Update
	API     botapi.API
	BotSelf *botapi.User
}

// NewUpdate wraps a raw update for routing.
func NewUpdate(u *botapi.Update, api botapi.API, botSelf *botapi.User) *Update {
	return &Update{
		Update:  u,
		API:     api,
		BotSelf: botSelf,
	}
}

// EffectiveMessage returns the message carried by the update, whichever
// update kind it arrived in, or nil.
func (u *Update) EffectiveMessage() *botapi.Message {
	switch {
	case u.Message != nil:
		return u.Message
	case u.EditedMessage != nil:
		return u.EditedMessage
	case u.ChannelPost != nil:
		return u.ChannelPost
	case u.EditedChannelPost != nil:
		return u.EditedChannelPost
	case u.CallbackQuery != nil:
		return u.CallbackQuery.Message
	}
	return nil
}

// EffectiveChat returns the chat the update belongs to, or nil.
func (u *Update) EffectiveChat() *botapi.Chat {
	if msg := u.EffectiveMessage(); msg != nil {
		return &msg.Chat
	}
	return nil
}

// EffectiveUser returns the user who triggered the update, or nil.
func (u *Update) EffectiveUser() *botapi.User {
	switch {
	case u.CallbackQuery != nil:
		return u.CallbackQuery.From
	case u.InlineQuery != nil:
		return u.InlineQuery.From
	}
	if msg := u.EffectiveMessage(); msg != nil {
		return msg.From
	}
	return nil
}
