package botapi

// UpdateType is a type of update the bot subscribes to via UpdateOptions.
type UpdateType string

const (
	UpdateTypeMessage       UpdateType = "message"
	UpdateTypeEditedMessage UpdateType = "edited_message"
	UpdateTypeChannelPost   UpdateType = "channel_post"
	UpdateTypeInlineQuery   UpdateType = "inline_query"
	UpdateTypeCallbackQuery UpdateType = "callback_query"
)

// Update represents an incoming update from the Telegram Bot API.
// At most one of the optional parameters can be present in any given update.
type Update struct {
	ID                int            `json:"update_id"`
	Message           *Message       `json:"message,omitempty"`
	EditedMessage     *Message       `json:"edited_message,omitempty"`
	ChannelPost       *Message       `json:"channel_post,omitempty"`
	EditedChannelPost *Message       `json:"edited_channel_post,omitempty"`
	InlineQuery       *InlineQuery   `json:"inline_query,omitempty"`
	CallbackQuery     *CallbackQuery `json:"callback_query,omitempty"`
}

// ChatID returns the ID of the chat the update originates from,
// or 0 if the update carries no chat.
func (u *Update) ChatID() int64 {
	switch {
	case u.Message != nil:
		return u.Message.Chat.ID
	case u.EditedMessage != nil:
		return u.EditedMessage.Chat.ID
	case u.ChannelPost != nil:
		return u.ChannelPost.Chat.ID
	case u.EditedChannelPost != nil:
		return u.EditedChannelPost.Chat.ID
	case u.CallbackQuery != nil && u.CallbackQuery.Message != nil:
		return u.CallbackQuery.Message.Chat.ID
	case u.InlineQuery != nil && u.InlineQuery.From != nil:
		return u.InlineQuery.From.ID
	}
	return 0
}

// User represents a Telegram user or bot.
type User struct {
	ID        int64  `json:"id"`
	IsBot     bool   `json:"is_bot"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name,omitempty"`
	UserName  string `json:"username,omitempty"`
}

// Chat represents a chat.
type Chat struct {
	ID       int64  `json:"id"`
	Type     string `json:"type"`
	Title    string `json:"title,omitempty"`
	UserName string `json:"username,omitempty"`
}

func (c Chat) IsPrivate() bool    { return c.Type == "private" }
func (c Chat) IsGroup() bool      { return c.Type == "group" }
func (c Chat) IsSuperGroup() bool { return c.Type == "supergroup" }
func (c Chat) IsChannel() bool    { return c.Type == "channel" }

// Message represents a message.
type Message struct {
	ID   int    `json:"message_id"`
	From *User  `json:"from,omitempty"`
	Chat Chat   `json:"chat"`
	Date int64  `json:"date"`
	Text string `json:"text,omitempty"`
}

// CallbackQuery represents an incoming callback query from an inline keyboard button.
type CallbackQuery struct {
	ID      string   `json:"id"`
	From    *User    `json:"from"`
	Message *Message `json:"message,omitempty"`
	Data    string   `json:"data,omitempty"`
}

// InlineQuery represents an incoming inline query.
type InlineQuery struct {
	ID    string `json:"id"`
	From  *User  `json:"from"`
	Query string `json:"query"`
}

// ChatMember contains information about one member of a chat.
// Only Status is guaranteed to be set for every member kind.
type ChatMember struct {
	Status string `json:"status"`
	User   *User  `json:"user,omitempty"`
}

// ParseMode is the formatting mode of a message.
type ParseMode string

const (
	HTML       ParseMode = "HTML"
	Markdown   ParseMode = "Markdown"
	MarkdownV2 ParseMode = "MarkdownV2"
)

// WebAppInfo describes a web app opened by an inline keyboard button.
type WebAppInfo struct {
	URL string `json:"url"`
}

// InlineKeyboardButton represents one button of an inline keyboard.
// Exactly one of URL, CallbackData or WebApp must be set.
type InlineKeyboardButton struct {
	Text         string      `json:"text"`
	URL          string      `json:"url,omitempty"`
	CallbackData string      `json:"callback_data,omitempty"`
	WebApp       *WebAppInfo `json:"web_app,omitempty"`
}

// InlineKeyboardMarkup represents an inline keyboard attached to a message.
type InlineKeyboardMarkup struct {
	InlineKeyboard [][]InlineKeyboardButton `json:"inline_keyboard"`
}

// LinkPreviewOptions describes link preview generation options for a message.
type LinkPreviewOptions struct {
	IsDisabled bool `json:"is_disabled,omitempty"`
}

// MessageOptions contains the optional parameters of SendMessage and EditMessageText.
type MessageOptions struct {
	ParseMode          ParseMode             `json:"parse_mode,omitempty"`
	ReplyMarkup        *InlineKeyboardMarkup `json:"reply_markup,omitempty"`
	LinkPreviewOptions *LinkPreviewOptions   `json:"link_preview_options,omitempty"`
}

// CallbackQueryOptions contains the optional parameters of AnswerCallbackQuery.
type CallbackQueryOptions struct {
	Text      string `json:"text,omitempty"`
	ShowAlert bool   `json:"show_alert,omitempty"`
}

// InputTextMessageContent is the content of a text message to be sent
// as the result of an inline or web app query.
type InputTextMessageContent struct {
	MessageText string    `json:"message_text"`
	ParseMode   ParseMode `json:"parse_mode,omitempty"`
}

// InlineQueryResultArticle is a link to an article or web page.
type InlineQueryResultArticle struct {
	Type                string                  `json:"type"`
	ID                  string                  `json:"id"`
	Title               string                  `json:"title"`
	InputMessageContent InputTextMessageContent `json:"input_message_content"`
}

// NewArticleResult builds an article query result with text content,
// suitable for AnswerWebAppQuery.
func NewArticleResult(id, title, text string) InlineQueryResultArticle {
	return InlineQueryResultArticle{
		Type:  "article",
		ID:    id,
		Title: title,
		InputMessageContent: InputTextMessageContent{
			MessageText: text,
		},
	}
}

// SentWebAppMessage describes an inline message sent on behalf of a user
// as a result of an answered web app query.
type SentWebAppMessage struct {
	InlineMessageID string `json:"inline_message_id,omitempty"`
}

// BotCommand represents a bot command shown in the chat menu.
type BotCommand struct {
	Command     string `json:"command"`
	Description string `json:"description"`
}

// UpdateOptions contains the optional parameters of GetUpdates.
type UpdateOptions struct {
	Offset         int          `json:"offset,omitempty"`
	Limit          int          `json:"limit,omitempty"`
	Timeout        int          `json:"timeout,omitempty"`
	AllowedUpdates []UpdateType `json:"allowed_updates,omitempty"`
}

// APIResponseBase is the part of the response shared by every API method.
type APIResponseBase struct {
	Ok          bool   `json:"ok"`
	ErrorCode   int    `json:"error_code,omitempty"`
	Description string `json:"description,omitempty"`
}

func (a APIResponseBase) Base() APIResponseBase { return a }

// APIResponse is implemented by all the APIResponse* types.
type APIResponse interface {
	Base() APIResponseBase
}

type APIResponseUpdate struct {
	APIResponseBase
	Result []*Update `json:"result,omitempty"`
}

func (a APIResponseUpdate) Base() APIResponseBase { return a.APIResponseBase }

type APIResponseUser struct {
	APIResponseBase
	Result *User `json:"result,omitempty"`
}

func (a APIResponseUser) Base() APIResponseBase { return a.APIResponseBase }

type APIResponseMessage struct {
	APIResponseBase
	Result *Message `json:"result,omitempty"`
}

func (a APIResponseMessage) Base() APIResponseBase { return a.APIResponseBase }

type APIResponseBool struct {
	APIResponseBase
	Result bool `json:"result,omitempty"`
}

func (a APIResponseBool) Base() APIResponseBase { return a.APIResponseBase }

type APIResponseChatMember struct {
	APIResponseBase
	Result *ChatMember `json:"result,omitempty"`
}

func (a APIResponseChatMember) Base() APIResponseBase { return a.APIResponseBase }

type APIResponseSentWebAppMessage struct {
	APIResponseBase
	Result *SentWebAppMessage `json:"result,omitempty"`
}

func (a APIResponseSentWebAppMessage) Base() APIResponseBase { return a.APIResponseBase }
