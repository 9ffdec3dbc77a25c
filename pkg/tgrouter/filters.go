package tgrouter

import (
	"regexp"
)

// FilterFunc is used to check if this update should be processed by routeHandler.
type FilterFunc func(u *Update) bool

func (fn FilterFunc) Match(u *Update) bool {
	return fn(u)
}

var commandRegex = regexp.MustCompile("^/([0-9a-zA-Z_]+)(@[0-9a-zA-Z_]{3,})?")

// Any tells routeHandler to process all updates.
func Any() FilterMatcher {
	return FilterFunc(func(u *Update) bool {
		return true
	})
}

// IsMessage filters updates that look like message (text, photo, location etc.)
func IsMessage() FilterMatcher {
	return FilterFunc(func(u *Update) bool {
		return u.Message != nil
	})
}

// IsInlineQuery filters updates that are callbacks from inline queries.
func IsInlineQuery() FilterMatcher {
	return FilterFunc(func(u *Update) bool {
		return u.InlineQuery != nil
	})
}

// IsCallbackQuery filters updates that are callbacks from button presses.
func IsCallbackQuery() FilterMatcher {
	return FilterFunc(func(u *Update) bool {
		return u.CallbackQuery != nil
	})
}

// HasText filters updates that look like text,
// i. e. have some text and do not start with a slash ("/").
func HasText() FilterMatcher {
	return FilterFunc(func(u *Update) bool {
		message := u.EffectiveMessage()
		return message != nil && message.Text != "" && message.Text[0] != '/'
	})
}

// IsAnyCommandMessage filters updates that contain a message and look like a command,
// i. e. have some text and start with a slash ("/").
// If command contains bot username, it is also checked.
func IsAnyCommandMessage() FilterMatcher {
	return And(IsMessage(), FilterFunc(func(u *Update) bool {
		matches := commandRegex.FindStringSubmatch(u.Message.Text)
		if len(matches) == 0 {
			return false
		}
		botName := matches[2]
		if botName != "" && u.BotSelf != nil && botName != "@"+u.BotSelf.UserName {
			return false
		}
		return true
	}))
}

// IsCommandMessage filters updates that contain a specific command.
// For example, IsCommandMessage("start") will handle a "/start" command.
// This will also allow the user to pass arguments, e. g. "/start foo bar".
// Commands in format "/start@bot_name" and "/start@bot_name foo bar" are also supported.
// If command contains bot username, it is also checked.
func IsCommandMessage(cmd string) FilterMatcher {
	return And(IsAnyCommandMessage(), FilterFunc(func(u *Update) bool {
		matches := commandRegex.FindStringSubmatch(u.Message.Text)
		actualCmd := matches[1]
		return actualCmd == cmd
	}))
}

// IsPrivate filters updates that are sent in private chats.
func IsPrivate() FilterMatcher {
	return FilterFunc(func(u *Update) bool {
		if chat := u.EffectiveChat(); chat != nil {
			return chat.IsPrivate()
		}
		// Callback queries from inline messages and inline queries carry
		// no chat at all; treat them as private interactions.
		return u.CallbackQuery != nil || u.InlineQuery != nil
	})
}

// And filters updates that pass ALL of the provided filters.
func And(filters ...FilterMatcher) FilterMatcher {
	return FilterFunc(func(u *Update) bool {
		for _, filter := range filters {
			if !filter.Match(u) {
				return false
			}
		}
		return true
	})
}

// Or filters updates that pass ANY of the provided filters.
func Or(filters ...FilterMatcher) FilterMatcher {
	return FilterFunc(func(u *Update) bool {
		for _, filter := range filters {
			if filter.Match(u) {
				return true
			}
		}
		return false
	})
}

// Not filters updates that do not pass the provided filter.
func Not(filter FilterMatcher) FilterMatcher {
	return FilterFunc(func(u *Update) bool {
		return !filter.Match(u)
	})
}
