package tgrouter

import (
	"context"
	"regexp"
	"strings"
)

// routeHandler defines a function that will handle updates that pass the filtering.
type routeHandler struct {
	filter      FilterMatcher
	handler     Handler
	middlewares []Middleware
}

func (h *routeHandler) Handle(ctx context.Context, u *Update) error {
	wh := h.wrap(h.handler)
	return wh.Handle(ctx, u)
}

func (h *routeHandler) Match(u *Update) bool {
	return h.filter.Match(u)
}

func (h *routeHandler) Use(middlewares ...Middleware) {
	h.middlewares = append(h.middlewares, middlewares...)
}

func (h *routeHandler) wrap(handler Handler) Handler {
	for i := len(h.middlewares) - 1; i >= 0; i-- {
		handler = h.middlewares[i](handler)
	}
	return handler
}

// NewRoute creates a new generic routeHandler.
func NewRoute(filter FilterMatcher, handler Handler, middlewares ...Middleware) Route {
	if filter == nil {
		filter = Any()
	}
	return &routeHandler{
		filter:      filter,
		handler:     handler,
		middlewares: middlewares,
	}
}

func NewAnyRoute(handler Handler) Route {
	return NewRoute(Any(), handler)
}

// NewMessageRoute creates a routeHandler for updates that contain message.
func NewMessageRoute(filter FilterMatcher, handler Handler) Route {
	newFilter := IsMessage()
	if filter != nil {
		newFilter = And(newFilter, filter)
	}
	return NewRoute(newFilter, handler)
}

// NewCommandRoute is an extension for NewMessageRoute that creates a routeHandler
// for updates that contain message with command.
//
// command can be a string (like "start" or "somecmd") or a space-delimited list
// of commands to accept (like "start somecmd othercmd")
func NewCommandRoute(command string, filter FilterMatcher, handler Handler) Route {
	var commandFilters []FilterMatcher
	for _, variant := range strings.Split(command, " ") {
		commandFilters = append(commandFilters, IsCommandMessage(strings.TrimPrefix(variant, "/")))
	}
	newFilter := Or(commandFilters...)
	if filter != nil {
		newFilter = And(newFilter, filter)
	}
	return NewMessageRoute(
		newFilter,
		handler,
	)
}

// NewInlineQueryRoute creates a routeHandler for updates that contain inline query
// which matches the pattern as regexp.
func NewInlineQueryRoute(pattern string, filter FilterMatcher, handler Handler) Route {
	exp := regexp.MustCompile(pattern)
	newFilter := And(IsInlineQuery(), FilterFunc(func(u *Update) bool {
		return exp.MatchString(u.InlineQuery.Query)
	}))
	if filter != nil {
		newFilter = And(newFilter, filter)
	}
	return NewRoute(newFilter, handler)
}

// NewCallbackQueryRoute creates a routeHandler for updates that contain callback query
// which matches the pattern as regexp.
func NewCallbackQueryRoute(pattern string, filter FilterMatcher, handler Handler) Route {
	exp := regexp.MustCompile(pattern)
	newFilter := And(IsCallbackQuery(), FilterFunc(func(u *Update) bool {
		return exp.MatchString(u.CallbackQuery.Data)
	}))
	if filter != nil {
		newFilter = And(newFilter, filter)
	}
	return NewRoute(newFilter, handler)
}
