package botapi

import (
	"context"
	"sync"
)

// SessionHandler is implemented by whatever handles the updates of one chat.
type SessionHandler interface {
	HandleUpdate(ctx context.Context, upd *Update)
}

type HandlerFunc func(ctx context.Context, upd *Update)

func (fn HandlerFunc) HandleUpdate(ctx context.Context, upd *Update) {
	fn(ctx, upd)
}

var NoopSessionHandler HandlerFunc = func(ctx context.Context, upd *Update) {}

// NewSessionFactory is called every time the dispatcher receives an update
// with a chat ID never encountered before.
type NewSessionFactory func(chatID int64) SessionHandler

// Dispatcher passes updates from long polling to the SessionHandler
// associated with each chat ID, creating sessions on demand.
type Dispatcher struct {
	api        API
	sessionMap map[int64]SessionHandler
	newSession NewSessionFactory
	updates    chan *Update
	mu         sync.RWMutex
}

// NewDispatcher returns a new instance of the Dispatcher object.
func NewDispatcher(api API, newSessionFn NewSessionFactory) *Dispatcher {
	return &Dispatcher{
		api:        api,
		sessionMap: make(map[int64]SessionHandler),
		newSession: newSessionFn,
		updates:    make(chan *Update),
	}
}

// ListenUpdates consumes polled updates and hands each one to the session
// of its chat in a separate goroutine.
func (d *Dispatcher) ListenUpdates(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case update := <-d.updates:
			session := d.instance(update.ChatID())
			go session.HandleUpdate(ctx, update)
		}
	}
}

// Poll is a wrapper function for PollOptions.
func (d *Dispatcher) Poll(ctx context.Context) error {
	return d.PollOptions(ctx, true, UpdateOptions{Timeout: 120})
}

// PollOptions runs the long polling loop until the context is canceled.
func (d *Dispatcher) PollOptions(ctx context.Context, dropPendingUpdates bool, opts UpdateOptions) error {
	var (
		timeout    = opts.Timeout
		isFirstRun = true
	)

	// deletes webhook if present to run in long polling mode
	if _, err := d.api.DeleteWebhook(ctx, dropPendingUpdates); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if isFirstRun {
			opts.Timeout = 0
		}

		response, err := d.api.GetUpdates(ctx, &opts)
		if err != nil {
			return err
		}

		if !dropPendingUpdates || !isFirstRun {
			for _, u := range response.Result {
				d.updates <- u
			}
		}

		if l := len(response.Result); l > 0 {
			opts.Offset = response.Result[l-1].ID + 1
		}

		if isFirstRun {
			isFirstRun = false
			opts.Timeout = timeout
		}
	}
}

// DeleteSession removes the session of the given chat.
func (d *Dispatcher) DeleteSession(chatID int64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.sessionMap, chatID)
}

func (d *Dispatcher) instance(chatID int64) SessionHandler {
	d.mu.RLock()
	session, ok := d.sessionMap[chatID]
	d.mu.RUnlock()
	if !ok {
		session = d.newSession(chatID)
		d.mu.Lock()
		d.sessionMap[chatID] = session
		d.mu.Unlock()
	}
	return session
}
