// Package app contains the access gate: the service that decides, on every
// interaction, whether a user may open the web application.
package app

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"strings"
	"sync"

	"github.com/chatgpti/webapp-bot/internal/domain"
	"github.com/chatgpti/webapp-bot/pkg/tgrouter"
)

type Config struct {
	WebAppURL        string
	RequiredChannels []domain.Channel
}

// Gate owns the subscription-check flow. It keeps no per-user state:
// every decision is derived from a fresh membership snapshot.
type Gate struct {
	telegram domain.TelegramClient
	logger   *slog.Logger
	cfg      Config
}

func NewGate(telegram domain.TelegramClient, logger *slog.Logger, cfg Config) *Gate {
	return &Gate{
		telegram: telegram,
		logger:   logger.With(slog.String("component", "Gate")),
		cfg:      cfg,
	}
}

func (g *Gate) Routes() domain.TelegramRoute {
	return tgrouter.NewGroup(tgrouter.IsPrivate(),
		tgrouter.NewCommandRoute("/start", nil, tgrouter.HandlerFunc(g.handleStart)),
		tgrouter.NewRoute(tgrouter.IsCallbackQuery(), tgrouter.HandlerFunc(g.handleCallback)),
	)
}

// EvaluateSubscription checks the user against every required channel in the
// configured order. Fail-closed: a collaborator error denies access
// immediately, without checking the remaining channels and without retrying.
func (g *Gate) EvaluateSubscription(ctx context.Context, userID int64) domain.AccessDecision {
	for _, channel := range g.cfg.RequiredChannels {
		status, err := g.telegram.GetChatMember(ctx, channel, userID)
		if err != nil {
			g.logger.WarnContext(ctx, "membership check failed",
				slog.String("channel", string(channel)),
				slog.Int64("user_id", userID),
				slog.Any("error", err),
			)
			return domain.AccessDenied
		}
		if !status.Subscribed() {
			return domain.AccessDenied
		}
	}
	return domain.AccessGranted
}

var sendCommandsOnce sync.Once

func (g *Gate) handleStart(ctx context.Context, u *tgrouter.Update) error {
	userID := u.Message.From.ID
	decision := g.EvaluateSubscription(ctx, userID)
	g.logger.InfoContext(ctx, "start",
		slog.Int64("user_id", userID),
		slog.String("access", decision.String()),
	)

	sendCommandsOnce.Do(func() {
		_ = g.telegram.SetBotCommands(ctx, []domain.BotCommand{
			{Command: "/start", Description: "Открыть ChatGPTi"},
		})
	})

	name := u.Message.From.FirstName
	if decision.Granted() {
		_, err := g.telegram.SendMessageHTML(ctx, u.ChatID(), g.unlockedText(name), g.openAppButton())
		return err
	}
	_, err := g.telegram.SendMessageHTML(ctx, u.ChatID(), g.lockedText(name), g.checkButton())
	return err
}

func (g *Gate) handleCallback(ctx context.Context, u *tgrouter.Update) error {
	q := u.CallbackQuery
	action, err := domain.ParseCallbackAction(q.Data)
	if err != nil {
		// Stop the client-side spinner even for data we cannot handle.
		_ = g.telegram.AnswerCallback(ctx, q.ID, "", false)
		return err
	}
	if q.Message == nil {
		return g.telegram.AnswerCallback(ctx, q.ID, staleMessageAlert, true)
	}

	decision := g.EvaluateSubscription(ctx, q.From.ID)
	g.logger.InfoContext(ctx, "callback",
		slog.String("action", action.String()),
		slog.Int64("user_id", q.From.ID),
		slog.String("access", decision.String()),
	)

	switch action {
	case domain.ActionCheckSubscription:
		return g.completeCheck(ctx, q.ID, q.Message.Chat.ID, q.Message.ID, decision)
	case domain.ActionOpenApp:
		return g.completeOpenApp(ctx, q.ID, q.Message.Chat.ID, q.Message.ID, decision)
	}
	return fmt.Errorf("unhandled callback action %s", action)
}

// completeCheck resolves a "check subscription" press. On grant the prompt is
// replaced by the unlocked message; on denial only a transient alert is shown
// and the prompt stays as is.
func (g *Gate) completeCheck(ctx context.Context, callbackID string, chatID int64, messageID int, decision domain.AccessDecision) error {
	if !decision.Granted() {
		return g.telegram.AnswerCallback(ctx, callbackID, notSubscribedAlert, true)
	}
	if err := g.telegram.AnswerCallback(ctx, callbackID, "", false); err != nil {
		return err
	}
	if err := g.telegram.DeleteMessage(ctx, chatID, messageID); err != nil {
		return err
	}
	_, err := g.telegram.SendMessageHTML(ctx, chatID, unlockedMessage, g.openAppButton())
	return err
}

// completeOpenApp re-derives the state and edits the message in place:
// the launch button on grant, the locked prompt on denial.
func (g *Gate) completeOpenApp(ctx context.Context, callbackID string, chatID int64, messageID int, decision domain.AccessDecision) error {
	if err := g.telegram.AnswerCallback(ctx, callbackID, "", false); err != nil {
		return err
	}
	if decision.Granted() {
		return g.telegram.EditMessageHTML(ctx, chatID, messageID, launchMessage, g.launchButton())
	}
	return g.telegram.EditMessageHTML(ctx, chatID, messageID, g.lockedText(""), g.checkButton())
}

const (
	unlockedMessage    = "Подписка подтверждена! Нажмите кнопку ниже, чтобы открыть приложение:"
	launchMessage      = "Всё готово! Нажмите кнопку ниже, чтобы запустить ChatGPTi:"
	notSubscribedAlert = "Вы подписаны не на все каналы. Подпишитесь и попробуйте снова."
	staleMessageAlert  = "Сообщение устарело. Отправьте /start ещё раз."
)

func (g *Gate) unlockedText(name string) string {
	return greeting(name) + "\n\nНажмите кнопку ниже, чтобы открыть приложение:"
}

func (g *Gate) lockedText(name string) string {
	var b strings.Builder
	b.WriteString(greeting(name))
	b.WriteString("\n\nЧтобы открыть приложение, подпишитесь на наши каналы:\n")
	for _, channel := range g.cfg.RequiredChannels {
		fmt.Fprintf(&b, "• <a href=%q>%s</a>\n", channel.Link(), channel)
	}
	b.WriteString("\nЗатем нажмите «Проверить подписку».")
	return b.String()
}

func greeting(name string) string {
	if name == "" {
		return "Добро пожаловать в ChatGPTi!"
	}
	return fmt.Sprintf("Добро пожаловать в ChatGPTi, %s!", html.EscapeString(name))
}

func (g *Gate) checkButton() domain.KeyboardButton {
	return domain.KeyboardButton{
		Text:         "Проверить подписку",
		CallbackData: domain.ActionCheckSubscription.String(),
	}
}

func (g *Gate) openAppButton() domain.KeyboardButton {
	return domain.KeyboardButton{
		Text:         "Открыть приложение",
		CallbackData: domain.ActionOpenApp.String(),
	}
}

func (g *Gate) launchButton() domain.KeyboardButton {
	return domain.KeyboardButton{
		Text:      "Открыть ChatGPTi",
		WebAppURL: g.cfg.WebAppURL,
	}
}
