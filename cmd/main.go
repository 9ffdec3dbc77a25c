package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/chatgpti/webapp-bot/internal/adapters"
	"github.com/chatgpti/webapp-bot/internal/app"
	"github.com/chatgpti/webapp-bot/internal/config"
	"github.com/chatgpti/webapp-bot/internal/ports"
	"github.com/chatgpti/webapp-bot/pkg/log"
	"github.com/chatgpti/webapp-bot/web"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.ParseEnv()
	if err != nil {
		slog.Error("config", slog.Any("error", err))
		os.Exit(1)
	}

	var logOut io.Writer = os.Stdout
	if cfg.ErrorLogChatID != 0 {
		logOut = io.MultiWriter(
			os.Stdout,
			log.NewTelegramWriter(cfg.BotToken, cfg.ErrorLogChatID),
		)
	}
	logger := slog.New(slog.NewTextHandler(logOut, nil))
	slog.SetDefault(logger)

	tgClient := adapters.NewTelegramClient(cfg.BotToken)
	genClient := adapters.NewGenerationClient(cfg.GenerationAPIURL, cfg.GenerationAPIKey)

	gate := app.NewGate(tgClient, logger, app.Config{
		WebAppURL:        cfg.WebAppURL,
		RequiredChannels: cfg.RequiredChannels,
	})

	botServer := ports.NewBotServer(cfg.BotToken, logger).Mount(gate.Routes())
	botServer.Start(ctx)

	httpServer := ports.NewHTTPServer(
		fmt.Sprintf(":%d", cfg.Port),
		tgClient,
		genClient,
		adapters.NewHTMLRenderer(),
		web.Dist(),
		logger,
	)

	logger.Info("serving",
		slog.Int("port", cfg.Port),
		slog.String("webapp_url", cfg.WebAppURL),
	)
	if err := httpServer.Run(ctx); err != nil {
		logger.Error("http server", slog.Any("error", err))
		os.Exit(1)
	}
}
