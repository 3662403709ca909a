package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"examwatch/pkg/config"
	"examwatch/pkg/logger"
	"examwatch/pkg/notifier"

	"go.uber.org/zap"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to the JSON/YAML config file")
		timeout    = flag.Duration("timeout", 30*time.Second, "overall timeout")
		discover   = flag.Bool("discover", false, "look up the chat id even when CHAT_ID is already set")
	)
	flag.Parse()

	if err := logger.InitLogger(true, ""); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		logger.Error("Failed to load config", zap.Error(err))
		os.Exit(1)
	}
	if cfg.Telegram == nil || cfg.Telegram.BotToken == "" {
		logger.Error("TELEGRAM_BOT_TOKEN is not set")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	// This tool always talks to Telegram, whatever the watcher's toggle says.
	cfg.Telegram.Enabled = true
	tg := notifier.NewTelegramNotifier(cfg.Telegram)

	if cfg.Telegram.ChatID != "" && !*discover {
		if err := tg.TestConnection(ctx); err != nil {
			logger.Error("Test message to the configured chat failed", zap.String("chat_id", cfg.Telegram.ChatID), zap.Error(err))
			os.Exit(1)
		}
		logger.Info("Test message delivered to the configured chat", zap.String("chat_id", cfg.Telegram.ChatID))
		return
	}

	chatID, chat, err := tg.LatestChatID(ctx)
	if err != nil {
		logger.Error("Failed to discover chat id, send any message to the bot first", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("Chat discovered",
		zap.String("chat_id", chatID),
		zap.String("type", chat.Type),
		zap.String("title", chat.Title),
		zap.String("username", chat.Username))
	fmt.Printf("CHAT_ID=%s\n", chatID)

	msg := fmt.Sprintf("✅ Exam watch is connected.\nYour chat id is <code>%s</code>", chatID)
	if err := tg.SendTo(ctx, chatID, msg); err != nil {
		logger.Error("Failed to send confirmation message", zap.Error(err))
		os.Exit(1)
	}
}
