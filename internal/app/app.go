package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"remindbot/internal/config"
	"remindbot/internal/notify"
	"remindbot/internal/scheduler"
	"remindbot/internal/store"
	"remindbot/internal/telegram"
)

type App struct {
	cfg config.Config
	log *zap.Logger
	bot *tgbotapi.BotAPI
}

func New(cfg config.Config, log *zap.Logger) (*App, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, err
	}
	bot.Debug = false

	return &App{cfg: cfg, log: log, bot: bot}, nil
}

func (a *App) Run(ctx context.Context) error {
	a.log.Info("starting remindbot",
		zap.Int64("chat_id", a.cfg.ChatID),
		zap.String("db", a.cfg.DBPath),
	)

	repo, err := store.OpenSQLite(ctx, a.cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open sqlite: %w", err)
	}
	a.log.Info("sqlite ready")

	state := store.NewState(repo, a.log)
	sender := notify.NewTelegramSender(a.bot, a.cfg.ChatID)
	center := notify.NewCenter(repo, sender, a.log)
	coord := scheduler.New(state, center, a.log)
	router := telegram.NewRouter(a.bot, a.log, coord, state, a.cfg.ChatID)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Permission comes first: if alerts cannot reach the chat, nothing is
	// scheduled until the problem is resolved.
	if granted, err := center.RequestPermission(ctx); !granted {
		_ = repo.Close()
		return fmt.Errorf("notification permission denied: %w", err)
	}

	// Startup reschedule pass; a failure is retried on the next start or
	// the next calendar day rather than aborting the whole process.
	if err := coord.InitializeOnStart(ctx); err != nil {
		a.log.Error("startup reschedule pass failed", zap.Error(err))
	}

	go center.Run(ctx)

	// The once-per-calendar-day guard resets at midnight; in a long-running
	// process the daily pass runs from cron instead of an app restart.
	cr := cron.New()
	if _, err := cr.AddFunc("0 0 * * *", func() {
		if err := coord.InitializeOnStart(context.Background()); err != nil {
			a.log.Error("daily reschedule pass failed", zap.Error(err))
		}
	}); err != nil {
		_ = repo.Close()
		return fmt.Errorf("register daily pass: %w", err)
	}
	cr.Start()
	defer cr.Stop()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updCh := a.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			a.log.Info("shutdown signal received")
			_ = repo.Close()
			return nil
		case upd := <-updCh:
			router.HandleUpdate(ctx, upd)
		}
	}
}
