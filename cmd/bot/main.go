package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"SignalRelay/internal/bot"
	"SignalRelay/internal/classifier"
	"SignalRelay/internal/config"
	"SignalRelay/internal/keepalive"
	"SignalRelay/internal/model"
	"SignalRelay/internal/notifier"
	"SignalRelay/internal/plan"
	"SignalRelay/internal/quote"
	"SignalRelay/internal/recorder"
	"SignalRelay/internal/scheduler"
)

func main() {
	_ = godotenv.Load()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()
	log.Info().Msg("SignalRelay starting")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("config validation")
	}

	// Init classifier and calculator
	cl, err := classifier.New(cfg.Rules)
	if err != nil {
		log.Fatal().Err(err).Msg("init classifier")
	}
	calc, err := plan.NewCalculator(cfg.Plan)
	if err != nil {
		log.Fatal().Err(err).Msg("init plan calculator")
	}

	// Init quote resolver
	resolver := quote.NewResolver(
		quote.NewBinanceFetcher(),
		time.Duration(cfg.Quote.TimeoutSeconds)*time.Second,
		log,
	)

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath, log)
		if err != nil {
			log.Warn().Err(err).Msg("init sqlite recorder failed, using noop")
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Init Telegram transport
	tg, err := notifier.NewTelegram(cfg.Telegram.BotToken, cfg.Telegram.BroadcastChatID, cfg.Telegram.OperatorIDs, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init telegram")
	}

	format := &notifier.Formatter{Signature: cfg.Signature}
	handler := bot.NewHandler(cl, resolver, calc, format, rec, log)

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Keep-alive HTTP server
	srv := keepalive.New(cfg.Server.ListenAddr, log)
	srv.Start()

	// Daily digest
	sched := scheduler.NewScheduler(rec, tg, format, log)
	if err := sched.Register(cfg.Schedule.DigestCron); err != nil {
		log.Fatal().Err(err).Msg("register digest task")
	}
	sched.Start()
	defer sched.Stop()

	// Start Telegram polling
	go tg.Listen(ctx, func(msg model.RawMessage) {
		for _, out := range handler.Handle(ctx, msg) {
			switch {
			case out.Operator:
				tg.AlertOperators(out.Text)
			case out.Broadcast:
				tg.Broadcast(out.Text)
			default:
				if err := tg.SendTo(out.ChatID, out.Text); err != nil {
					log.Error().Int64("chat", out.ChatID).Err(err).Msg("send failed")
				}
			}
		}
	})
	log.Info().Msg("telegram polling started")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info().Msg("shutdown signal received, stopping")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("keep-alive shutdown")
	}
	log.Info().Msg("SignalRelay stopped")
}
