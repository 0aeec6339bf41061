package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"driverprofilebot/pkg/admin"
	"driverprofilebot/pkg/bot"
	"driverprofilebot/pkg/bot/telegramadapter"
	"driverprofilebot/pkg/config"
	"driverprofilebot/pkg/flow"
	"driverprofilebot/pkg/security"
	"driverprofilebot/pkg/state"
	"driverprofilebot/pkg/storage"

	"go.uber.org/zap"
)

func main() {
	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("loading configuration failed", zap.Error(err))
	}

	profiles, err := storage.Open(cfg.DatabaseDSN, log)
	if err != nil {
		log.Fatal("opening profile storage failed", zap.Error(err))
	}

	botClient, err := bot.NewClient(cfg.BotToken, log)
	if err != nil {
		log.Fatal("initializing bot client failed", zap.Error(err))
	}

	botPort, err := telegramadapter.New(botClient, log)
	if err != nil {
		log.Fatal("creating telegram adapter failed", zap.Error(err))
	}

	guard := security.NewGuard(cfg.Security, log)
	sessions := state.NewStore(flow.NewMachineFactory(), log)
	handler := flow.NewHandler(botPort, profiles, guard, sessions, log, cfg.StrictPersistence)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigs
		log.Info("shutdown signal received")
		cancel()
	}()

	adminSrv := &http.Server{
		Addr:    cfg.AdminAddr,
		Handler: admin.NewServer(guard, sessions, log).Router(),
	}
	go func() {
		log.Info("admin server listening", zap.String("addr", cfg.AdminAddr))
		if err := adminSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("admin server failed", zap.Error(err))
			cancel()
		}
	}()

	updates := botClient.GetUpdatesChan(60)
	log.Info("starting update processing")

	for {
		select {
		case update := <-updates:
			if update.UpdateID == 0 {
				continue
			}
			go handler.HandleUpdate(ctx, update)
		case <-ctx.Done():
			log.Info("stopping update processing")
			botClient.StopReceivingUpdates()

			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			if err := adminSrv.Shutdown(shutdownCtx); err != nil {
				log.Warn("admin server shutdown failed", zap.Error(err))
			}
			return
		}
	}
}
