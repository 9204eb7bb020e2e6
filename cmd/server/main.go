package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"
	"time"

	"pollos/internal/config"
	"pollos/internal/contact"
	"pollos/internal/contact/service"
	"pollos/internal/infrastructure/logger"
	"pollos/internal/infrastructure/mailer"
	"pollos/internal/order"
	"pollos/internal/pages"
	"pollos/internal/product"
	"pollos/internal/server"
	"pollos/internal/storage"
	"pollos/internal/web"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	if err := run(cfg, zapLogger); err != nil {
		zapLogger.Fatal("server error", zap.Error(err))
	}
	zapLogger.Info("server stopped gracefully")
}

func run(cfg *config.Config, zapLogger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	backend, err := storage.Open(ctx, cfg, zapLogger)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := backend.Close(closeCtx); err != nil {
			zapLogger.Warn("closing store", zap.Error(err))
		}
	}()

	catalog := product.NewModule(backend.Products, zapLogger)
	if _, err := catalog.SeedIfEmpty(ctx, cfg.Catalog.SeedFile); err != nil {
		return err
	}

	renderer, err := web.NewRenderer()
	if err != nil {
		return err
	}
	flashes := web.NewFlashStore(cfg.Server.SessionSecret)

	var notifier service.Mailer
	if cfg.Mail.Enabled() {
		notifier = mailer.NewSMTPMailer(cfg.Mail)
	} else {
		zapLogger.Warn("MAIL_HOST not set, contact notifications will only be logged")
		notifier = mailer.NewLogMailer(zapLogger)
	}

	router := server.NewRouter(server.Handlers{
		Pages:   pages.NewModule(catalog, renderer, flashes, zapLogger),
		Orders:  order.NewModule(backend.Orders, renderer, flashes, zapLogger),
		Contact: contact.NewModule(backend.Messages, notifier, cfg.Mail.Recipient, renderer, flashes, zapLogger),
		Health:  backend,
	}, zapLogger)

	srv := server.New(cfg.Server.Port, router, zapLogger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(srv.Start)
	g.Go(func() error {
		<-gctx.Done()
		zapLogger.Info("received shutdown signal")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})

	return g.Wait()
}
