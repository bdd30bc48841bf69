package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"filevault/internal/app/server/api"
	"filevault/internal/config"
	"filevault/internal/infrastructure/blob"
	"filevault/internal/infrastructure/mail"
	"filevault/internal/infrastructure/storage/postgres"
	"filevault/internal/logger"

	"golang.org/x/exp/slog"
)

func main() {
	conf := config.NewConfig()
	log := logger.NewLogger(conf.Env)

	if err := run(conf, log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(conf *config.Config, log *slog.Logger) error {
	storage, err := postgres.New(conf)
	if err != nil {
		return err
	}
	defer storage.Close()

	store, err := newBlobStore(conf)
	if err != nil {
		return err
	}

	sender := newSender(conf, log)

	mux := api.New(conf, storage, store, sender, log)

	srv := &http.Server{
		Addr:    conf.Server.RunAddress,
		Handler: mux,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", "address", conf.Server.RunAddress)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newBlobStore(conf *config.Config) (blob.Store, error) {
	switch conf.Blob.Driver {
	case "s3":
		return blob.NewS3(context.Background(), blob.S3Options{
			Region:       conf.Blob.S3Region,
			Bucket:       conf.Blob.S3Bucket,
			BaseEndpoint: conf.Blob.S3BaseEndpoint,
			AccessKey:    conf.Blob.S3AccessKey,
			SecretKey:    conf.Blob.S3SecretKey,
		})
	default:
		return blob.NewLocal(conf.Blob.UploadDir)
	}
}

// newSender falls back to log delivery when no SMTP relay is configured,
// which is what local development wants.
func newSender(conf *config.Config, log *slog.Logger) mail.Sender {
	if conf.SMTP.Host == "" {
		return mail.NewLog(log)
	}
	return mail.NewSMTP(conf.SMTP.Host, conf.SMTP.Port, conf.SMTP.User, conf.SMTP.Password, conf.SMTP.From)
}
