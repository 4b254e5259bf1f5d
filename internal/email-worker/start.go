package emailworker

import (
	"context"
	"os/signal"
	"syscall"

	"trackmate/internal/config"
	"trackmate/internal/email-worker/adapters/driven/bm"
	"trackmate/internal/email-worker/adapters/driven/mail"
	"trackmate/internal/email-worker/core/services"
	"trackmate/internal/mylogger"
)

func Execute(ctx context.Context, mylog mylogger.Logger, cfg *config.Config) error {
	newCtx, stop := signal.NotifyContext(ctx, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mailer := mail.NewResendMailer(cfg.App.ResendAPIKey, cfg.App.EmailFrom, cfg.App.AppURL)
	worker := services.NewInviteWorker(mylog, mailer)

	consumer, err := bm.NewConsumer(newCtx, *cfg.RabbitMq, mylog, worker)
	if err != nil {
		mylog.Action("email_worker_failed").Error("Failed to connect to broker", err)
		return err
	}
	mylog.Action("email_worker_started").Info("Email worker is running")

	runErrCh := make(chan error, 1)
	go func() {
		runErrCh <- consumer.Run()
	}()

	select {
	case <-newCtx.Done():
		mylog.Action("shutdown_signal_received").Info("Shutdown signal received")
		return consumer.Close()
	case err := <-runErrCh:
		if err != nil {
			mylog.Action("email_worker_failed").Error("Worker failed unexpectedly", err)
			return err
		}
		mylog.Action("worker_stopped").Info("Worker exited normally")
		return nil
	}
}
