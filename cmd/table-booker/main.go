package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tablebooker/internal/app"
	"tablebooker/internal/booking"
	"tablebooker/internal/chat/line"
	"tablebooker/internal/config"
	"tablebooker/internal/http-server/handlers/booking/createBooking"
	"tablebooker/internal/http-server/handlers/booking/getSchedule"
	"tablebooker/internal/http-server/handlers/payment/confirmPayment"
	"tablebooker/internal/http-server/handlers/payment/createIntent"
	"tablebooker/internal/http-server/handlers/payment/createQRPayment"
	"tablebooker/internal/http-server/handlers/webhook/lineWebhook"
	"tablebooker/internal/http-server/middleware/mwauth"
	"tablebooker/internal/http-server/middleware/mwlogger"
	"tablebooker/internal/lib/logger/handlers/slogpretty"
	"tablebooker/internal/lib/logger/sl"
	"tablebooker/internal/payment/paypay"
	"tablebooker/internal/payment/stripepay"
	"tablebooker/internal/storage/postgres"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)

	log.Info("Starting table booker", slog.String("env", cfg.Env))
	log.Debug("Debug messages are enabled")

	storage, err := postgres.InitDB(&cfg.Database)
	if err != nil {
		log.Error("failed to init storage", sl.Err(err))
		os.Exit(1)
	}

	migrator, err := app.NewMigrator(storage.DB, cfg.Database.MigrationsPath)
	if err != nil {
		log.Error("failed to init migrator", sl.Err(err))
		os.Exit(1)
	}

	if err = migrator.Run(); err != nil {
		log.Error("failed to apply migrations", sl.Err(err))
		os.Exit(1)
	}

	payPayClient := paypay.New(cfg.PayPay)
	stripeClient := stripepay.New(cfg.Stripe.SecretKey)
	lineClient := line.New(cfg.Line)

	confirmer := booking.NewConfirmer(log, storage, payPayClient)

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(mwlogger.New(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)

	router.Group(func(r chi.Router) {
		r.Use(mwauth.New())

		r.Post("/bookings", createBooking.New(log, storage))
		r.Post("/bookings/{id}/payment/qr", createQRPayment.New(log, storage, payPayClient))
		r.Post("/bookings/{id}/confirm", confirmPayment.New(log, confirmer))
		r.Post("/payments/intent", createIntent.New(log, stripeClient))
	})

	router.Get("/schedule", getSchedule.New(log, storage))
	router.Post("/webhooks/line", lineWebhook.New(log, cfg.Line.ChannelSecret, storage, lineClient))

	log.Info("starting server", slog.String("address", cfg.HTTPServer.Address))

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT, os.Interrupt)

	go func() {
		if err = srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("failed to start server", sl.Err(err))
			stop <- syscall.SIGTERM
		}
	}()

	sign := <-stop

	log.Info("application stopping", slog.String("signal", sign.String()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err = srv.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to shutdown server", sl.Err(err))
	}

	log.Info("application stopped")

	if err = storage.Close(); err != nil {
		log.Error("failed to close postgres connection", sl.Err(err))
	}

	log.Info("postgres connection closed")
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = setupPrettySlog()
	case envDev:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}

	return log
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	h := opts.NewPrettyHandler(os.Stdout)

	return slog.New(h)
}
