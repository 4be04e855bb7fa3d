// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/unclebandit/fitkitchen-backend/internal/config"
	"github.com/unclebandit/fitkitchen-backend/internal/controller"
	"github.com/unclebandit/fitkitchen-backend/internal/handler"
	"github.com/unclebandit/fitkitchen-backend/internal/queue"
	"github.com/unclebandit/fitkitchen-backend/internal/repository"
	"github.com/unclebandit/fitkitchen-backend/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, relying on OS environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	store, closeStore, err := repository.Open(cfg.Storage)
	if err != nil {
		log.Fatalf("failed to open customer store: %v", err)
	}
	defer closeStore()

	if err := store.EnsureInitialized(); err != nil {
		log.Fatalf("failed to initialize customer store: %v", err)
	}

	events, closeQueue := openQueue(cfg.Queue)
	defer closeQueue()

	customerService := service.NewCustomerService(store, events, cfg.Queue.Topic)
	customerController := &controller.CustomerController{
		CustomerService: customerService,
	}

	router := handler.NewRouter(customerController)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("🚀 Server running on %s (store: %s)", cfg.Server.Addr, cfg.Storage.Backend)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
	log.Println("Server stopped")
}

// openQueue publishes to RabbitMQ when configured; otherwise events go to an
// in-process queue with the welcome notifier subscribed directly.
func openQueue(cfg config.QueueConfig) (queue.Queue, func()) {
	if cfg.Enabled() {
		q, err := queue.DialAMQP(cfg.AMQPURL)
		if err == nil {
			log.Printf("📤 Publishing customer events to RabbitMQ queue %s", cfg.Topic)
			return q, func() { q.Close() }
		}
		log.Printf("⚠️ %v, falling back to in-memory queue", err)
	}

	q := queue.NewInMemoryQueue()
	notifier := service.NewNotifier(cfg.WelcomeTemplate, service.LogSender)
	queue.StartNotificationSubscriber(q, cfg.Topic, notifier.HandleEvent)
	return q, func() {}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
