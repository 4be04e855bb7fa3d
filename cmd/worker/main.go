package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/unclebandit/fitkitchen-backend/internal/config"
	"github.com/unclebandit/fitkitchen-backend/internal/queue"
	"github.com/unclebandit/fitkitchen-backend/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, relying on OS environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	if !cfg.Queue.Enabled() {
		log.Fatal("AMQP_URL is not set; the worker needs RabbitMQ")
	}

	q, err := queue.DialAMQP(cfg.Queue.AMQPURL)
	if err != nil {
		log.Fatal(err)
	}
	defer q.Close()

	notifier := service.NewNotifier(cfg.Queue.WelcomeTemplate, service.LogSender)
	if err := q.Subscribe(cfg.Queue.Topic, notifier.HandleEvent); err != nil {
		log.Fatal(err)
	}

	log.Printf("Worker running, waiting for events on %s...", cfg.Queue.Topic)
	select {
	case <-ctx.Done():
		log.Println("Worker shutting down")
	case err := <-q.NotifyClose():
		log.Fatalf("RabbitMQ connection closed: %v", err)
	}
}
