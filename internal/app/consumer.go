package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/AlexKolonitsky/mifort-timesheet/internal/events"
	"github.com/AlexKolonitsky/mifort-timesheet/internal/mail"
	"github.com/AlexKolonitsky/mifort-timesheet/internal/messaging/kafka/consumer"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer consumes invite events and sends the invite mails.
func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	mailer, err := buildMailer(logger)
	if err != nil {
		return err
	}

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{kafkaBroker},
		Topic:          events.UserInviteRequestedTopic,
		GroupID:        "mifort-timesheet-user-invite",
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumeInviteRequests(ctx, reader, mailer, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}

func buildMailer(logger *zap.Logger) (mail.Mailer, error) {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		return mail.NewLogMailer(logger), nil
	}

	port := 587
	if p, err := strconv.Atoi(os.Getenv("SMTP_PORT")); err == nil && p > 0 {
		port = p
	}

	return mail.NewSMTPMailer(
		host,
		port,
		os.Getenv("SMTP_USERNAME"),
		os.Getenv("SMTP_PASSWORD"),
		os.Getenv("SMTP_FROM"),
		os.Getenv("APP_URL"),
	)
}
