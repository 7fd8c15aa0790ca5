package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"fleetrent/pkg/kafka"
	kafkaconfig "fleetrent/pkg/kafka/config"
	kafkamiddleware "fleetrent/pkg/kafka/middleware"
	"fleetrent/pkg/logger"
	"fleetrent/pkg/model"

	"github.com/joho/godotenv"
)

const ServiceName = "notifier"

// The notifier tails the booking topic and surfaces each lifecycle event.
// Delivery integrations (mail, SMS) hang off handleBookingEvent.
func main() {
	_ = godotenv.Load()

	log := logger.New(logger.Config{
		Level:     logger.INFO,
		Format:    logger.JSON,
		AddSource: true,
		Service:   ServiceName,
	})

	kafkaCfg := kafkaconfig.Load()

	consumer, err := kafka.NewConsumer(
		kafkaCfg,
		kafkaCfg.BookingTopic,
		kafkaCfg.ConsumerGroup,
		kafkaCfg.DLQTopic,
		handleBookingEvent(log),
	)
	if err != nil {
		log.Fatal("Failed to create Kafka consumer", "error", err)
	}
	consumer.Use(kafkamiddleware.LoggingConsumerMiddleware(log))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-shutdown
		log.Info("Shutdown signal received", "signal", sig)
		cancel()
	}()

	log.Info("Notifier started",
		"topic", kafkaCfg.BookingTopic,
		"group", kafkaCfg.ConsumerGroup,
	)

	if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("Consumer stopped with error", "error", err)
	}

	if err := consumer.Close(); err != nil {
		log.Error("Failed to close consumer", "error", err)
	}

	log.Info("Notifier stopped gracefully")
}

func handleBookingEvent(log *logger.Logger) kafka.MessageHandler {
	return func(ctx context.Context, msg kafka.Message) error {
		var event model.BookingEvent
		if err := msg.DecodeValue(&event); err != nil {
			return kafka.NewPermanentError("invalid booking event payload", err)
		}

		switch event.Type {
		case model.EventBookingCreated:
			log.Info("Booking confirmed notification",
				"booking_id", event.BookingID,
				"customer_id", event.CustomerID,
				"unit_id", event.UnitID,
				"start_date", event.StartDate,
				"total_price", event.TotalPrice,
			)
		case model.EventBookingCancelled:
			log.Info("Booking cancelled notification",
				"booking_id", event.BookingID,
				"customer_id", event.CustomerID,
			)
		case model.EventBookingUpdated, model.EventBookingDeleted:
			log.Info("Booking change notification",
				"type", event.Type,
				"booking_id", event.BookingID,
			)
		default:
			log.Warn("Unknown booking event type", "type", event.Type)
		}

		return nil
	}
}
