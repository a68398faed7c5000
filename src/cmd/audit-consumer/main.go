package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"familygraph/src/adapters/kafka/consumers"
	"familygraph/src/helper/env"
	"familygraph/src/infra/kafka"
	"familygraph/src/infra/postgres"
	"familygraph/src/repositories"

	"go.uber.org/fx"
)

func main() {
	log.SetOutput(os.Stdout)
	log.Println("Starting audit consumer with Uber Fx...")

	app := fx.New(
		// Providers
		fx.Provide(
			newLogger,
			newReadWriteClient,
			newKafkaClient,
			newAuditRepository,
			newAuditConsumer,
		),

		// Invocations
		fx.Invoke(startConsumer),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := app.Start(ctx); err != nil {
		log.Fatalf("Failed to start consumer application: %v", err)
	}

	// Wait for interrupt signal to gracefully shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	log.Println("Shutting down audit consumer...")

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer stopCancel()

	if err := app.Stop(stopCtx); err != nil {
		log.Printf("Failed to stop application gracefully: %v", err)
	}

	log.Println("Audit consumer shutdown complete")
}

func newLogger() *slog.Logger {
	logLevel := env.GetString("LOG_LEVEL", "info")
	var level slog.Level

	switch logLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	logger := slog.New(h)
	slog.SetDefault(logger)
	return logger
}

func newReadWriteClient() (*postgres.ReadWriteClient, error) {
	dbReadHost := env.MustGetString("DB_READ_HOST")
	dbWriteHost := env.MustGetString("DB_WRITE_HOST")
	dbReadPort := env.GetString("DB_READ_PORT", "5432")
	dbWritePort := env.GetString("DB_WRITE_PORT", "5432")
	dbname := env.MustGetString("DB_NAME")
	dbUser := env.MustGetString("DB_USER")
	dbPassword := env.MustGetString("DB_PASSWORD")
	maxConnections := env.GetInt("DB_MAX_POOL_CONNECTIONS", 10)

	return postgres.NewReadWriteClient(dbReadHost, dbWriteHost, dbReadPort, dbWritePort, dbname, dbUser, dbPassword, maxConnections)
}

func newKafkaClient() (*kafka.KafkaClient, error) {
	brokers := env.MustGetString("KAFKA_BROKERS")
	groupID := env.GetString("KAFKA_GROUP_ID", "family-graph-audit")
	batchSize := env.GetInt("KAFKA_BATCH_SIZE", 200)

	return kafka.NewKafkaClient(brokers, groupID, batchSize)
}

func newAuditRepository(client *postgres.ReadWriteClient) *repositories.AuditRepository {
	return repositories.NewAuditRepository(client.GetWritePool())
}

func newAuditConsumer(
	logger *slog.Logger,
	kafkaClient *kafka.KafkaClient,
	auditRepository *repositories.AuditRepository,
) *consumers.AuditConsumer {
	topic := env.GetString("KAFKA_DOMAIN_EVENTS_TOPIC", "family-graph.domain-events")
	return consumers.NewAuditConsumer(logger, kafkaClient, auditRepository, topic)
}

func startConsumer(lc fx.Lifecycle, consumer *consumers.AuditConsumer, kafkaClient *kafka.KafkaClient, client *postgres.ReadWriteClient) {
	consumerCtx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := consumer.Start(consumerCtx); err != nil {
					log.Printf("Audit consumer stopped with error: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			cancel()

			if err := kafkaClient.Close(); err != nil {
				log.Printf("Failed to close kafka client: %v", err)
			}

			client.Close()
			return nil
		},
	})
}
