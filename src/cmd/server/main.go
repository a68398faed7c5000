package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"familygraph/src/adapters/http"
	"familygraph/src/helper/env"
	"familygraph/src/infra/kafka"
	"familygraph/src/infra/postgres"
	"familygraph/src/infra/redis"
	"familygraph/src/repositories"
	"familygraph/src/services/documents"
	"familygraph/src/services/events"
	"familygraph/src/services/family"
	"familygraph/src/services/timeline"

	"go.uber.org/fx"

	nethttp "net/http"
)

func main() {
	// Configurar logger
	log.SetOutput(os.Stdout)
	log.Println("Starting family graph API with Uber Fx...")

	app := fx.New(
		// Providers
		fx.Provide(
			newLogger,
			newReadWriteClient,
			newRedisClient,
			newKafkaClient,
			newMemberQueryRepository,
			newCachedMemberRepository,
			newMemberWriteRepository,
			newTimelineRepository,
			newDocumentRepository,
			newEventPublisher,
			newFamilyService,
			newTimelineService,
			newDocumentService,
			newServer,
		),

		// Invocations
		fx.Invoke(registerServerHooks),
	)

	// Start the application
	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	// Wait for app to exit gracefully
	<-app.Done()
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
	maxConnections := env.GetInt("DB_MAX_POOL_CONNECTIONS", 25)

	return postgres.NewReadWriteClient(dbReadHost, dbWriteHost, dbReadPort, dbWritePort, dbname, dbUser, dbPassword, maxConnections)
}

func newRedisClient() *redis.RedisClient {
	redisAddrs := env.MustGetString("REDIS_HOSTS")
	redisPoolSize := env.GetInt("REDIS_POOL_SIZE", 50)
	redisTTL := env.GetInt("REDIS_TTL_SECONDS", 300)

	return redis.NewRedisClient(redisAddrs, redisPoolSize, time.Duration(redisTTL)*time.Second)
}

func newKafkaClient() (*kafka.KafkaClient, error) {
	brokers := env.MustGetString("KAFKA_BROKERS")
	groupID := env.GetString("KAFKA_GROUP_ID", "family-graph-api")
	batchSize := env.GetInt("KAFKA_BATCH_SIZE", 100)

	return kafka.NewKafkaClient(brokers, groupID, batchSize)
}

func newMemberQueryRepository(client *postgres.ReadWriteClient) *repositories.MemberQueryRepository {
	return repositories.NewMemberQueryRepository(client.GetReadPool())
}

func newCachedMemberRepository(queryRepo *repositories.MemberQueryRepository, redisClient *redis.RedisClient) *repositories.CachedMemberRepository {
	return repositories.NewCachedMemberRepository(queryRepo, redisClient)
}

func newMemberWriteRepository(client *postgres.ReadWriteClient, cachedRepo *repositories.CachedMemberRepository) *repositories.MemberWriteRepository {
	return repositories.NewMemberWriteRepository(client.GetWritePool(), cachedRepo)
}

func newTimelineRepository(client *postgres.ReadWriteClient) *repositories.TimelineRepository {
	return repositories.NewTimelineRepository(client.GetReadPool(), client.GetWritePool())
}

func newDocumentRepository(client *postgres.ReadWriteClient) *repositories.DocumentRepository {
	return repositories.NewDocumentRepository(client.GetReadPool(), client.GetWritePool())
}

func newEventPublisher(logger *slog.Logger, kafkaClient *kafka.KafkaClient) *events.DomainEventPublisher {
	topic := env.GetString("KAFKA_DOMAIN_EVENTS_TOPIC", "family-graph.domain-events")
	return events.NewDomainEventPublisher(logger, kafkaClient, topic)
}

func newFamilyService(
	logger *slog.Logger,
	cachedRepo *repositories.CachedMemberRepository,
	queryRepo *repositories.MemberQueryRepository,
	writeRepo *repositories.MemberWriteRepository,
	publisher *events.DomainEventPublisher,
) *family.FamilyService {
	return family.NewFamilyService(logger, cachedRepo, queryRepo, writeRepo, publisher)
}

func newTimelineService(timelineRepo *repositories.TimelineRepository) *timeline.TimelineService {
	return timeline.NewTimelineService(timelineRepo)
}

func newDocumentService(documentRepo *repositories.DocumentRepository) *documents.DocumentService {
	return documents.NewDocumentService(documentRepo)
}

func newServer(
	logger *slog.Logger,
	familyService *family.FamilyService,
	timelineService *timeline.TimelineService,
	documentService *documents.DocumentService,
) *http.Server {
	port := env.GetInt("SERVER_PORT", 8888)
	adminToken := env.GetString("ADMIN_TOKEN", "")

	return http.NewServer(logger, port, adminToken, familyService, timelineService, documentService)
}

// registerServerHooks registers lifecycle hooks for the HTTP server
func registerServerHooks(lc fx.Lifecycle, srv *http.Server, client *postgres.ReadWriteClient) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			// Start server in a separate goroutine
			go func() {
				if err := srv.Start(); err != nil && err != nethttp.ErrServerClosed {
					log.Fatalf("Server failed: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			// Create timeout context for graceful shutdown
			shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()

			log.Println("Shutting down server...")
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Printf("Server forced to shutdown: %v", err)
				return err
			}

			client.Close()

			log.Println("Server exited gracefully")
			return nil
		},
	})
}
