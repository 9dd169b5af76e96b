package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"stayhub/internal/app/commands"
	availabilityapp "stayhub/internal/app/handlers/availability"
	bookingapp "stayhub/internal/app/handlers/booking"
	"stayhub/internal/app/middleware"
	appoutbox "stayhub/internal/app/outbox"
	"stayhub/internal/app/queries"
	"stayhub/internal/app/uow"
	domainavailability "stayhub/internal/domain/availability"
	domainreservation "stayhub/internal/domain/reservation"
	domainresource "stayhub/internal/domain/resource"
	"stayhub/internal/infra/broker/kafka"
	"stayhub/internal/infra/config"
	mongodb "stayhub/internal/infra/db/mongo"
	ginserver "stayhub/internal/infra/http/gin"
	"stayhub/internal/infra/notify"
	"stayhub/internal/infra/obs"
	infraoutbox "stayhub/internal/infra/outbox"
	"stayhub/internal/infra/storage/memory"
	redisstore "stayhub/internal/infra/storage/redis"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "configuration error:", err)
		os.Exit(1)
	}
	logger := obs.NewLogger(cfg.Env)

	app, err := buildApplication(ctx, cfg, logger)
	if err != nil {
		logger.Error("startup failed", "error", err)
		os.Exit(1)
	}
	defer app.close()

	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, obs.HealthHandlers{
		ReadyCheck: app.readyCheck,
	}, app.handlers)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr, "storage", cfg.StorageMode)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("HTTP server stopped")
}

type application struct {
	handlers ginserver.Handlers
	cleanup  []func()
	ready    func(ctx context.Context) error
}

func (a *application) close() {
	for i := len(a.cleanup) - 1; i >= 0; i-- {
		a.cleanup[i]()
	}
}

func (a *application) readyCheck(ctx context.Context) error {
	if a.ready == nil {
		return nil
	}
	return a.ready(ctx)
}

func buildApplication(ctx context.Context, cfg config.Config, logger *slog.Logger) (*application, error) {
	app := &application{}

	var (
		uowFactory  uow.UoWFactory
		outboxStore appoutbox.Outbox
	)

	switch cfg.StorageMode {
	case "mongo":
		client, err := mongodb.New(cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, fmt.Errorf("mongo connect: %w", err)
		}
		uowFactory = mongodb.Factory{
			DB:              client.DB,
			ReservationRepo: mongodb.NewReservationRepository(client.DB),
			BlockRepo:       mongodb.NewBlockRepository(client.DB),
			Registry:        mongodb.NewResourceRegistry(client.DB),
		}
		store := infraoutbox.NewStore(client.DB)
		outboxStore = store
		app.ready = client.Ping

		if len(cfg.KafkaBrokers) > 0 {
			producer, err := kafka.NewProducer(cfg.KafkaBrokers, nil)
			if err != nil {
				return nil, fmt.Errorf("kafka producer: %w", err)
			}
			app.cleanup = append(app.cleanup, func() { _ = producer.Close() })
			worker := &infraoutbox.Worker{
				Store:       store,
				Producer:    producer,
				Logger:      logger,
				Interval:    cfg.OutboxPollInterval,
				TopicPrefix: cfg.KafkaTopicPrefix,
				Backoff:     cfg.RetryBackoff,
			}
			go func() {
				if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
					logger.Error("outbox worker stopped", "error", err)
				}
			}()
			startNotificationConsumer(ctx, cfg, logger, app)
		}
	default:
		registry := memory.NewResourceRegistry()
		if err := seedResources(registry, logger); err != nil {
			return nil, err
		}
		store := memory.NewStore()
		uowFactory = memory.Factory{Store: store, Registry: registry}
		outboxStore = memory.NewOutbox()
	}

	var idStore middleware.IdempotencyStore
	if cfg.RedisAddr != "" {
		client, err := redisstore.NewClient(cfg.RedisAddr)
		if err != nil {
			return nil, fmt.Errorf("redis connect: %w", err)
		}
		app.cleanup = append(app.cleanup, func() { _ = client.Close() })
		idStore = redisstore.NewIdempotencyStore(client, cfg.IdempotencyTTL)
	} else {
		idStore = memory.NewIdempotencyStore(cfg.IdempotencyTTL)
	}

	encoder := appoutbox.JSONEventEncoder{}

	commandBus := commands.NewInMemoryBus()
	commands.RegisterHandler(commandBus, bookingapp.RequestReservationCommand{}.Key(), &bookingapp.RequestReservationHandler{
		UoWFactory: uowFactory,
		Outbox:     outboxStore,
		Encoder:    encoder,
	})
	commands.RegisterHandler(commandBus, bookingapp.TransitionReservationCommand{}.Key(), &bookingapp.TransitionReservationHandler{
		Outbox:  outboxStore,
		Encoder: encoder,
		Logger:  logger,
	})
	commands.RegisterHandler(commandBus, bookingapp.BookSlotCommand{}.Key(), &bookingapp.BookSlotHandler{
		Outbox:  outboxStore,
		Encoder: encoder,
	})
	commands.RegisterHandler(commandBus, availabilityapp.BlockPeriodCommand{}.Key(), &availabilityapp.BlockPeriodHandler{
		Outbox:  outboxStore,
		Encoder: encoder,
	})
	commands.RegisterHandler(commandBus, availabilityapp.UnblockPeriodCommand{}.Key(), &availabilityapp.UnblockPeriodHandler{
		Outbox:  outboxStore,
		Encoder: encoder,
	})

	queryBus := queries.NewInMemoryBus()
	queries.RegisterHandler(queryBus, availabilityapp.CheckAvailabilityQuery{}.Key(), &availabilityapp.CheckAvailabilityHandler{
		UoWFactory: uowFactory,
	})
	queries.RegisterHandler(queryBus, availabilityapp.GetCalendarQuery{}.Key(), &availabilityapp.GetCalendarHandler{
		UoWFactory: uowFactory,
	})
	queries.RegisterHandler(queryBus, availabilityapp.GetSlotsQuery{}.Key(), &availabilityapp.GetSlotsHandler{
		UoWFactory:   uowFactory,
		SlotDuration: cfg.SlotDuration,
	})
	queries.RegisterHandler(queryBus, availabilityapp.GetSummaryQuery{}.Key(), &availabilityapp.GetSummaryHandler{
		UoWFactory:     uowFactory,
		CommissionRate: cfg.CommissionRate,
	})
	queries.RegisterHandler(queryBus, bookingapp.ListRequesterReservationsQuery{}.Key(), &bookingapp.ListRequesterReservationsHandler{
		UoWFactory: uowFactory,
	})

	commandBusWithMiddleware := middleware.ChainCommands(
		commandBus,
		middleware.Idempotency(idStore, nil,
			domainreservation.ErrConflict,
			domainavailability.ErrSlotUnavailable,
		),
		middleware.Transaction(uowFactory, nil),
		middleware.OutboxFlush(outboxStore),
	)
	queryBusWithMiddleware := middleware.ChainQueries(queryBus)

	app.handlers = ginserver.Handlers{
		Reservation: ginserver.ReservationHandler{
			Commands: commandBusWithMiddleware,
			Queries:  queryBusWithMiddleware,
		},
		Availability: ginserver.AvailabilityHandler{
			Commands: commandBusWithMiddleware,
			Queries:  queryBusWithMiddleware,
		},
	}
	return app, nil
}

func startNotificationConsumer(ctx context.Context, cfg config.Config, logger *slog.Logger, app *application) {
	listener := &notify.Listener{
		Notifier: notify.LogNotifier{Logger: logger},
		Logger:   logger,
	}
	consumer, err := kafka.NewConsumer(cfg.KafkaBrokers, "stayhub-notify", nil, listener)
	if err != nil {
		logger.Warn("notification consumer disabled", "error", err)
		return
	}
	app.cleanup = append(app.cleanup, func() { _ = consumer.Close() })
	topic := cfg.KafkaTopicPrefix + "reservation.events.v1"
	go func() {
		if err := consumer.Run(ctx, []string{topic}); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("notification consumer stopped", "error", err)
		}
	}()
}

type resourceFixture struct {
	ID          string `json:"id"`
	Kind        string `json:"kind"`
	OwnerID     string `json:"owner_id"`
	Granularity string `json:"granularity"`
}

// seedResources loads the memory registry from RESOURCE_FIXTURES, a JSON
// array of resources. Without fixtures the registry starts empty and every
// scheduling call 404s, which is the honest state for a blank install.
func seedResources(registry *memory.ResourceRegistry, logger *slog.Logger) error {
	path := os.Getenv("RESOURCE_FIXTURES")
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read resource fixtures: %w", err)
	}
	var fixtures []resourceFixture
	if err := json.Unmarshal(data, &fixtures); err != nil {
		return fmt.Errorf("parse resource fixtures: %w", err)
	}
	for _, f := range fixtures {
		registry.Add(&domainresource.Resource{
			ID:          domainresource.ResourceID(f.ID),
			Kind:        domainresource.Kind(f.Kind),
			OwnerID:     f.OwnerID,
			Granularity: domainresource.Granularity(f.Granularity),
		})
	}
	logger.Info("resource fixtures loaded", "count", len(fixtures))
	return nil
}
