package main

import (
	"os"

	bookingshandler "fleetrent/internal/bookings/handler"
	bookingsrepository "fleetrent/internal/bookings/repository"
	bookingsservice "fleetrent/internal/bookings/service"
	bookingsvalidator "fleetrent/internal/bookings/validator"
	"fleetrent/internal/bookings/events"
	customershandler "fleetrent/internal/customers/handler"
	customersrepository "fleetrent/internal/customers/repository"
	customersservice "fleetrent/internal/customers/service"
	customersvalidator "fleetrent/internal/customers/validator"
	dashboardhandler "fleetrent/internal/dashboard/handler"
	dashboardservice "fleetrent/internal/dashboard/service"
	"fleetrent/internal/flows"
	flowscore "fleetrent/internal/flows/core"
	flowshandler "fleetrent/internal/flows/handler"
	flowsservice "fleetrent/internal/flows/service"
	identityhandler "fleetrent/internal/identity/handler"
	identitymw "fleetrent/internal/identity/middleware"
	identityrepository "fleetrent/internal/identity/repository"
	identityservice "fleetrent/internal/identity/service"
	unitshandler "fleetrent/internal/units/handler"
	unitsrepository "fleetrent/internal/units/repository"
	unitsservice "fleetrent/internal/units/service"
	unitsvalidator "fleetrent/internal/units/validator"
	"fleetrent/pkg/app"
	"fleetrent/pkg/config"
	"fleetrent/pkg/contracts"
	"fleetrent/pkg/kafka"
	kafkaconfig "fleetrent/pkg/kafka/config"
	kafkamiddleware "fleetrent/pkg/kafka/middleware"

	"github.com/joho/godotenv"
)

const ServiceName = "api"

func main() {
	_ = godotenv.Load()

	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting fleet rental API")

	publisher, producer := initPublisher(cfg)
	if producer != nil {
		defer func() {
			if err := producer.Close(); err != nil {
				cfg.Log.Error("Failed to close Kafka producer", "error", err)
			}
		}()
	}

	handlers := initHandlers(cfg, publisher)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handlers...)
	serverApp.Run()
}

// initPublisher wires the Kafka producer when a broker is configured.
// Without one, booking events are dropped.
func initPublisher(cfg *config.Config) (events.Publisher, *kafka.Producer) {
	if os.Getenv(kafkaconfig.EnvKafkaBrokers) == "" {
		cfg.Log.Info("No Kafka brokers configured, booking events disabled")
		return events.NoopPublisher{}, nil
	}

	kafkaCfg := kafkaconfig.Load()
	producer, err := kafka.NewProducer(kafkaCfg, kafkaCfg.BookingTopic, kafkaCfg.DLQTopic)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	producer.Use(kafkamiddleware.LoggingProducerMiddleware(cfg.Log))

	cfg.Log.Info("Kafka producer initialized", "topic", kafkaCfg.BookingTopic)
	return events.NewKafkaPublisher(producer, ServiceName), producer
}

func initHandlers(cfg *config.Config, publisher events.Publisher) []contracts.Handler {
	userRepo := identityrepository.NewMongoUserRepository(cfg)
	identitySvc := identityservice.NewIdentityService(userRepo, cfg)
	guard := identitymw.RequireAuth(identitySvc, cfg.Log)

	unitRepo := unitsrepository.NewMongoUnitRepository(cfg)
	customerRepo := customersrepository.NewMongoCustomerRepository(cfg)
	bookingRepo := bookingsrepository.NewMongoBookingRepository(cfg)
	lockRepo := bookingsrepository.NewBookingLockRepository(cfg)

	unitSvc := unitsservice.NewUnitService(
		unitRepo,
		bookingRepo,
		unitsvalidator.NewUnitValidator(cfg.Log),
		cfg,
	)
	customerSvc := customersservice.NewCustomerService(
		customerRepo,
		customersvalidator.NewCustomerValidator(cfg.Log),
		cfg,
	)
	bookingSvc := bookingsservice.NewBookingService(
		bookingRepo,
		lockRepo,
		unitSvc,
		customerSvc,
		publisher,
		bookingsvalidator.NewBookingValidator(cfg.Log),
		cfg,
	)
	dashboardSvc := dashboardservice.NewDashboardService(unitRepo, bookingRepo, cfg)

	engine := flowscore.NewEngine(
		flows.NewBookUnitFlow(customerSvc, bookingSvc),
	)
	flowSvc := flowsservice.NewFlowService(engine, cfg.Log)

	cfg.Log.Info("Services initialized", "database", cfg.MongoDatabaseName)

	return []contracts.Handler{
		identityhandler.NewIdentityHandler(identitySvc, cfg.Log),
		unitshandler.NewUnitHandler(unitSvc, guard, cfg.Log),
		customershandler.NewCustomerHandler(customerSvc, guard, cfg.Log),
		bookingshandler.NewBookingHandler(bookingSvc, guard, cfg.Log),
		dashboardhandler.NewDashboardHandler(dashboardSvc, guard, cfg.Log),
		flowshandler.NewFlowHandler(flowSvc, guard, cfg.Log),
	}
}
