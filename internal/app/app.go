package app

import (
	"context"
	"database/sql"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	libdb "smartpark/libs/db"
	libredis "smartpark/libs/redis"

	appconfig "smartpark/internal/config"
	httpserver "smartpark/internal/http"
	"smartpark/internal/http/handlers"
	"smartpark/internal/http/middleware"
	"smartpark/internal/password"
	redisstore "smartpark/internal/redis"
	"smartpark/internal/repository"
	"smartpark/internal/service"
	"smartpark/internal/ws"
)

// App wires dependencies for the smartpark service.
type App struct {
	server      *httpserver.Server
	db          *sql.DB
	redisClient *redis.Client
	logger      *zap.Logger
}

// New constructs the application graph.
func New(cfg *appconfig.Config, logger *zap.Logger) (*App, error) {
	sqlDB, err := libdb.NewPostgresDB(cfg.Database.DSN, libdb.Options{
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
	})
	if err != nil {
		return nil, err
	}

	// Redis is optional; without it the engine simply skips the
	// occupancy cache.
	var redisClient *redis.Client
	var occupancy *redisstore.OccupancyStore
	if cfg.Redis.Addr != "" {
		redisClient, err = libredis.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			sqlDB.Close()
			return nil, err
		}
		occupancy = redisstore.NewOccupancyStore(redisClient, cfg.Parking.OccupancyTTL)
	}

	userRepo := repository.NewUserRepository(sqlDB)
	slotRepo := repository.NewSlotRepository(sqlDB)
	carRepo := repository.NewCarRepository(sqlDB)
	sessionRepo := repository.NewSessionRepository(sqlDB)
	paymentRepo := repository.NewPaymentRepository(sqlDB)
	store := repository.NewStore(sqlDB)

	hub := ws.NewHub(logger)

	hasher := password.NewBcryptHasher(0)
	tokenSvc := service.NewTokenService(cfg.JWT.Secret, cfg.JWTExpiration())
	authSvc := service.NewAuthService(userRepo, hasher, tokenSvc, logger)
	slotsSvc := service.NewSlotsService(slotRepo, sessionRepo, logger)
	carsSvc := service.NewCarsService(carRepo)
	parkingSvc := service.NewParkingService(store, occupancy, hub, cfg.Parking.HourlyRate, logger)
	paymentsSvc := service.NewPaymentsService(paymentRepo)

	authHandlers := handlers.NewAuthHandlers(authSvc, logger)
	slotHandlers := handlers.NewSlotHandlers(slotsSvc)
	carHandlers := handlers.NewCarHandlers(carsSvc)
	parkingHandlers := handlers.NewParkingHandlers(parkingSvc, logger)
	paymentHandlers := handlers.NewPaymentHandlers(paymentsSvc)

	routes := httpserver.Routes{
		Register: authHandlers.Register,
		Login:    authHandlers.Login,
		Me:       authHandlers.Me,

		SlotsList:  slotHandlers.List,
		SlotCreate: slotHandlers.Create,
		SlotDelete: slotHandlers.Delete,

		CarRegister: carHandlers.Register,
		CarsList:    carHandlers.List,

		Entry:          parkingHandlers.Entry,
		Exit:           parkingHandlers.Exit,
		ActiveSessions: parkingHandlers.ActiveSessions,

		PaymentsList: paymentHandlers.List,
		PaymentGet:   paymentHandlers.Get,
		DailyReport:  paymentHandlers.Daily,

		SlotFeed: ws.Handler(hub, logger),
		Health:   handlers.NewHealthHandler(),
	}

	router := httpserver.NewRouter(routes, middleware.Auth(tokenSvc))
	server := httpserver.NewServer(cfg.HTTPAddress(), router, logger)

	return &App{
		server:      server,
		db:          sqlDB,
		redisClient: redisClient,
		logger:      logger,
	}, nil
}

// Run starts serving HTTP traffic until context cancellation.
func (a *App) Run(ctx context.Context) error {
	return a.server.Run(ctx)
}

// Close releases acquired resources.
func (a *App) Close() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn("failed to close db", zap.Error(err))
		}
	}
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warn("failed to close redis", zap.Error(err))
		}
	}
}
