package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	checkConflictHandler "github.com/m04kA/VenueBookingService/internal/api/handlers/check_conflict"
	createBookingHandler "github.com/m04kA/VenueBookingService/internal/api/handlers/create_booking"
	deleteBookingHandler "github.com/m04kA/VenueBookingService/internal/api/handlers/delete_booking"
	getBookingHandler "github.com/m04kA/VenueBookingService/internal/api/handlers/get_booking"
	getClubBookingsHandler "github.com/m04kA/VenueBookingService/internal/api/handlers/get_club_bookings"
	getQuotaStatusHandler "github.com/m04kA/VenueBookingService/internal/api/handlers/get_quota_status"
	getVenueScheduleHandler "github.com/m04kA/VenueBookingService/internal/api/handlers/get_venue_schedule"
	updateBookingStatusHandler "github.com/m04kA/VenueBookingService/internal/api/handlers/update_booking_status"
	"github.com/m04kA/VenueBookingService/internal/api/middleware"
	"github.com/m04kA/VenueBookingService/internal/config"
	bookingRepo "github.com/m04kA/VenueBookingService/internal/infra/storage/booking"
	clubRepo "github.com/m04kA/VenueBookingService/internal/infra/storage/club"
	venueRepo "github.com/m04kA/VenueBookingService/internal/infra/storage/venue"
	"github.com/m04kA/VenueBookingService/internal/integrations/approvers"
	bookingsService "github.com/m04kA/VenueBookingService/internal/service/bookings"
	"github.com/m04kA/VenueBookingService/internal/service/conflicts"
	"github.com/m04kA/VenueBookingService/internal/service/quota"
	checkConflictUC "github.com/m04kA/VenueBookingService/internal/usecase/check_conflict"
	createBookingUC "github.com/m04kA/VenueBookingService/internal/usecase/create_booking"
	getQuotaStatusUC "github.com/m04kA/VenueBookingService/internal/usecase/get_quota_status"
	getVenueScheduleUC "github.com/m04kA/VenueBookingService/internal/usecase/get_venue_schedule"
	"github.com/m04kA/VenueBookingService/pkg/dbmetrics"
	"github.com/m04kA/VenueBookingService/pkg/logger"
	"github.com/m04kA/VenueBookingService/pkg/metrics"
	"github.com/m04kA/VenueBookingService/pkg/txmanager"
	"github.com/m04kA/VenueBookingService/pkg/venuelock"
)

type pendingNotifier interface {
	createBookingUC.Notifier
	Close() error
}

type collector interface {
	dbmetrics.Collector
	middleware.HTTPMetrics
	createBookingUC.Metrics
}

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting VenueBookingService...")
	log.Info("Configuration loaded from config.toml")

	rules, err := cfg.Policy.ToRules()
	if err != nil {
		log.Fatal("Invalid policy config: %v", err)
	}
	log.Info("Policy loaded (time_zone=%s, group_conflict_enabled=%t, co_curricular_limit=%d)",
		cfg.Policy.TimeZone, cfg.Policy.GroupConflictEnabled, cfg.Policy.CoCurricularSemesterLimit)

	// Метрики: без prometheus используется пустой сборщик
	var metricsCollector collector = metrics.Noop{}
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}
	stopMetricsCh := make(chan struct{})

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Блокировки площадок
	var locker createBookingUC.VenueLocker = venuelock.NoopLocker{}
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			// Блокировки деградируют, гонку закрывает ограничение в БД
			log.Warn("Redis is unavailable at %s: %v", cfg.Redis.Addr, err)
		}
		cancel()

		locker = venuelock.NewLocker(redisClient, cfg.Redis.LockTTL(), cfg.Redis.LockWait())
		log.Info("Venue locks enabled (redis=%s, ttl=%s)", cfg.Redis.Addr, cfg.Redis.LockTTL())
	} else {
		log.Info("Venue locks disabled, relying on database constraints")
	}

	// Уведомления администраторов
	var notifier pendingNotifier = approvers.NewLogNotifier(log)
	if cfg.RabbitMQ.Enabled {
		rabbit, err := approvers.Dial(
			cfg.RabbitMQ.URL,
			cfg.RabbitMQ.Exchange,
			cfg.RabbitMQ.RoutingKey,
			time.Duration(cfg.RabbitMQ.Timeout)*time.Second,
			log,
		)
		if err != nil {
			log.Warn("RabbitMQ is unavailable, pending notifications go to log: %v", err)
		} else {
			notifier = rabbit
			log.Info("Approver notifications enabled (exchange=%s, routing_key=%s)",
				cfg.RabbitMQ.Exchange, cfg.RabbitMQ.RoutingKey)
		}
	}
	defer notifier.Close()

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	venueRepository := venueRepo.NewRepository(wrappedDB)
	clubRepository := clubRepo.NewRepository(wrappedDB)

	// Инициализируем сервисы
	detector := conflicts.NewDetector(bookingRepository, cfg.Policy.GroupConflictEnabled, log)
	quotaCounter := quota.NewCounter(bookingRepository, cfg.Policy.QuotaLimits(), log)
	bookingSvc := bookingsService.NewService(bookingRepository, txMgr, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		venueRepository,
		clubRepository,
		detector,
		quotaCounter,
		rules,
		locker,
		notifier,
		txMgr,
		metricsCollector,
		log,
	)
	checkConflictUseCase := checkConflictUC.NewUseCase(venueRepository, clubRepository, detector, log)
	getQuotaStatusUseCase := getQuotaStatusUC.NewUseCase(quotaCounter, clubRepository, rules, log)
	getVenueScheduleUseCase := getVenueScheduleUC.NewUseCase(bookingRepository, venueRepository, rules, log)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	checkConflict := checkConflictHandler.NewHandler(checkConflictUseCase, log)
	getQuotaStatus := getQuotaStatusHandler.NewHandler(getQuotaStatusUseCase, log)
	getVenueSchedule := getVenueScheduleHandler.NewHandler(getVenueScheduleUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getClubBookings := getClubBookingsHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	deleteBooking := deleteBookingHandler.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.MetricsMiddleware(metricsCollector))

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Расписание площадки на день
	api.HandleFunc("/venues/{venueId}/schedule", getVenueSchedule.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID и X-User-Role)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Заявки клубов ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/conflicts", checkConflict.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/clubs/{clubId}/quota", getQuotaStatus.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/clubs/{clubId}/bookings", getClubBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// --- Администрирование ---
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}", deleteBooking.Handle).Methods(http.MethodDelete)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
