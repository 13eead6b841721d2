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

	cancelBookingHandler "github.com/JoeyBiino/Siino-Client-Portal/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/JoeyBiino/Siino-Client-Portal/internal/api/handlers/create_booking"
	createPublicBookingHandler "github.com/JoeyBiino/Siino-Client-Portal/internal/api/handlers/create_public_booking"
	getAvailableSlotsHandler "github.com/JoeyBiino/Siino-Client-Portal/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/JoeyBiino/Siino-Client-Portal/internal/api/handlers/get_booking"
	getClientBookingsHandler "github.com/JoeyBiino/Siino-Client-Portal/internal/api/handlers/get_client_bookings"
	getTeamBookingsHandler "github.com/JoeyBiino/Siino-Client-Portal/internal/api/handlers/get_team_bookings"
	listServicesHandler "github.com/JoeyBiino/Siino-Client-Portal/internal/api/handlers/list_services"
	resolvePortalAccessHandler "github.com/JoeyBiino/Siino-Client-Portal/internal/api/handlers/resolve_portal_access"
	updateBookingStatusHandler "github.com/JoeyBiino/Siino-Client-Portal/internal/api/handlers/update_booking_status"
	"github.com/JoeyBiino/Siino-Client-Portal/internal/api/middleware"
	"github.com/JoeyBiino/Siino-Client-Portal/internal/config"
	availabilityRepo "github.com/JoeyBiino/Siino-Client-Portal/internal/infra/storage/availability"
	blockedTimeRepo "github.com/JoeyBiino/Siino-Client-Portal/internal/infra/storage/blockedtime"
	bookingRepo "github.com/JoeyBiino/Siino-Client-Portal/internal/infra/storage/booking"
	clientRepo "github.com/JoeyBiino/Siino-Client-Portal/internal/infra/storage/client"
	serviceRepo "github.com/JoeyBiino/Siino-Client-Portal/internal/infra/storage/servicecatalog"
	bookingsService "github.com/JoeyBiino/Siino-Client-Portal/internal/service/bookings"
	createBookingUC "github.com/JoeyBiino/Siino-Client-Portal/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/JoeyBiino/Siino-Client-Portal/internal/usecase/get_available_slots"
	"github.com/JoeyBiino/Siino-Client-Portal/pkg/dbmetrics"
	"github.com/JoeyBiino/Siino-Client-Portal/pkg/logger"
	"github.com/JoeyBiino/Siino-Client-Portal/pkg/metrics"
	"github.com/JoeyBiino/Siino-Client-Portal/pkg/simpletxmanager"
	"github.com/JoeyBiino/Siino-Client-Portal/pkg/txmanager"
)

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

	log.Info("Starting Siino-Client-Portal...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

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

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository      *bookingRepo.Repository
		serviceRepository      *serviceRepo.Repository
		availabilityRepository *availabilityRepo.Repository
		blockedTimeRepository  *blockedTimeRepo.Repository
		clientRepository       *clientRepo.Repository
	)

	// Интерфейс transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		serviceRepository = serviceRepo.NewRepository(wrappedDB)
		availabilityRepository = availabilityRepo.NewRepository(wrappedDB)
		blockedTimeRepository = blockedTimeRepo.NewRepository(wrappedDB)
		clientRepository = clientRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		serviceRepository = serviceRepo.NewRepository(db)
		availabilityRepository = availabilityRepo.NewRepository(db)
		blockedTimeRepository = blockedTimeRepo.NewRepository(db)
		clientRepository = clientRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		clientRepository,
		log,
	)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		serviceRepository,
		availabilityRepository,
		blockedTimeRepository,
		log,
	)

	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		serviceRepository,
		blockedTimeRepository,
		clientRepository,
		txMgr,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, serviceRepository, log)
	listServices := listServicesHandler.NewHandler(serviceRepository, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	createPublicBooking := createPublicBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	resolvePortalAccess := resolvePortalAccessHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getClientBookings := getClientBookingsHandler.NewHandler(bookingSvc, log)
	getTeamBookings := getTeamBookingsHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступные слоты для бронирования
	api.HandleFunc("/teams/{teamId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Каталог активных услуг команды
	api.HandleFunc("/teams/{teamId}/services",
		listServices.Handle).Methods(http.MethodGet)

	// Гостевое бронирование (resolve-or-create клиента)
	api.HandleFunc("/public/bookings",
		createPublicBooking.Handle).Methods(http.MethodPost)

	// Обмен кода портала на идентичность клиента
	api.HandleFunc("/portal-access/{portalCode}",
		resolvePortalAccess.Handle).Methods(http.MethodGet)

	// ============================================================
	// PORTAL ROUTES (требуют X-Client-ID header)
	// ============================================================

	portal := api.PathPrefix("").Subrouter()
	portal.Use(middleware.Auth)

	// Создание бронирования портальным клиентом
	portal.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	portal.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена бронирования
	portal.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// История бронирований клиента
	portal.HandleFunc("/clients/{clientId}/bookings", getClientBookings.Handle).Methods(http.MethodGet)

	// ============================================================
	// STAFF ROUTES (доступ закрывает upstream dashboard gateway)
	// ============================================================

	// Бронирования команды за период
	api.HandleFunc("/teams/{teamId}/bookings", getTeamBookings.Handle).Methods(http.MethodGet)

	// Смена статуса бронирования
	api.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

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
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

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
