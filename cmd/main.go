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

	ghandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelBookingHandler "event-slot-service/internal/api/handlers/cancel_booking"
	createDeviceHandler "event-slot-service/internal/api/handlers/create_device"
	createEventHandler "event-slot-service/internal/api/handlers/create_event"
	createReservationHandler "event-slot-service/internal/api/handlers/create_reservation"
	deleteDeviceHandler "event-slot-service/internal/api/handlers/delete_device"
	deleteEventHandler "event-slot-service/internal/api/handlers/delete_event"
	getAvailabilityHandler "event-slot-service/internal/api/handlers/get_availability"
	getEventHandler "event-slot-service/internal/api/handlers/get_event"
	getEventBookingsHandler "event-slot-service/internal/api/handlers/get_event_bookings"
	listDevicesHandler "event-slot-service/internal/api/handlers/list_devices"
	listEventsHandler "event-slot-service/internal/api/handlers/list_events"
	setEventEnabledHandler "event-slot-service/internal/api/handlers/set_event_enabled"
	updateDeviceHandler "event-slot-service/internal/api/handlers/update_device"
	updateEventHandler "event-slot-service/internal/api/handlers/update_event"
	"event-slot-service/internal/api/middleware"
	"event-slot-service/internal/config"
	bookingRepo "event-slot-service/internal/infra/storage/booking"
	deviceRepo "event-slot-service/internal/infra/storage/device"
	eventRepo "event-slot-service/internal/infra/storage/event"
	notifierClient "event-slot-service/internal/integrations/notifier"
	"event-slot-service/internal/jobs"
	bookingsService "event-slot-service/internal/service/bookings"
	devicesService "event-slot-service/internal/service/devices"
	eventsService "event-slot-service/internal/service/events"
	createReservationUC "event-slot-service/internal/usecase/create_reservation"
	getAvailabilityUC "event-slot-service/internal/usecase/get_availability"
	"event-slot-service/pkg/dbmetrics"
	"event-slot-service/pkg/logger"
	"event-slot-service/pkg/metrics"
	"event-slot-service/pkg/ratelimit"
	"event-slot-service/pkg/simpletxmanager"
	"event-slot-service/pkg/txmanager"
)

// realTimeProvider источник текущего времени для сервисов
type realTimeProvider struct{}

func (realTimeProvider) Now() time.Time { return time.Now() }

// noopReservationMetrics заглушка, когда метрики выключены
type noopReservationMetrics struct{}

func (noopReservationMetrics) IncReservation(string) {}

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

	log.Info("Starting event-slot-service...")
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

	// Клиент сервиса уведомлений
	notifier := notifierClient.NewClient(
		cfg.Notifier.URL,
		time.Duration(cfg.Notifier.Timeout)*time.Second,
		log,
	)
	log.Info("Notifier client initialized (url=%s timeout=%ds)", cfg.Notifier.URL, cfg.Notifier.Timeout)

	// Интерфейс transaction manager (используется в сервисах и usecases)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
		DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
	}

	// Инициализируем репозитории и transaction manager (с метриками или без)
	var (
		bookingRepository *bookingRepo.Repository
		eventRepository   *eventRepo.Repository
		deviceRepository  *deviceRepo.Repository
		txMgr             TxManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		eventRepository = eventRepo.NewRepository(wrappedDB)
		deviceRepository = deviceRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		eventRepository = eventRepo.NewRepository(db)
		deviceRepository = deviceRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	eventsSvc := eventsService.NewService(
		eventRepository,
		deviceRepository,
		bookingRepository,
		txMgr,
		log,
	)
	devicesSvc := devicesService.NewService(
		deviceRepository,
		bookingRepository,
		realTimeProvider{},
		log,
	)
	bookingsSvc := bookingsService.NewService(
		bookingRepository,
		eventRepository,
		deviceRepository,
		log,
	)

	// Инициализируем use cases
	createReservationUseCase := createReservationUC.NewUseCase(
		eventRepository,
		deviceRepository,
		bookingRepository,
		notifier,
		txMgr,
		log,
	)
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		eventRepository,
		deviceRepository,
		bookingRepository,
		log,
	)

	// Инициализируем handlers
	var reservationMetrics createReservationHandler.ReservationMetrics = noopReservationMetrics{}
	if cfg.Metrics.Enabled {
		reservationMetrics = metricsCollector
	}

	createEvent := createEventHandler.NewHandler(eventsSvc, log)
	getEvent := getEventHandler.NewHandler(eventsSvc, log)
	listEvents := listEventsHandler.NewHandler(eventsSvc, log)
	updateEvent := updateEventHandler.NewHandler(eventsSvc, log)
	deleteEvent := deleteEventHandler.NewHandler(eventsSvc, log)
	setEventEnabled := setEventEnabledHandler.NewHandler(eventsSvc, log)
	createDevice := createDeviceHandler.NewHandler(devicesSvc, log)
	listDevices := listDevicesHandler.NewHandler(devicesSvc, log)
	updateDevice := updateDeviceHandler.NewHandler(devicesSvc, log)
	deleteDevice := deleteDeviceHandler.NewHandler(devicesSvc, log)
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, reservationMetrics, log)
	getEventBookings := getEventBookingsHandler.NewHandler(bookingsSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingsSvc, log)

	// Пер-IP ограничитель для публичного создания заявок
	limiter := ratelimit.NewLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Список событий и карточка события
	api.HandleFunc("/events", listEvents.Handle).Methods(http.MethodGet)
	api.HandleFunc("/events/{eventId}", getEvent.Handle).Methods(http.MethodGet)

	// Проекция доступности слотов
	api.HandleFunc("/events/{eventId}/availability", getAvailability.Handle).Methods(http.MethodGet)

	// Создание заявки на бронирование (с ограничением частоты по IP)
	api.Handle("/events/{eventId}/reservations",
		limiter.Middleware(http.HandlerFunc(createReservation.Handle))).Methods(http.MethodPost)

	// ============================================================
	// ORGANIZER ROUTES (требуют X-Organizer-Token)
	// ============================================================

	organizer := api.PathPrefix("").Subrouter()
	organizer.Use(middleware.Auth(cfg.Auth.OrganizerToken, log))

	// --- События ---
	organizer.HandleFunc("/events", createEvent.Handle).Methods(http.MethodPost)
	organizer.HandleFunc("/events/{eventId}", updateEvent.Handle).Methods(http.MethodPut)
	organizer.HandleFunc("/events/{eventId}", deleteEvent.Handle).Methods(http.MethodDelete)
	organizer.HandleFunc("/events/{eventId}/enabled", setEventEnabled.Handle).Methods(http.MethodPatch)

	// --- Устройства ---
	organizer.HandleFunc("/devices", createDevice.Handle).Methods(http.MethodPost)
	organizer.HandleFunc("/devices", listDevices.Handle).Methods(http.MethodGet)
	organizer.HandleFunc("/devices/{deviceId}", updateDevice.Handle).Methods(http.MethodPut)
	organizer.HandleFunc("/devices/{deviceId}", deleteDevice.Handle).Methods(http.MethodDelete)

	// --- Бронирования ---
	organizer.HandleFunc("/events/{eventId}/bookings", getEventBookings.Handle).Methods(http.MethodGet)
	organizer.HandleFunc("/bookings/{bookingId}", cancelBooking.Handle).Methods(http.MethodDelete)

	// CORS и восстановление после паник поверх роутера
	handler := ghandlers.RecoveryHandler(ghandlers.RecoveryLogger(recoveryLogger{log}))(
		ghandlers.CORS(
			ghandlers.AllowedOrigins(cfg.CORS.AllowedOrigins),
			ghandlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete}),
			ghandlers.AllowedHeaders([]string{"Content-Type", "X-Organizer-Token"}),
		)(r),
	)

	// Фоновая сводка организатору
	digest := jobs.NewDigest(bookingRepository, eventRepository, deviceRepository, notifier, log)
	if cfg.Jobs.DigestEnabled {
		if err := digest.Start(cfg.Jobs.DigestSpec); err != nil {
			log.Fatal("Failed to start digest job: %v", err)
		}
	}

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
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

	// Останавливаем фоновые задачи и сбор метрик connection pool
	if cfg.Jobs.DigestEnabled {
		digest.Stop()
	}
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

// recoveryLogger адаптирует наш логгер под gorilla/handlers.RecoveryHandler
type recoveryLogger struct {
	log *logger.Logger
}

func (r recoveryLogger) Println(v ...interface{}) {
	r.log.Error("panic recovered: %v", fmt.Sprint(v...))
}
