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

	cancelBookingHandler "github.com/m04kA/SMC-ConsultationService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-ConsultationService/internal/api/handlers/create_booking"
	getAvailableDatesHandler "github.com/m04kA/SMC-ConsultationService/internal/api/handlers/get_available_dates"
	getAvailableSlotsHandler "github.com/m04kA/SMC-ConsultationService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-ConsultationService/internal/api/handlers/get_booking"
	listBookingsHandler "github.com/m04kA/SMC-ConsultationService/internal/api/handlers/list_bookings"
	listConsultationsHandler "github.com/m04kA/SMC-ConsultationService/internal/api/handlers/list_consultations"
	manageConsultationsHandler "github.com/m04kA/SMC-ConsultationService/internal/api/handlers/manage_consultations"
	manageRulesHandler "github.com/m04kA/SMC-ConsultationService/internal/api/handlers/manage_rules"
	updateBookingStatusHandler "github.com/m04kA/SMC-ConsultationService/internal/api/handlers/update_booking_status"
	"github.com/m04kA/SMC-ConsultationService/internal/api/middleware"
	"github.com/m04kA/SMC-ConsultationService/internal/config"
	slotscache "github.com/m04kA/SMC-ConsultationService/internal/infra/cache"
	bookingRepo "github.com/m04kA/SMC-ConsultationService/internal/infra/storage/booking"
	consultationRepo "github.com/m04kA/SMC-ConsultationService/internal/infra/storage/consultation"
	ruleRepo "github.com/m04kA/SMC-ConsultationService/internal/infra/storage/rule"
	notifierClient "github.com/m04kA/SMC-ConsultationService/internal/integrations/notifier"
	paymentsClient "github.com/m04kA/SMC-ConsultationService/internal/integrations/payments"
	bookingsService "github.com/m04kA/SMC-ConsultationService/internal/service/bookings"
	consultationsService "github.com/m04kA/SMC-ConsultationService/internal/service/consultations"
	rulesService "github.com/m04kA/SMC-ConsultationService/internal/service/rules"
	createBookingUC "github.com/m04kA/SMC-ConsultationService/internal/usecase/create_booking"
	getAvailableDatesUC "github.com/m04kA/SMC-ConsultationService/internal/usecase/get_available_dates"
	getAvailableSlotsUC "github.com/m04kA/SMC-ConsultationService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-ConsultationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ConsultationService/pkg/logger"
	"github.com/m04kA/SMC-ConsultationService/pkg/metrics"
	"github.com/m04kA/SMC-ConsultationService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-ConsultationService/pkg/txmanager"
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

	log.Info("Starting SMC-ConsultationService...")
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

	// Инициализируем кэш слотов (если включен)
	var cache *slotscache.SlotsCache
	if cfg.Cache.Enabled {
		cache, err = slotscache.NewSlotsCache(cfg.Cache.Addr, time.Duration(cfg.Cache.TTLSeconds)*time.Second)
		if err != nil {
			log.Fatal("Failed to connect to slots cache: %v", err)
		}
		defer cache.Close()
		log.Info("Slots cache enabled (addr=%s, ttl=%ds)", cfg.Cache.Addr, cfg.Cache.TTLSeconds)
	}

	// Инициализируем интеграционных клиентов (если включены)
	var notifier *notifierClient.Client
	if cfg.Notifications.Enabled {
		notifier = notifierClient.NewClient(
			cfg.Notifications.URL,
			time.Duration(cfg.Notifications.Timeout)*time.Second,
			log,
		)
		log.Info("Notification client initialized (url=%s, timeout=%ds)",
			cfg.Notifications.URL, cfg.Notifications.Timeout)
	}

	var paymentsSvc *paymentsClient.Client
	if cfg.Payments.Enabled {
		paymentsSvc = paymentsClient.NewClient(
			cfg.Payments.URL,
			time.Duration(cfg.Payments.Timeout)*time.Second,
			log,
		)
		log.Info("Payments client initialized (url=%s, timeout=%ds)",
			cfg.Payments.URL, cfg.Payments.Timeout)
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository      *bookingRepo.Repository
		ruleRepository         *ruleRepo.Repository
		consultationRepository *consultationRepo.Repository
	)

	// Интерфейс transaction manager (используется в use case создания бронирования)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		ruleRepository = ruleRepo.NewRepository(wrappedDB)
		consultationRepository = consultationRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		ruleRepository = ruleRepo.NewRepository(db)
		consultationRepository = consultationRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Кэш и интеграции опциональны: передаем nil, если выключены.
	// Интерфейсы в контрактах принимают типизированный nil без паник,
	// поэтому приводим к nil интерфейсам явно.
	var (
		slotsCacheForSlots   getAvailableSlotsUC.SlotsCache
		slotsCacheForCreate  createBookingUC.SlotsCache
		slotsCacheForService bookingsService.SlotsCache
		notifierForCreate    createBookingUC.Notifier
		notifierForService   bookingsService.Notifier
		paymentsForCreate    createBookingUC.PaymentsClient
	)
	if cache != nil {
		slotsCacheForSlots = cache
		slotsCacheForCreate = cache
		slotsCacheForService = cache
	}
	if notifier != nil {
		notifierForCreate = notifier
		notifierForService = notifier
	}
	if paymentsSvc != nil {
		paymentsForCreate = paymentsSvc
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		slotsCacheForService,
		notifierForService,
		log,
	)
	rulesSvc := rulesService.NewService(ruleRepository, log)
	consultationsSvc := consultationsService.NewService(consultationRepository, log)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		ruleRepository,
		bookingRepository,
		consultationRepository,
		slotsCacheForSlots,
		log,
		cfg.Booking.SlotIntervalMinutes,
	)

	getAvailableDatesUseCase := getAvailableDatesUC.NewUseCase(
		ruleRepository,
		bookingRepository,
		consultationRepository,
		log,
		cfg.Booking.SlotIntervalMinutes,
	)

	createBookingUseCase := createBookingUC.NewUseCase(
		ruleRepository,
		bookingRepository,
		consultationRepository,
		txMgr,
		slotsCacheForCreate,
		notifierForCreate,
		paymentsForCreate,
		log,
		cfg.Booking.SlotIntervalMinutes,
		cfg.Booking.Currency,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getAvailableDates := getAvailableDatesHandler.NewHandler(getAvailableDatesUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	listConsultations := listConsultationsHandler.NewHandler(consultationsSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	manageRules := manageRulesHandler.NewHandler(rulesSvc, log)
	manageConsultations := manageConsultationsHandler.NewHandler(consultationsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Каталог типов консультаций
	api.HandleFunc("/services", listConsultations.Handle).Methods(http.MethodGet)
	api.HandleFunc("/services/{serviceId}", listConsultations.HandleGetByID).Methods(http.MethodGet)

	// Доступные слоты на дату
	api.HandleFunc("/services/{serviceId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Даты месяца с доступными слотами
	api.HandleFunc("/services/{serviceId}/available-dates", getAvailableDates.Handle).Methods(http.MethodGet)

	// Создание бронирования
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Просмотр бронирования по номеру
	api.HandleFunc("/bookings/{reference}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена бронирования
	api.HandleFunc("/bookings/{reference}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// ============================================================
	// STAFF ROUTES (требуют X-Staff-Key header)
	// ============================================================

	staff := api.PathPrefix("/staff").Subrouter()
	staff.Use(middleware.StaffAuth(cfg.Server.StaffKey))

	// --- Бронирования ---
	staff.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	staff.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	// --- Правила расписания ---
	staff.HandleFunc("/rules", manageRules.HandleCreate).Methods(http.MethodPost)
	staff.HandleFunc("/rules", manageRules.HandleList).Methods(http.MethodGet)
	staff.HandleFunc("/rules/{ruleId}", manageRules.HandleGet).Methods(http.MethodGet)
	staff.HandleFunc("/rules/{ruleId}", manageRules.HandleUpdate).Methods(http.MethodPut)
	staff.HandleFunc("/rules/{ruleId}", manageRules.HandleDelete).Methods(http.MethodDelete)

	// --- Типы консультаций ---
	staff.HandleFunc("/services", manageConsultations.HandleList).Methods(http.MethodGet)
	staff.HandleFunc("/services", manageConsultations.HandleCreate).Methods(http.MethodPost)
	staff.HandleFunc("/services/{serviceId}", manageConsultations.HandleUpdate).Methods(http.MethodPatch)

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
