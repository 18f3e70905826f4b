package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	createBookingHandler "github.com/AnushkaaaaS/Neighborly/internal/api/handlers/create_booking"
	createServiceHandler "github.com/AnushkaaaaS/Neighborly/internal/api/handlers/create_service"
	deleteServiceHandler "github.com/AnushkaaaaS/Neighborly/internal/api/handlers/delete_service"
	getAvailableSlotsHandler "github.com/AnushkaaaaS/Neighborly/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/AnushkaaaaS/Neighborly/internal/api/handlers/get_booking"
	getOccupiedSlotsHandler "github.com/AnushkaaaaS/Neighborly/internal/api/handlers/get_occupied_slots"
	getProviderBookingsHandler "github.com/AnushkaaaaS/Neighborly/internal/api/handlers/get_provider_bookings"
	getProviderCalendarHandler "github.com/AnushkaaaaS/Neighborly/internal/api/handlers/get_provider_calendar"
	getProviderRatingHandler "github.com/AnushkaaaaS/Neighborly/internal/api/handlers/get_provider_rating"
	getProviderReviewsHandler "github.com/AnushkaaaaS/Neighborly/internal/api/handlers/get_provider_reviews"
	getProviderServicesHandler "github.com/AnushkaaaaS/Neighborly/internal/api/handlers/get_provider_services"
	getProviderStatsHandler "github.com/AnushkaaaaS/Neighborly/internal/api/handlers/get_provider_stats"
	getServiceHandler "github.com/AnushkaaaaS/Neighborly/internal/api/handlers/get_service"
	getUserBookingsHandler "github.com/AnushkaaaaS/Neighborly/internal/api/handlers/get_user_bookings"
	listServicesHandler "github.com/AnushkaaaaS/Neighborly/internal/api/handlers/list_services"
	submitReviewHandler "github.com/AnushkaaaaS/Neighborly/internal/api/handlers/submit_review"
	updateBookingStatusHandler "github.com/AnushkaaaaS/Neighborly/internal/api/handlers/update_booking_status"
	updateServiceHandler "github.com/AnushkaaaaS/Neighborly/internal/api/handlers/update_service"
	"github.com/AnushkaaaaS/Neighborly/internal/api/middleware"
	"github.com/AnushkaaaaS/Neighborly/internal/config"
	bookingRepo "github.com/AnushkaaaaS/Neighborly/internal/infra/storage/booking"
	reviewRepo "github.com/AnushkaaaaS/Neighborly/internal/infra/storage/review"
	serviceRepo "github.com/AnushkaaaaS/Neighborly/internal/infra/storage/service"
	"github.com/AnushkaaaaS/Neighborly/internal/integrations/calendarsync"
	bookingsService "github.com/AnushkaaaaS/Neighborly/internal/service/bookings"
	catalogService "github.com/AnushkaaaaS/Neighborly/internal/service/catalog"
	reviewsService "github.com/AnushkaaaaS/Neighborly/internal/service/reviews"
	createBookingUC "github.com/AnushkaaaaS/Neighborly/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/AnushkaaaaS/Neighborly/internal/usecase/get_available_slots"
	getOccupiedSlotsUC "github.com/AnushkaaaaS/Neighborly/internal/usecase/get_occupied_slots"
	updateBookingStatusUC "github.com/AnushkaaaaS/Neighborly/internal/usecase/update_booking_status"
	"github.com/AnushkaaaaS/Neighborly/pkg/dbmetrics"
	"github.com/AnushkaaaaS/Neighborly/pkg/logger"
	"github.com/AnushkaaaaS/Neighborly/pkg/metrics"
	"github.com/AnushkaaaaS/Neighborly/pkg/txmanager"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.toml"
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
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

	log.Info("Starting Neighborly booking service...")
	log.Info("Configuration loaded from %s", configPath)

	location, err := cfg.Scheduling.Location()
	if err != nil {
		log.Fatal("Failed to load scheduling timezone %q: %v", cfg.Scheduling.Timezone, err)
	}
	log.Info("Scheduling timezone: %s", location)

	// Метрики (nil, если выключены; все методы nil-safe)
	var metricsCollector *metrics.Metrics
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

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	stopMetricsCh := make(chan struct{})
	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}

	txMgr := txmanager.NewTransactionManager(
		wrappedDB,
		txmanager.WithMaxRetries(cfg.Scheduling.TxMaxRetries),
		txmanager.WithRetryRecorder(metricsCollector),
	)

	// Репозитории
	serviceRepository := serviceRepo.NewRepository(wrappedDB)
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	reviewRepository := reviewRepo.NewRepository(wrappedDB)

	// Синхронизация с календарём провайдера (опционально)
	var (
		calendar           updateBookingStatusUC.CalendarDispatcher
		calendarDispatcher *calendarsync.Dispatcher
	)
	if cfg.CalendarSync.Enabled {
		timeout := time.Duration(cfg.CalendarSync.Timeout) * time.Second
		client := calendarsync.NewClient(cfg.CalendarSync.URL, timeout, log)
		calendarDispatcher = calendarsync.NewDispatcher(
			client,
			metricsCollector,
			log,
			cfg.CalendarSync.QueueSize,
			cfg.CalendarSync.Workers,
			timeout,
		)
		calendarDispatcher.Start()
		calendar = calendarDispatcher
		log.Info("Calendar sync enabled (url=%s, workers=%d, queue=%d)",
			cfg.CalendarSync.URL, cfg.CalendarSync.Workers, cfg.CalendarSync.QueueSize)
	}

	// Сервисы
	catalogSvc := catalogService.NewService(serviceRepository, bookingRepository, txMgr, log)
	bookingSvc := bookingsService.NewService(bookingRepository, reviewRepository, location, log)
	reviewSvc := reviewsService.NewService(reviewRepository, bookingRepository, serviceRepository, txMgr, log)

	// Use cases
	getOccupiedSlotsUseCase := getOccupiedSlotsUC.NewUseCase(serviceRepository, bookingRepository, location, log)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(serviceRepository, bookingRepository, location, log)
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		serviceRepository,
		txMgr,
		metricsCollector,
		location,
		log,
	)
	updateBookingStatusUseCase := updateBookingStatusUC.NewUseCase(
		bookingRepository,
		serviceRepository,
		reviewRepository,
		txMgr,
		calendar,
		metricsCollector,
		location,
		log,
	)

	// Handlers
	getOccupiedSlots := getOccupiedSlotsHandler.NewHandler(getOccupiedSlotsUseCase, location, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, location, log)
	listServices := listServicesHandler.NewHandler(catalogSvc, log)
	getService := getServiceHandler.NewHandler(catalogSvc, log)
	createService := createServiceHandler.NewHandler(catalogSvc, log)
	updateService := updateServiceHandler.NewHandler(catalogSvc, log)
	deleteService := deleteServiceHandler.NewHandler(catalogSvc, log)
	getProviderServices := getProviderServicesHandler.NewHandler(catalogSvc, log)
	getProviderReviews := getProviderReviewsHandler.NewHandler(reviewSvc, log)
	getProviderRating := getProviderRatingHandler.NewHandler(reviewSvc, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, location, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(updateBookingStatusUseCase, location, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getProviderBookings := getProviderBookingsHandler.NewHandler(bookingSvc, log)
	getProviderCalendar := getProviderCalendarHandler.NewHandler(bookingSvc, log)
	getProviderStats := getProviderStatsHandler.NewHandler(bookingSvc, log)
	submitReview := submitReviewHandler.NewHandler(reviewSvc, log)

	auth := middleware.NewAuth(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer)
	if cfg.Auth.JWTSecret == "" {
		log.Warn("auth.jwt_secret is empty, trusting %s header", middleware.HeaderUserID)
	}

	// Роутер
	r := mux.NewRouter()
	r.Use(middleware.Recover(log))
	r.Use(middleware.AccessLog(log))

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	public := api.PathPrefix("").Subrouter()
	public.Use(auth.Optional)

	// --- Каталог ---
	public.HandleFunc("/services", listServices.Handle).Methods(http.MethodGet)
	public.HandleFunc("/services/{serviceId}", getService.Handle).Methods(http.MethodGet)
	public.HandleFunc("/providers/{providerId}/services", getProviderServices.Handle).Methods(http.MethodGet)

	// --- Слоты ---
	public.HandleFunc("/services/{serviceId}/occupied-slots", getOccupiedSlots.Handle).Methods(http.MethodGet)
	public.HandleFunc("/services/{serviceId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// --- Отзывы ---
	public.HandleFunc("/providers/{providerId}/reviews", getProviderReviews.Handle).Methods(http.MethodGet)
	public.HandleFunc("/providers/{providerId}/rating", getProviderRating.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(auth.Required)

	// --- Управление услугами (провайдер) ---
	protected.HandleFunc("/services", createService.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/services/{serviceId}", updateService.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/services/{serviceId}", deleteService.Handle).Methods(http.MethodDelete)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/providers/{providerId}/bookings", getProviderBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/providers/{providerId}/calendar", getProviderCalendar.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/providers/{providerId}/stats", getProviderStats.Handle).Methods(http.MethodGet)

	// --- Отзывы ---
	protected.HandleFunc("/reviews", submitReview.Handle).Methods(http.MethodPost)

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Дожидаемся отправки уже поставленных в очередь событий календаря
	if calendarDispatcher != nil {
		if err := calendarDispatcher.Stop(shutdownCtx); err != nil {
			log.Warn("Calendar sync stopped with pending events: %v", err)
		}
	}

	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
