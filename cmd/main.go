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

	cancelBookingHandler "github.com/tkhmelev/RCP-FacilityService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/tkhmelev/RCP-FacilityService/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/tkhmelev/RCP-FacilityService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/tkhmelev/RCP-FacilityService/internal/api/handlers/get_booking"
	getFacilityBookingsHandler "github.com/tkhmelev/RCP-FacilityService/internal/api/handlers/get_facility_bookings"
	getQuotaHandler "github.com/tkhmelev/RCP-FacilityService/internal/api/handlers/get_quota"
	getUserBookingsHandler "github.com/tkhmelev/RCP-FacilityService/internal/api/handlers/get_user_bookings"
	subscribeChangesHandler "github.com/tkhmelev/RCP-FacilityService/internal/api/handlers/subscribe_changes"
	"github.com/tkhmelev/RCP-FacilityService/internal/api/middleware"
	"github.com/tkhmelev/RCP-FacilityService/internal/config"
	bookingRepo "github.com/tkhmelev/RCP-FacilityService/internal/infra/storage/booking"
	facilityServiceClient "github.com/tkhmelev/RCP-FacilityService/internal/integrations/facilityservice"
	"github.com/tkhmelev/RCP-FacilityService/internal/notifier"
	bookingsService "github.com/tkhmelev/RCP-FacilityService/internal/service/bookings"
	createBookingUC "github.com/tkhmelev/RCP-FacilityService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/tkhmelev/RCP-FacilityService/internal/usecase/get_available_slots"
	getQuotaUC "github.com/tkhmelev/RCP-FacilityService/internal/usecase/get_quota"
	"github.com/tkhmelev/RCP-FacilityService/pkg/dbmetrics"
	"github.com/tkhmelev/RCP-FacilityService/pkg/logger"
	"github.com/tkhmelev/RCP-FacilityService/pkg/metrics"
	"github.com/tkhmelev/RCP-FacilityService/pkg/simpletxmanager"
	"github.com/tkhmelev/RCP-FacilityService/pkg/txmanager"
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

	log.Info("Starting RCP-FacilityService...")
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

	// Инициализируем клиент сервиса управления объектами
	facilityClient := facilityServiceClient.NewClient(
		cfg.FacilityService.URL,
		time.Duration(cfg.FacilityService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration client initialized (FacilityService=%s timeout=%ds)",
		cfg.FacilityService.URL, cfg.FacilityService.Timeout)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}

	// Инициализируем репозиторий и менеджер транзакций (с метриками или без)
	var bookingRepository *bookingRepo.Repository
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем канал уведомлений об изменениях бронирований
	hub := notifier.NewHub(cfg.Notifier.BufferSize, log)
	if cfg.Metrics.Enabled {
		hub.WithMetrics(metricsCollector)
	}

	// Notifier для пишущих операций: локальный hub или redis-мост
	// для рассылки между экземплярами сервиса
	var changeNotifier interface {
		BookingChanged(ev notifier.Event)
	} = hub

	bridgeCtx, stopBridge := context.WithCancel(context.Background())
	defer stopBridge()

	if cfg.Notifier.RedisEnabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Notifier.RedisAddr,
			Password: cfg.Notifier.RedisPassword,
			DB:       cfg.Notifier.RedisDB,
		})

		if err := redisClient.Ping(bridgeCtx).Err(); err != nil {
			// Сервис работоспособен и без межэкземплярной рассылки
			log.Error("Redis unavailable, falling back to local-only notifications: %v", err)
		} else {
			bridge := notifier.NewRedisBridge(redisClient, cfg.Notifier.RedisChannel, hub, log)
			go bridge.Run(bridgeCtx)
			changeNotifier = bridge
			log.Info("Redis notification bridge started (addr=%s, channel=%s)",
				cfg.Notifier.RedisAddr, cfg.Notifier.RedisChannel)
		}
		defer redisClient.Close()
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		facilityClient,
		changeNotifier,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		facilityClient,
		txMgr,
		changeNotifier,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		facilityClient,
		log,
	)

	getQuotaUseCase := getQuotaUC.NewUseCase(
		bookingRepository,
		facilityClient,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getQuota := getQuotaHandler.NewHandler(getQuotaUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getFacilityBookings := getFacilityBookingsHandler.NewHandler(bookingSvc, log)
	subscribeChanges := subscribeChangesHandler.NewHandler(hub, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
	}

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

	// Сетка слотов объекта с занятостью
	api.HandleFunc("/facilities/{facilityId}/slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Подписка на изменения бронирований объекта (WebSocket)
	api.HandleFunc("/facilities/{facilityId}/changes",
		subscribeChanges.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(log))

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена бронирования
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// История бронирований жителя
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// Остаток дневной квоты жителя
	protected.HandleFunc("/facilities/{facilityId}/quota", getQuota.Handle).Methods(http.MethodGet)

	// --- Управление объектом (для операторов) ---
	// Список бронирований объекта
	protected.HandleFunc("/facilities/{facilityId}/bookings", getFacilityBookings.Handle).Methods(http.MethodGet)

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

	// Останавливаем redis-мост и сбор метрик connection pool
	stopBridge()
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
