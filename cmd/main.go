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

	checkAvailabilityHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/check_availability"
	checkClosureConflictHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/check_closure_conflict"
	createClosureHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/create_closure"
	createReservationHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/create_reservation"
	getReservationHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_reservation"
	getServiceLimitsHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_service_limits"
	getTimeSlotsHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_time_slots"
	listClosuresHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/list_closures"
	listReservationsHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/list_reservations"
	listServicesHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/list_services"
	removeClosureHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/remove_closure"
	updateReservationStatusHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/update_reservation_status"
	updateServiceLimitHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/update_service_limit"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/config"
	"github.com/m04kA/SMC-ReservationService/internal/infra/cache/slotcache"
	closureRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/closure"
	limitRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/limit"
	reservationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
	scheduleRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/schedule"
	serviceRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/service"
	closuresService "github.com/m04kA/SMC-ReservationService/internal/service/closures"
	limitsService "github.com/m04kA/SMC-ReservationService/internal/service/limits"
	reservationsService "github.com/m04kA/SMC-ReservationService/internal/service/reservations"
	checkAvailabilityUC "github.com/m04kA/SMC-ReservationService/internal/usecase/check_availability"
	checkClosureConflictUC "github.com/m04kA/SMC-ReservationService/internal/usecase/check_closure_conflict"
	createReservationUC "github.com/m04kA/SMC-ReservationService/internal/usecase/create_reservation"
	getTimeSlotsUC "github.com/m04kA/SMC-ReservationService/internal/usecase/get_time_slots"
	listServicesUC "github.com/m04kA/SMC-ReservationService/internal/usecase/list_services"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
	"github.com/m04kA/SMC-ReservationService/pkg/metrics"
	"github.com/m04kA/SMC-ReservationService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-ReservationService/pkg/txmanager"
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

	log.Info("Starting SMC-ReservationService...")
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

	// Инициализируем кеш слотов (опционален: сервис корректен и без него)
	var slotCache *slotcache.Cache
	if cfg.Redis.Enabled {
		redisClient, err := slotcache.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal("Failed to connect to redis: %v", err)
		}
		defer redisClient.Close()

		slotCache = slotcache.New(redisClient, time.Duration(cfg.Redis.SlotCacheTTLSeconds)*time.Second)
		log.Info("Slot cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.SlotCacheTTLSeconds)
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		serviceRepository     *serviceRepo.Repository
		scheduleRepository    *scheduleRepo.Repository
		reservationRepository *reservationRepo.Repository
		limitRepository       *limitRepo.Repository
		closureRepository     *closureRepo.Repository
	)

	// Интерфейс transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		serviceRepository = serviceRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		limitRepository = limitRepo.NewRepository(wrappedDB)
		closureRepository = closureRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		serviceRepository = serviceRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		reservationRepository = reservationRepo.NewRepository(db)
		limitRepository = limitRepo.NewRepository(db)
		closureRepository = closureRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Кеш передается дальше через интерфейсы; nil-указатель в интерфейс не кладем
	var (
		slotsCache       getTimeSlotsUC.SlotCache
		admissionCache   createReservationUC.SlotCache
		closuresCache    closuresService.SlotCache
		reservationCache reservationsService.SlotCache
	)
	if slotCache != nil {
		slotsCache = slotCache
		admissionCache = slotCache
		closuresCache = slotCache
		reservationCache = slotCache
	}

	var admissionMetrics createReservationUC.AdmissionMetrics
	if metricsCollector != nil {
		admissionMetrics = metricsCollector
	}

	// Инициализируем сервисы
	reservationSvc := reservationsService.NewService(reservationRepository, serviceRepository, reservationCache, log)
	closureSvc := closuresService.NewService(closureRepository, serviceRepository, closuresCache, log)
	limitSvc := limitsService.NewService(limitRepository, serviceRepository, log)

	// Инициализируем use cases
	getTimeSlotsUseCase := getTimeSlotsUC.NewUseCase(
		serviceRepository,
		scheduleRepository,
		reservationRepository,
		closureRepository,
		slotsCache,
		getTimeSlotsUC.Params{
			LimitedThresholdPercent: cfg.Booking.LimitedThresholdPercent,
			LimitedAbsoluteSpots:    cfg.Booking.LimitedAbsoluteSpots,
		},
		log,
	)

	createReservationUseCase := createReservationUC.NewUseCase(
		serviceRepository,
		scheduleRepository,
		reservationRepository,
		limitRepository,
		closureRepository,
		txMgr,
		admissionCache,
		admissionMetrics,
		log,
	)

	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(
		serviceRepository,
		scheduleRepository,
		reservationRepository,
		limitRepository,
		log,
	)

	checkClosureConflictUseCase := checkClosureConflictUC.NewUseCase(
		serviceRepository,
		reservationRepository,
		log,
	)

	listServicesUseCase := listServicesUC.NewUseCase(serviceRepository, log)

	// Инициализируем handlers
	getTimeSlots := getTimeSlotsHandler.NewHandler(getTimeSlotsUseCase, log)
	listServices := listServicesHandler.NewHandler(listServicesUseCase, log)
	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log)
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	listReservations := listReservationsHandler.NewHandler(reservationSvc, log)
	updateReservationStatus := updateReservationStatusHandler.NewHandler(reservationSvc, log)
	checkClosureConflict := checkClosureConflictHandler.NewHandler(checkClosureConflictUseCase, log)
	createClosure := createClosureHandler.NewHandler(closureSvc, log)
	removeClosure := removeClosureHandler.NewHandler(closureSvc, log)
	listClosures := listClosuresHandler.NewHandler(closureSvc, log)
	getServiceLimits := getServiceLimitsHandler.NewHandler(limitSvc, log)
	updateServiceLimit := updateServiceLimitHandler.NewHandler(limitSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
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

	// Активный каталог услуг (для витрины бронирования)
	api.HandleFunc("/services", listServices.Handle).Methods(http.MethodGet)

	// Консультативная проверка дневной доступности (для UI)
	api.HandleFunc("/availability", checkAvailability.Handle).Methods(http.MethodGet)

	// Слоты на дату с рассчитанной доступностью
	api.HandleFunc("/time-slots", getTimeSlots.Handle).Methods(http.MethodGet)

	// Создание записи (проходит через транзакционный допуск)
	api.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)

	// ============================================================
	// STAFF ROUTES (требуют X-Staff-ID header)
	// ============================================================

	staff := api.PathPrefix("").Subrouter()
	staff.Use(middleware.StaffAuth(log))

	// --- Записи ---
	staff.HandleFunc("/reservations", listReservations.Handle).Methods(http.MethodGet)
	staff.HandleFunc("/reservations/{id}", getReservation.Handle).Methods(http.MethodGet)
	staff.HandleFunc("/reservations/{id}/status", updateReservationStatus.Handle).Methods(http.MethodPatch)

	// --- Ручные закрытия ---
	staff.HandleFunc("/closures/check-conflict", checkClosureConflict.Handle).Methods(http.MethodPost)
	staff.HandleFunc("/closures", createClosure.Handle).Methods(http.MethodPost)
	staff.HandleFunc("/closures", listClosures.Handle).Methods(http.MethodGet)
	staff.HandleFunc("/closures/{id}", removeClosure.Handle).Methods(http.MethodDelete)

	// --- Дневные лимиты ---
	staff.HandleFunc("/service-limits", getServiceLimits.Handle).Methods(http.MethodGet)
	staff.HandleFunc("/service-limits/{serviceCode}", updateServiceLimit.Handle).Methods(http.MethodPut)

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
