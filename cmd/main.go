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

	availableStaffHandler "github.com/m04kA/SMC-StaffingService/internal/api/handlers/available_staff"
	claimBookingHandler "github.com/m04kA/SMC-StaffingService/internal/api/handlers/claim_booking"
	completeAssignmentHandler "github.com/m04kA/SMC-StaffingService/internal/api/handlers/complete_assignment"
	deleteBookingHandler "github.com/m04kA/SMC-StaffingService/internal/api/handlers/delete_booking"
	forceAssignHandler "github.com/m04kA/SMC-StaffingService/internal/api/handlers/force_assign"
	getBookingHandler "github.com/m04kA/SMC-StaffingService/internal/api/handlers/get_booking"
	getStaffAssignmentsHandler "github.com/m04kA/SMC-StaffingService/internal/api/handlers/get_staff_assignments"
	getUserBookingsHandler "github.com/m04kA/SMC-StaffingService/internal/api/handlers/get_user_bookings"
	listBookingsHandler "github.com/m04kA/SMC-StaffingService/internal/api/handlers/list_bookings"
	placeBookingHandler "github.com/m04kA/SMC-StaffingService/internal/api/handlers/place_booking"
	sweepPendingHandler "github.com/m04kA/SMC-StaffingService/internal/api/handlers/sweep_pending"
	updateBookingHandler "github.com/m04kA/SMC-StaffingService/internal/api/handlers/update_booking"
	"github.com/m04kA/SMC-StaffingService/internal/api/middleware"
	"github.com/m04kA/SMC-StaffingService/internal/config"
	assignmentRepo "github.com/m04kA/SMC-StaffingService/internal/infra/storage/assignment"
	bookingRepo "github.com/m04kA/SMC-StaffingService/internal/infra/storage/booking"
	taskHistoryRepo "github.com/m04kA/SMC-StaffingService/internal/infra/storage/taskhistory"
	notifyClient "github.com/m04kA/SMC-StaffingService/internal/integrations/notify"
	directoryClient "github.com/m04kA/SMC-StaffingService/internal/integrations/staffdirectory"
	assignmentsService "github.com/m04kA/SMC-StaffingService/internal/service/assignments"
	bookingsService "github.com/m04kA/SMC-StaffingService/internal/service/bookings"
	availableStaffUC "github.com/m04kA/SMC-StaffingService/internal/usecase/available_staff"
	claimBookingUC "github.com/m04kA/SMC-StaffingService/internal/usecase/claim_booking"
	completeAssignmentUC "github.com/m04kA/SMC-StaffingService/internal/usecase/complete_assignment"
	forceAssignUC "github.com/m04kA/SMC-StaffingService/internal/usecase/force_assign"
	placeBookingUC "github.com/m04kA/SMC-StaffingService/internal/usecase/place_booking"
	sweepPendingUC "github.com/m04kA/SMC-StaffingService/internal/usecase/sweep_pending"
	"github.com/m04kA/SMC-StaffingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-StaffingService/pkg/logger"
	"github.com/m04kA/SMC-StaffingService/pkg/metrics"
	"github.com/m04kA/SMC-StaffingService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-StaffingService/pkg/txmanager"
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

	log.Info("Starting SMC-StaffingService...")
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

	// Инициализируем интеграционных клиентов
	directory := directoryClient.NewClient(
		cfg.StaffDirectory.URL,
		time.Duration(cfg.StaffDirectory.Timeout)*time.Second,
		log,
	)
	notifier := notifyClient.NewClient(
		cfg.Notify.URL,
		time.Duration(cfg.Notify.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (StaffDirectory=%s timeout=%ds, Notify=%s timeout=%ds)",
		cfg.StaffDirectory.URL, cfg.StaffDirectory.Timeout, cfg.Notify.URL, cfg.Notify.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository     *bookingRepo.Repository
		assignmentRepository  *assignmentRepo.Repository
		taskHistoryRepository *taskHistoryRepo.Repository
		txMgr                 *txmanager.TransactionManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		assignmentRepository = assignmentRepo.NewRepository(wrappedDB)
		taskHistoryRepository = taskHistoryRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		assignmentRepository = assignmentRepo.NewRepository(db)
		taskHistoryRepository = taskHistoryRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		assignmentRepository,
		txMgr,
		log,
	)
	assignmentSvc := assignmentsService.NewService(
		assignmentRepository,
		log,
	)

	// Инициализируем use cases
	availableStaffUseCase := availableStaffUC.NewUseCase(
		directory,
		assignmentRepository,
		log,
	)
	placeBookingUseCase := placeBookingUC.NewUseCase(
		bookingRepository,
		assignmentRepository,
		availableStaffUseCase,
		notifier,
		txMgr,
		log,
	)
	sweepPendingUseCase := sweepPendingUC.NewUseCase(
		bookingRepository,
		assignmentRepository,
		availableStaffUseCase,
		txMgr,
		log,
	)
	forceAssignUseCase := forceAssignUC.NewUseCase(
		bookingRepository,
		assignmentRepository,
		directory,
		txMgr,
		log,
	)
	claimBookingUseCase := claimBookingUC.NewUseCase(
		bookingRepository,
		assignmentRepository,
		directory,
		txMgr,
		log,
	)
	completeAssignmentUseCase := completeAssignmentUC.NewUseCase(
		bookingRepository,
		assignmentRepository,
		taskHistoryRepository,
		txMgr,
		log,
	)

	// Считаем доменные исходы, когда метрики включены
	var (
		placement placeBookingHandler.PlaceBookingUseCase = placeBookingUseCase
		sweeper   sweepRunner                             = sweepPendingUseCase
		forcer    forceAssignHandler.ForceAssignUseCase   = forceAssignUseCase
	)
	if cfg.Metrics.Enabled {
		placement = &instrumentedPlacement{uc: placeBookingUseCase, m: metricsCollector}
		sweeper = &instrumentedSweep{uc: sweepPendingUseCase, m: metricsCollector}
		forcer = &instrumentedForceAssign{uc: forceAssignUseCase, m: metricsCollector}
	}

	// Инициализируем handlers
	placeBooking := placeBookingHandler.NewHandler(placement, log)
	availableStaff := availableStaffHandler.NewHandler(availableStaffUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	updateBooking := updateBookingHandler.NewHandler(bookingSvc, log)
	deleteBooking := deleteBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	sweepPending := sweepPendingHandler.NewHandler(sweeper, log)
	forceAssign := forceAssignHandler.NewHandler(forcer, log)
	claimBooking := claimBookingHandler.NewHandler(claimBookingUseCase, log)
	completeAssignment := completeAssignmentHandler.NewHandler(completeAssignmentUseCase, log)
	getStaffAssignments := getStaffAssignmentsHandler.NewHandler(assignmentSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
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

	// Подбор свободных сотрудников на слот
	api.HandleFunc("/staff/available", availableStaff.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание и размещение бронирования
	protected.HandleFunc("/bookings", placeBooking.Handle).Methods(http.MethodPost)

	// Список бронирований с фильтрацией (админ)
	protected.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Изменение бронирования владельцем
	protected.HandleFunc("/bookings/{bookingId}", updateBooking.Handle).Methods(http.MethodPatch)

	// Удаление бронирования владельцем
	protected.HandleFunc("/bookings/{bookingId}", deleteBooking.Handle).Methods(http.MethodDelete)

	// История бронирований пользователя
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Назначения ---
	// Принудительное назначение сотрудника (админ)
	protected.HandleFunc("/bookings/{bookingId}/assignee", forceAssign.Handle).Methods(http.MethodPost)

	// Сотрудник берёт бронирование из очереди
	protected.HandleFunc("/bookings/{bookingId}/claim", claimBooking.Handle).Methods(http.MethodPost)

	// Проход по очереди ожидающих бронирований (админ)
	protected.HandleFunc("/assignments/sweep", sweepPending.Handle).Methods(http.MethodPost)

	// Завершение назначения с записью в историю
	protected.HandleFunc("/assignments/{assignmentId}/complete", completeAssignment.Handle).Methods(http.MethodPost)

	// Назначения сотрудника
	protected.HandleFunc("/staff/{staffId}/assignments", getStaffAssignments.Handle).Methods(http.MethodGet)

	// Периодический проход по очереди (если включен)
	stopSweepCh := make(chan struct{})
	if cfg.Sweep.Enabled {
		go runPeriodicSweep(sweeper, time.Duration(cfg.Sweep.Interval)*time.Second, stopSweepCh, log)
		log.Info("Periodic sweep enabled, interval=%ds", cfg.Sweep.Interval)
	}

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

	// Останавливаем периодический sweep
	if cfg.Sweep.Enabled {
		close(stopSweepCh)
		log.Info("Periodic sweep stopped")
	}

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

// sweepRunner общий тип прямого и инструментированного sweep use case
type sweepRunner interface {
	Execute(ctx context.Context) (*sweepPendingUC.Response, error)
}

// instrumentedPlacement считает исходы размещения бронирований
type instrumentedPlacement struct {
	uc *placeBookingUC.UseCase
	m  *metrics.Metrics
}

func (w *instrumentedPlacement) Execute(ctx context.Context, req *placeBookingUC.Request) (*placeBookingUC.Response, error) {
	resp, err := w.uc.Execute(ctx, req)
	if err == nil {
		w.m.PlacementOutcomes.WithLabelValues(string(resp.Outcome)).Inc()
	}
	return resp, err
}

// instrumentedSweep считает назначения, выданные проходами по очереди
type instrumentedSweep struct {
	uc *sweepPendingUC.UseCase
	m  *metrics.Metrics
}

func (w *instrumentedSweep) Execute(ctx context.Context) (*sweepPendingUC.Response, error) {
	resp, err := w.uc.Execute(ctx)
	if err == nil {
		w.m.SweepAssignedTotal.Add(float64(resp.Assigned))
	}
	return resp, err
}

// instrumentedForceAssign считает назначения, снятые каскадной отменой
type instrumentedForceAssign struct {
	uc *forceAssignUC.UseCase
	m  *metrics.Metrics
}

func (w *instrumentedForceAssign) Execute(ctx context.Context, req *forceAssignUC.Request) (*forceAssignUC.Response, error) {
	resp, err := w.uc.Execute(ctx, req)
	if err == nil {
		w.m.ForceCancelsTotal.Add(float64(len(resp.Cancelled)))
	}
	return resp, err
}

// runPeriodicSweep запускает проход по очереди с заданным интервалом.
// Ошибки отдельных проходов логируются, цикл продолжается
func runPeriodicSweep(uc sweepRunner, interval time.Duration, stopCh <-chan struct{}, log *logger.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			resp, err := uc.Execute(context.Background())
			if err != nil {
				log.Error("Periodic sweep failed: %v", err)
				continue
			}
			if resp.Assigned > 0 {
				log.Info("Periodic sweep: scanned=%d, assigned=%d", resp.Scanned, resp.Assigned)
			}
		case <-stopCh:
			return
		}
	}
}
