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
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	attachMeetingLinkHandler "github.com/m04kA/MMP-SchedulingService/internal/api/handlers/attach_meeting_link"
	attachSessionNotesHandler "github.com/m04kA/MMP-SchedulingService/internal/api/handlers/attach_session_notes"
	cancelBookingHandler "github.com/m04kA/MMP-SchedulingService/internal/api/handlers/cancel_booking"
	chatAccessHandler "github.com/m04kA/MMP-SchedulingService/internal/api/handlers/chat_access"
	createBookingHandler "github.com/m04kA/MMP-SchedulingService/internal/api/handlers/create_booking"
	createPlanHandler "github.com/m04kA/MMP-SchedulingService/internal/api/handlers/create_plan"
	deleteSlotHandler "github.com/m04kA/MMP-SchedulingService/internal/api/handlers/delete_slot"
	generateSlotsHandler "github.com/m04kA/MMP-SchedulingService/internal/api/handlers/generate_slots"
	getBookingHandler "github.com/m04kA/MMP-SchedulingService/internal/api/handlers/get_booking"
	getMentorBookingsHandler "github.com/m04kA/MMP-SchedulingService/internal/api/handlers/get_mentor_bookings"
	getMentorPlansHandler "github.com/m04kA/MMP-SchedulingService/internal/api/handlers/get_mentor_plans"
	getMentorSlotsHandler "github.com/m04kA/MMP-SchedulingService/internal/api/handlers/get_mentor_slots"
	getUserBookingsHandler "github.com/m04kA/MMP-SchedulingService/internal/api/handlers/get_user_bookings"
	rescheduleBookingHandler "github.com/m04kA/MMP-SchedulingService/internal/api/handlers/reschedule_booking"
	updateBookingStatusHandler "github.com/m04kA/MMP-SchedulingService/internal/api/handlers/update_booking_status"
	updatePlanHandler "github.com/m04kA/MMP-SchedulingService/internal/api/handlers/update_plan"
	"github.com/m04kA/MMP-SchedulingService/internal/api/middleware"
	"github.com/m04kA/MMP-SchedulingService/internal/app"
	"github.com/m04kA/MMP-SchedulingService/internal/config"
	bookingRepo "github.com/m04kA/MMP-SchedulingService/internal/infra/storage/booking"
	planRepo "github.com/m04kA/MMP-SchedulingService/internal/infra/storage/plan"
	slotRepo "github.com/m04kA/MMP-SchedulingService/internal/infra/storage/slot"
	mentorServiceClient "github.com/m04kA/MMP-SchedulingService/internal/integrations/mentorservice"
	notifyServiceClient "github.com/m04kA/MMP-SchedulingService/internal/integrations/notifyservice"
	accessService "github.com/m04kA/MMP-SchedulingService/internal/service/access"
	bookingsService "github.com/m04kA/MMP-SchedulingService/internal/service/bookings"
	plansService "github.com/m04kA/MMP-SchedulingService/internal/service/plans"
	slotsService "github.com/m04kA/MMP-SchedulingService/internal/service/slots"
	createBookingUC "github.com/m04kA/MMP-SchedulingService/internal/usecase/create_booking"
	generateSlotsUC "github.com/m04kA/MMP-SchedulingService/internal/usecase/generate_slots"
	rescheduleBookingUC "github.com/m04kA/MMP-SchedulingService/internal/usecase/reschedule_booking"
	"github.com/m04kA/MMP-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/MMP-SchedulingService/pkg/logger"
	"github.com/m04kA/MMP-SchedulingService/pkg/metrics"
	"github.com/m04kA/MMP-SchedulingService/pkg/simpletxmanager"
	"github.com/m04kA/MMP-SchedulingService/pkg/txmanager"
)

func main() {
	// .env опционален, используется для DB_PASSWORD в локальной разработке
	_ = godotenv.Load()

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

	log.Info("Starting MMP-SchedulingService...")
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

	// Применяем миграции
	migrator, err := app.NewMigrator(db)
	if err != nil {
		log.Fatal("Failed to create migrator: %v", err)
	}
	if err := migrator.Run(context.Background()); err != nil {
		log.Fatal("Failed to apply migrations: %v", err)
	}
	if version, err := migrator.Version(context.Background()); err == nil {
		log.Info("Database schema is up to date (version=%d)", version)
	}

	// Инициализируем интеграционных клиентов
	mentorClient := mentorServiceClient.NewClient(
		cfg.MentorService.URL,
		time.Duration(cfg.MentorService.Timeout)*time.Second,
		log,
	)
	notifyClient := notifyServiceClient.NewClient(
		cfg.NotifyService.URL,
		time.Duration(cfg.NotifyService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (MentorService=%s timeout=%ds, NotifyService=%s timeout=%ds)",
		cfg.MentorService.URL, cfg.MentorService.Timeout, cfg.NotifyService.URL, cfg.NotifyService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		slotRepository    *slotRepo.Repository
		bookingRepository *bookingRepo.Repository
		planRepository    *planRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases и сервисах)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		// Инициализируем репозитории с обёрткой метрик
		slotRepository = slotRepo.NewRepository(wrappedDB)
		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		planRepository = planRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		// Инициализируем репозитории без метрик
		slotRepository = slotRepo.NewRepository(db)
		bookingRepository = bookingRepo.NewRepository(db)
		planRepository = planRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		slotRepository,
		notifyClient,
		txMgr,
		log,
	)
	slotSvc := slotsService.NewService(slotRepository, log)
	planSvc := plansService.NewService(planRepository, mentorClient, log)
	accessSvc := accessService.NewService(bookingRepository, log)

	// Инициализируем use cases
	generateSlotsUseCase := generateSlotsUC.NewUseCase(
		slotRepository,
		planRepository,
		mentorClient,
		txMgr,
		log,
	)
	createBookingUseCase := createBookingUC.NewUseCase(
		slotRepository,
		bookingRepository,
		planRepository,
		notifyClient,
		txMgr,
		log,
	)
	rescheduleBookingUseCase := rescheduleBookingUC.NewUseCase(
		slotRepository,
		bookingRepository,
		notifyClient,
		txMgr,
		log,
	)

	// Инициализируем handlers
	generateSlots := generateSlotsHandler.NewHandler(generateSlotsUseCase, log)
	getMentorSlots := getMentorSlotsHandler.NewHandler(slotSvc, log)
	deleteSlot := deleteSlotHandler.NewHandler(slotSvc, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(rescheduleBookingUseCase, log)
	chatAccess := chatAccessHandler.NewHandler(accessSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getMentorBookings := getMentorBookingsHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	attachMeetingLink := attachMeetingLinkHandler.NewHandler(bookingSvc, log)
	attachSessionNotes := attachSessionNotesHandler.NewHandler(bookingSvc, log)
	createPlan := createPlanHandler.NewHandler(planSvc, log)
	getMentorPlans := getMentorPlansHandler.NewHandler(planSvc, log)
	updatePlan := updatePlanHandler.NewHandler(planSvc, log)

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

	// Слоты ментора (клиенты просматривают доступность)
	api.HandleFunc("/mentors/{mentorId}/slots", getMentorSlots.Handle).Methods(http.MethodGet)

	// Планы ментора
	api.HandleFunc("/mentors/{mentorId}/plans", getMentorPlans.Handle).Methods(http.MethodGet)

	// Пост-сессионные доступы бронирования
	api.HandleFunc("/bookings/{bookingId}/chat-access", chatAccess.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Слоты ---
	// Генерация слотов на дату
	protected.HandleFunc("/mentors/{mentorId}/slots", generateSlots.Handle).Methods(http.MethodPost)

	// Удаление свободного слота
	protected.HandleFunc("/slots/{slotId}", deleteSlot.Handle).Methods(http.MethodDelete)

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена бронирования
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// Перенос бронирования на другой слот
	protected.HandleFunc("/bookings/{bookingId}/reschedule", rescheduleBooking.Handle).Methods(http.MethodPost)

	// Обновление статусов (завершение, оплата)
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	// Прикрепление ссылки на встречу
	protected.HandleFunc("/bookings/{bookingId}/link", attachMeetingLink.Handle).Methods(http.MethodPatch)

	// Прикрепление заметок сессии
	protected.HandleFunc("/bookings/{bookingId}/notes", attachSessionNotes.Handle).Methods(http.MethodPatch)

	// История бронирований клиента
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// Расписание ментора
	protected.HandleFunc("/mentors/{mentorId}/bookings", getMentorBookings.Handle).Methods(http.MethodGet)

	// --- Планы ---
	// Создание плана
	protected.HandleFunc("/mentors/{mentorId}/plans", createPlan.Handle).Methods(http.MethodPost)

	// Обновление плана
	protected.HandleFunc("/plans/{planId}", updatePlan.Handle).Methods(http.MethodPatch)

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

	log.Info("Server exited")
}
