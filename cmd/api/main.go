package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/clinicore/attendance-backend-go/internal/config"
	appHTTP "github.com/clinicore/attendance-backend-go/internal/handler/http"
	"github.com/clinicore/attendance-backend-go/internal/pkg/cron"
	"github.com/clinicore/attendance-backend-go/internal/pkg/database"
	"github.com/clinicore/attendance-backend-go/internal/pkg/iplookup"
	"github.com/clinicore/attendance-backend-go/internal/pkg/sse"
	"github.com/clinicore/attendance-backend-go/internal/pkg/storage"
	"github.com/clinicore/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/clinicore/attendance-backend-go/internal/service/attendance"
	checkinService "github.com/clinicore/attendance-backend-go/internal/service/checkin"
	"github.com/clinicore/attendance-backend-go/internal/service/file"
	notificationService "github.com/clinicore/attendance-backend-go/internal/service/notification"
	organizationService "github.com/clinicore/attendance-backend-go/internal/service/organization"
	"github.com/go-chi/jwtauth/v5"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	attendanceRepo := postgresql.NewAttendanceRepository(db)
	organizationRepo := postgresql.NewOrganizationRepository(db)
	networkRepo := postgresql.NewNetworkRepository(db)

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
	if err != nil {
		log.Fatal("Failed to initialize local storage:", err)
	}

	hub := sse.NewHub()
	ipClient := iplookup.NewClient(cfg.IPLookup.URL, cfg.IPLookup.Timeout)

	fileService := file.NewFileService(fileStorage)
	notifService := notificationService.NewNotificationService(hub, logger, notificationService.Config{})
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, fileService, notifService, logger)
	checkinSvc := checkinService.NewCheckinService(organizationRepo, networkRepo, ipClient, logger)
	organizationSvc := organizationService.NewOrganizationService(organizationRepo, networkRepo)

	// Warm the validation snapshot; misses fall back to the database.
	if err := checkinSvc.Refresh(context.Background()); err != nil {
		logger.Warn("initial lookup snapshot refresh failed", slog.Any("error", err))
	}

	jwtAuth := jwtauth.New("HS256", []byte(cfg.JWT.Secret), nil)

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	checkinHandler := appHTTP.NewCheckinHandler(checkinSvc)
	organizationHandler := appHTTP.NewOrganizationHandler(organizationSvc)
	notificationHandler := appHTTP.NewNotificationHandler(notifService)

	router := appHTTP.NewRouter(
		cfg,
		jwtAuth,
		attendanceHandler,
		checkinHandler,
		organizationHandler,
		notificationHandler,
	)

	scheduler := cron.NewScheduler()
	cron.NewAttendanceJobs(attendanceSvc, notifService).Register(scheduler)
	scheduler.Start()

	port := fmt.Sprintf(":%d", cfg.App.Port)
	server := &http.Server{
		Addr:    port,
		Handler: router,
	}

	go func() {
		fmt.Printf("Server running at http://localhost%s\n", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	scheduler.Stop()
	notifService.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
}
