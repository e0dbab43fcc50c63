package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"attendance-tracker/internal/config"
	"attendance-tracker/internal/handler"
	"attendance-tracker/internal/repository"
	"attendance-tracker/internal/service"
	"attendance-tracker/pkg/token"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func main() {
	logrus.Info("Initializing config...")
	cfg := config.GetServerConfig()
	logrus.Info("Config initialized...")

	db, err := gorm.Open(sqlite.Open(cfg.DatabaseURL), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true, // SQLite limitation
	})
	if err != nil {
		logrus.Fatal("Failed to connect to database:", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		logrus.Fatal("Failed to get database instance:", err)
	}

	// Foreign key enforcement must be enabled per connection on SQLite
	if _, err = sqlDB.Exec("PRAGMA foreign_keys = ON"); err != nil {
		logrus.Infof("Warning: Failed to enable foreign keys: %v", err)
	}

	userRepo, err := repository.NewGormUserRepository(db)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create user repository")
	}

	attendanceRepo, err := repository.NewGormAttendanceRepository(db)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create attendance repository")
	}

	breakRepo, err := repository.NewGormBreakRepository(db)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create break repository")
	}

	leaveRepo, err := repository.NewGormLeaveRepository(db)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create leave repository")
	}

	tokens := token.NewManager(cfg.JWTSecret)

	authService := service.NewAuthService(userRepo, tokens)
	attendanceService := service.NewAttendanceService(attendanceRepo, breakRepo)
	breakService := service.NewBreakService(attendanceRepo, breakRepo)
	leaveService := service.NewLeaveService(leaveRepo, userRepo)
	employeeService := service.NewEmployeeService(userRepo, attendanceRepo, breakRepo, leaveRepo)
	historyService := service.NewHistoryService(attendanceRepo, leaveRepo, userRepo)

	h := handler.NewHandler(
		authService,
		attendanceService,
		breakService,
		leaveService,
		employeeService,
		historyService,
		userRepo,
		tokens,
	)

	router := gin.Default()
	h.RegisterRoutes(router)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logrus.Infof("Server running on http://localhost:%s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("Server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logrus.Infof("Error shutting down server: %v", err)
	}

	if err := sqlDB.Close(); err != nil {
		logrus.Infof("Error closing database: %v", err)
	}

	logrus.Info("Server stopped gracefully")
}
