package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/staffhub-id/leave-backend-go/internal/config"
	appHTTP "github.com/staffhub-id/leave-backend-go/internal/handler/http"
	"github.com/staffhub-id/leave-backend-go/internal/pkg/cron"
	"github.com/staffhub-id/leave-backend-go/internal/pkg/database"
	"github.com/staffhub-id/leave-backend-go/internal/pkg/email"
	"github.com/staffhub-id/leave-backend-go/internal/pkg/jwt"
	"github.com/staffhub-id/leave-backend-go/internal/pkg/oauth"
	"github.com/staffhub-id/leave-backend-go/internal/pkg/storage"
	"github.com/staffhub-id/leave-backend-go/internal/repository/postgresql"
	authService "github.com/staffhub-id/leave-backend-go/internal/service/auth"
	"github.com/staffhub-id/leave-backend-go/internal/service/file"
	holidayService "github.com/staffhub-id/leave-backend-go/internal/service/holiday"
	leaveService "github.com/staffhub-id/leave-backend-go/internal/service/leave"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	userRepo := postgresql.NewUserRepository(db)
	jwtRepo := postgresql.NewJWTRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	departmentRepo := postgresql.NewDepartmentRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	leaveTypeRepo := postgresql.NewLeaveTypeRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	leaveBalanceRepo := postgresql.NewLeaveBalanceRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	googleService := oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)

	var fileStorage storage.FileStorage
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(
			cfg.Storage.BasePath,
			cfg.Storage.BaseURL,
		)
		if err != nil {
			log.Fatal("Failed to initialize local storage:", err)
		}
	default:
		log.Fatal("Unsupported storage type: ", cfg.Storage.Type)
	}

	fileService := file.NewFileService(fileStorage)
	emailService, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		log.Fatal("Failed to initialize email service:", err)
	}

	calendarService := holidayService.NewService(holidayRepo, cfg.Policy)
	authSvc := authService.NewAuthService(db, userRepo, jwtService, jwtRepo, googleService)
	leaveSvc := leaveService.NewService(
		db,
		leaveTypeRepo,
		leaveRequestRepo,
		leaveBalanceRepo,
		employeeRepo,
		departmentRepo,
		userRepo,
		calendarService,
		emailService,
		cfg.Policy,
	)

	authHandler := appHTTP.NewAuthHandler(jwtService, authSvc, cfg.App.FrontendURL)
	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc, fileService)
	holidayHandler := appHTTP.NewHolidayHandler(calendarService)

	scheduler := cron.NewScheduler()
	holidayJobs := cron.NewHolidayJobs(calendarService, employeeRepo, emailService, cfg.Policy)
	holidayJobs.RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(cfg, jwtService, authHandler, leaveHandler, holidayHandler)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
