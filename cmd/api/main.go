package main

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/paydesk/payroll-backend-go/internal/config"
	appHTTP "github.com/paydesk/payroll-backend-go/internal/handler/http"
	"github.com/paydesk/payroll-backend-go/internal/pkg/database"
	"github.com/paydesk/payroll-backend-go/internal/pkg/email"
	"github.com/paydesk/payroll-backend-go/internal/pkg/jwt"
	"github.com/paydesk/payroll-backend-go/internal/pkg/payment"
	"github.com/paydesk/payroll-backend-go/internal/pkg/storage"
	"github.com/paydesk/payroll-backend-go/internal/repository/postgresql"
	notificationService "github.com/paydesk/payroll-backend-go/internal/service/notification"
	payrollService "github.com/paydesk/payroll-backend-go/internal/service/payroll"
	"github.com/paydesk/payroll-backend-go/internal/service/payslip"
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

	payrollRepo := postgresql.NewPayrollRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

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

	emailService, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		log.Fatal("Failed to initialize email service:", err)
	}

	payslipGenerator, err := payslip.NewGenerator(fileStorage)
	if err != nil {
		log.Fatal("Failed to initialize payslip generator:", err)
	}

	gateway := payment.NewXenditGateway(cfg.Xendit)

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(
		slog.String("app", "paydesk-payroll"),
	)

	notificationSvc := notificationService.NewService(notificationRepo)
	dispatcher := payrollService.NewSideEffectDispatcher(
		payrollRepo,
		employeeRepo,
		payslipGenerator,
		emailService,
		notificationSvc,
		logger,
	)
	payrollSvc := payrollService.NewService(
		payrollRepo,
		employeeRepo,
		gateway,
		dispatcher,
		payrollService.DefaultStatutoryPolicy,
		logger,
		cfg.Xendit,
	)

	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	notificationHandler := appHTTP.NewNotificationHandler(notificationSvc)

	router := appHTTP.NewRouter(cfg, JWTService, payrollHandler, notificationHandler)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
