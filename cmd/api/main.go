package main

import (
	"fmt"
	"net/http"

	"github.com/shiftpay/payroll-engine-go/internal/config"
	appHTTP "github.com/shiftpay/payroll-engine-go/internal/handler/http"
	"github.com/shiftpay/payroll-engine-go/internal/pkg/cron"
	"github.com/shiftpay/payroll-engine-go/internal/pkg/database"
	"github.com/shiftpay/payroll-engine-go/internal/pkg/holiday"
	"github.com/shiftpay/payroll-engine-go/internal/pkg/jwt"
	"github.com/shiftpay/payroll-engine-go/internal/repository/postgresql"
	automationService "github.com/shiftpay/payroll-engine-go/internal/service/automation"
	payrateService "github.com/shiftpay/payroll-engine-go/internal/service/payrate"
	salaryService "github.com/shiftpay/payroll-engine-go/internal/service/salary"
	shiftService "github.com/shiftpay/payroll-engine-go/internal/service/shift"
	taxconfigService "github.com/shiftpay/payroll-engine-go/internal/service/taxconfig"
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

	shiftRepo := postgresql.NewShiftRepository(db)
	salaryRepo := postgresql.NewSalaryRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	rateTierRepo := postgresql.NewRateTierRepository(db)
	taxConfigRepo := postgresql.NewTaxConfigRepository(db)
	settingsRepo := postgresql.NewAutomationRepository(db)
	ledgerRepo := postgresql.NewLedgerRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	holidayClient := holiday.NewClient(cfg.Holiday.BaseURL, cfg.Holiday.APIKey, cfg.Holiday.CountryCode, cfg.Holiday.Timeout)

	salarySvc := salaryService.NewSalaryService(db, salaryRepo, shiftRepo, employeeRepo, taxConfigRepo, settingsRepo, ledgerRepo)
	shiftSvc := shiftService.NewShiftService(db, shiftRepo, employeeRepo, rateTierRepo, salarySvc, holidayClient)
	rateTierSvc := payrateService.NewRateTierService(db, rateTierRepo)
	taxConfigSvc := taxconfigService.NewTaxConfigService(db, taxConfigRepo)
	automationSvc := automationService.NewAutomationService(db, settingsRepo, salarySvc)

	shiftHandler := appHTTP.NewShiftHandler(shiftSvc)
	salaryHandler := appHTTP.NewSalaryHandler(salarySvc)
	rateTierHandler := appHTTP.NewRateTierHandler(rateTierSvc)
	taxConfigHandler := appHTTP.NewTaxConfigHandler(taxConfigSvc)
	automationHandler := appHTTP.NewAutomationHandler(automationSvc)

	if cfg.Cron.Enabled {
		scheduler := cron.NewScheduler()
		cron.RegisterPayrollJobs(scheduler, automationSvc, cfg.Cron.SweepInterval)
		scheduler.Start()
		defer scheduler.Stop()
	}

	router := appHTTP.NewRouter(
		JWTService,
		shiftHandler,
		salaryHandler,
		rateTierHandler,
		taxConfigHandler,
		automationHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
