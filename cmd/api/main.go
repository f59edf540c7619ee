package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/look4dennis/stride-hr-sub001/internal/config"
	appHTTP "github.com/look4dennis/stride-hr-sub001/internal/handler/http"
	"github.com/look4dennis/stride-hr-sub001/internal/pkg/currency"
	"github.com/look4dennis/stride-hr-sub001/internal/pkg/database"
	"github.com/look4dennis/stride-hr-sub001/internal/pkg/jwt"
	"github.com/look4dennis/stride-hr-sub001/internal/repository/postgresql"
	auditService "github.com/look4dennis/stride-hr-sub001/internal/service/audit"
	correctionService "github.com/look4dennis/stride-hr-sub001/internal/service/correction"
	formulaService "github.com/look4dennis/stride-hr-sub001/internal/service/formula"
	payrollService "github.com/look4dennis/stride-hr-sub001/internal/service/payroll"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}
	if err := cfg.Validate(); err != nil {
		fmt.Println("Invalid config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), cfg.Database.MaxConns, cfg.Database.MinConns)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	transactor := postgresql.NewTransactor(db)
	recordRepo := postgresql.NewPayrollRepository(db)
	correctionRepo := postgresql.NewCorrectionRepository(db)
	auditRepo := postgresql.NewAuditRepository(db)
	formulaRepo := postgresql.NewFormulaRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)

	rateProvider, err := currency.NewStaticProvider(cfg.Payroll.ExchangeRates)
	if err != nil {
		log.Fatal("Failed to parse exchange rate table: ", err)
	}

	JWTService := jwt.NewJWTService(cfg.JWT.Secret)

	engine := formulaService.NewEngine()
	ruleService := formulaService.NewRuleService(formulaRepo)
	contextBuilder := payrollService.NewContextBuilder(employeeRepo, attendanceRepo)
	calculator := payrollService.NewCalculator(engine, rateProvider, cfg.Payroll.RateLookupTimeout)

	payrollSvc := payrollService.NewService(
		transactor,
		recordRepo,
		formulaRepo,
		employeeRepo,
		contextBuilder,
		calculator,
		auditRepo,
		cfg.Payroll.BaseCurrency,
		cfg.Payroll.DefaultOvertimeRate,
	)
	correctionSvc := correctionService.NewService(transactor, correctionRepo, recordRepo, auditRepo)
	auditSvc := auditService.NewService(auditRepo)

	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	correctionHandler := appHTTP.NewCorrectionHandler(correctionSvc)
	auditHandler := appHTTP.NewAuditHandler(auditSvc)
	formulaHandler := appHTTP.NewFormulaHandler(ruleService)

	router := appHTTP.NewRouter(
		JWTService,
		cfg.App.Env,
		payrollHandler,
		correctionHandler,
		auditHandler,
		formulaHandler,
	)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Println("Server running on port", cfg.App.Port)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatal("Server failed: ", err)
	}
}
