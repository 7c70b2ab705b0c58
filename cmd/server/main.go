package main

import (
	"fmt"
	"net/http"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hris-authority/attendance-payroll/internal/clock"
	"github.com/hris-authority/attendance-payroll/internal/config"
	"github.com/hris-authority/attendance-payroll/internal/domain/admin"
	appHTTP "github.com/hris-authority/attendance-payroll/internal/handler/http"
	"github.com/hris-authority/attendance-payroll/internal/identity"
	"github.com/hris-authority/attendance-payroll/internal/pkg/auditbus"
	"github.com/hris-authority/attendance-payroll/internal/pkg/cron"
	"github.com/hris-authority/attendance-payroll/internal/pkg/database"
	"github.com/hris-authority/attendance-payroll/internal/repository/postgresql"
	attendanceservice "github.com/hris-authority/attendance-payroll/internal/service/attendance"
	employeeservice "github.com/hris-authority/attendance-payroll/internal/service/employee"
	payrollservice "github.com/hris-authority/attendance-payroll/internal/service/payroll"
	"github.com/hris-authority/attendance-payroll/internal/signature"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	officeRepo := postgresql.NewOfficeLocationRepository(db)
	adminTeamRepo := postgresql.NewAdminTeamRepository(db)
	baseAuditRepo := postgresql.NewAuditRepository(db)
	directory := identity.NewPostgresDirectory(db)

	var natsConn *nats.Conn
	if cfg.NATS.URL != "" {
		natsConn, err = nats.Connect(cfg.NATS.URL)
		if err != nil {
			log.Warn().Err(err).Msg("nats: failed to connect, audit fan-out disabled")
		}
	}
	auditWriter := auditbus.NewPublisher(baseAuditRepo, natsConn, zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger())

	realClock := clock.NewRealClock()
	verifier := signature.RSAVerifier{}
	gate := admin.NewGate(adminTeamRepo, cfg.Admin.TeamID)

	attendanceSvc := attendanceservice.NewService(realClock, verifier, attendanceRepo, employeeRepo, officeRepo, payrollRepo, auditWriter)
	payrollSvc := payrollservice.NewService(realClock, employeeRepo, attendanceRepo, payrollRepo, holidayRepo, leaveRepo, auditWriter)
	employeeSvc := employeeservice.NewService(realClock, directory, employeeRepo)

	actions := appHTTP.NewActionHandler(realClock, gate, attendanceSvc, payrollSvc, employeeSvc, holidayRepo, officeRepo, attendanceRepo)
	router := appHTTP.NewRouter(actions)

	scheduler := cron.NewScheduler()
	cron.NewAttendanceJobs(realClock, attendanceRepo, employeeRepo).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
