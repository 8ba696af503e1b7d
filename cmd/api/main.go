package main

import (
	"fmt"
	"net/http"

	"github.com/katalis-hr/attendance-backend-go/internal/config"
	appHTTP "github.com/katalis-hr/attendance-backend-go/internal/handler/http"
	"github.com/katalis-hr/attendance-backend-go/internal/pkg/clock"
	"github.com/katalis-hr/attendance-backend-go/internal/pkg/cron"
	"github.com/katalis-hr/attendance-backend-go/internal/pkg/database"
	"github.com/katalis-hr/attendance-backend-go/internal/pkg/jwt"
	"github.com/katalis-hr/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/katalis-hr/attendance-backend-go/internal/service/attendance"
	schedulerService "github.com/katalis-hr/attendance-backend-go/internal/service/scheduler"
	settingService "github.com/katalis-hr/attendance-backend-go/internal/service/setting"
	violationService "github.com/katalis-hr/attendance-backend-go/internal/service/violation"
	workcalendarService "github.com/katalis-hr/attendance-backend-go/internal/service/workcalendar"
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
	defer db.Close()

	settingRepo := postgresql.NewSettingRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	violationRepo := postgresql.NewViolationRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	schedulerLogRepo := postgresql.NewSchedulerLogRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	settingSvc := settingService.NewSettingService(settingRepo)
	appClock := clock.NewSettingClock(settingSvc)
	calendar := workcalendarService.NewWorkCalendar(settingSvc, appClock)
	ledger := violationService.NewViolationLedger(violationRepo)
	attendanceSvc := attendanceService.NewAttendanceService(
		db,
		attendanceRepo,
		ledger,
		violationRepo,
		employeeRepo,
		leaveRepo,
		calendar,
		settingSvc,
		appClock,
	)
	schedulerSvc := schedulerService.NewSchedulerService(schedulerLogRepo, attendanceSvc, calendar, appClock)

	cronScheduler := cron.NewScheduler()
	cutoffJobs := cron.NewCutoffJobs(schedulerSvc, calendar, appClock)
	cutoffJobs.RegisterJobs(cronScheduler)
	cronScheduler.Start()
	defer cronScheduler.Stop()

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	workingDayHandler := appHTTP.NewWorkingDayHandler(calendar)
	schedulerHandler := appHTTP.NewSchedulerHandler(schedulerSvc)

	router := appHTTP.NewRouter(
		JWTService,
		attendanceHandler,
		workingDayHandler,
		schedulerHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
