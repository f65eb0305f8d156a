package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/tallyhr/attendance-backend-go/internal/config"
	appHTTP "github.com/tallyhr/attendance-backend-go/internal/handler/http"
	"github.com/tallyhr/attendance-backend-go/internal/pkg/cron"
	"github.com/tallyhr/attendance-backend-go/internal/pkg/database"
	"github.com/tallyhr/attendance-backend-go/internal/pkg/events"
	"github.com/tallyhr/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/tallyhr/attendance-backend-go/internal/service/attendance"
	sheetService "github.com/tallyhr/attendance-backend-go/internal/service/sheet"
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

	attendanceRepo := postgresql.NewAttendanceRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	ledgerRepo := postgresql.NewLedgerRepository(db)

	hub := events.NewHub()
	attendanceSvc := attendanceService.NewAttendanceService(
		attendanceRepo,
		employeeRepo,
		hub,
		cfg.Batch.ConcurrencyLimit,
	)
	sheetSvc := sheetService.NewSheetService(attendanceRepo, employeeRepo, ledgerRepo)

	now := time.Now()
	view := sheetService.NewView(sheetSvc, now.Year(), int(now.Month()))

	scheduler := cron.NewScheduler()
	scheduler.AddJob("view-refresh", cfg.Batch.ViewRefreshInterval, func(ctx context.Context) error {
		return view.Refresh(ctx)
	})
	scheduler.Start()
	defer scheduler.Stop()

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	sheetHandler := appHTTP.NewSheetHandler(sheetSvc, view)
	eventsHandler := appHTTP.NewEventsHandler(hub)

	router := appHTTP.NewRouter(
		cfg.App.Env,
		attendanceHandler,
		sheetHandler,
		eventsHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
