package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"

	"github.com/tallyhr/attendance-backend-go/internal/handler/http/middleware"
)

func NewRouter(
	env string,
	attendanceHandler AttendanceHandler,
	sheetHandler SheetHandler,
	eventsHandler EventsHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "attendance-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Actor-ID"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))
	r.Use(middleware.WithActor)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/attendance", func(r chi.Router) {
			r.Get("/", attendanceHandler.ListDay)
			r.Post("/", attendanceHandler.Mark)
			r.Post("/toggle", attendanceHandler.QuickToggle)
			r.Post("/bulk", attendanceHandler.RunBulkAction)
			r.Put("/{id}", attendanceHandler.Edit)
			r.Delete("/{id}", attendanceHandler.Delete)
		})

		r.Get("/sheets/{year}/{month}", sheetHandler.GetMonthlySheet)

		r.Route("/view", func(r chi.Router) {
			r.Get("/", sheetHandler.GetView)
			r.Put("/period", sheetHandler.SetViewPeriod)
		})

		r.Get("/events", eventsHandler.Stream)
	})

	return r
}
