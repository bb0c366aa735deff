package http

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/cmlabs-hris/attendance-engine/internal/domain/user"
	"github.com/cmlabs-hris/attendance-engine/internal/handler/http/middleware"
	"github.com/cmlabs-hris/attendance-engine/internal/pkg/jwt"
)

type RouterConfig struct {
	Logger         *slog.Logger
	LogLevel       slog.Level
	AllowedOrigins []string
	PunchLimiter   *middleware.PunchRateLimiter
}

func NewRouter(cfg RouterConfig, JWTService jwt.Service, attendanceHandler AttendanceHandler) *chi.Mux {
	r := chi.NewRouter()

	allowedOrigins := cfg.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:3000"}
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Retry-After"},
		MaxAge:           300,
	}))

	r.Use(chiMiddleware.RequestID)
	r.Use(httplog.RequestLogger(cfg.Logger, &httplog.Options{
		Level:  cfg.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentType("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))

	r.Route("/api/v1", func(r chi.Router) {
		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					if cfg.PunchLimiter != nil {
						r.Use(cfg.PunchLimiter.Limit)
					}
					r.Use(middleware.RequirePermission(user.PermissionAttendancePunch))
					r.Post("/punch-in", attendanceHandler.PunchIn)
					r.Post("/punch-out", attendanceHandler.PunchOut)
				})

				r.Route("/employees/{employeeID}", func(r chi.Router) {
					r.With(middleware.RequirePermission(user.PermissionAttendancePunchOnBehalf)).Post("/punch-in", attendanceHandler.PunchInForEmployee)
					r.With(middleware.RequirePermission(user.PermissionAttendancePunchOnBehalf)).Post("/punch-out", attendanceHandler.PunchOutForEmployee)
					r.With(middleware.RequireSupervisor).Get("/today", attendanceHandler.TodayForEmployee)
				})

				r.Get("/today", attendanceHandler.Today)
				r.Get("/my", attendanceHandler.GetMyAttendance)
				r.Get("/summary", attendanceHandler.Summary)
				r.Get("/calendar", attendanceHandler.Calendar)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireSupervisor)
					r.Get("/", attendanceHandler.List)
					r.Get("/filters", attendanceHandler.FilterOptions)
				})

				r.Get("/{id}", attendanceHandler.Get)
				r.With(middleware.RequirePermission(user.PermissionAttendanceCorrect)).Put("/{id}", attendanceHandler.Update)
			})
		})
	})

	return r
}
