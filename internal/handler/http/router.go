package http

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Ogbudugodwin/Workhub-sub001/internal/domain/user"
	"github.com/Ogbudugodwin/Workhub-sub001/internal/handler/http/middleware"
	"github.com/Ogbudugodwin/Workhub-sub001/internal/pkg/jwt"
)

type RouterOptions struct {
	Logger         *slog.Logger
	AllowedOrigins []string
	// TrustProxy enables chi's RealIP so tracking events record the client address.
	TrustProxy bool
}

type Handlers struct {
	Attendance AttendanceHandler
	Master     MasterHandler
	Campaign   CampaignHandler
	Tracking   TrackingHandler
}

func NewRouter(JWTService jwt.Service, handlers Handlers, opts RouterOptions) *chi.Mux {
	r := chi.NewRouter()
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	if opts.TrustProxy {
		r.Use(chiMiddleware.RealIP)
	}

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Handle("/metrics", promhttp.Handler())

	// Public tracking endpoints embedded in delivered e-mails
	r.Route("/track", func(r chi.Router) {
		r.Get("/open/{campaignId}/{trackingId}", handlers.Tracking.Open)
		r.Get("/click/{campaignId}/{trackingId}", handlers.Tracking.Click)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(chiMiddleware.AllowContentType("application/json"))

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.RequireIdentity)

			r.Route("/attendance", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireCapability(user.CapabilityAttendanceClock))
					r.Post("/clock-in", handlers.Attendance.ClockIn)
					r.Post("/clock-out", handlers.Attendance.ClockOut)
					r.Get("/status", handlers.Attendance.GetTodayStatus)
					r.Get("/my", handlers.Attendance.GetMyAttendance)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireCapability(user.CapabilityAttendanceViewAll))
					r.Use(middleware.RequireCompany)
					r.Get("/", handlers.Attendance.List)
					r.Get("/export", handlers.Attendance.Export)
				})
			})

			r.Route("/branches", func(r chi.Router) {
				r.Get("/", handlers.Master.ListBranches)
				r.Get("/{id}", handlers.Master.GetBranch)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireCapability(user.CapabilityBranchManage))
					r.Put("/{id}/attendance-settings", handlers.Master.UpdateAttendanceSettings)
				})
			})

			r.Route("/campaigns", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireCapability(user.CapabilityCampaignManage))
					r.Post("/", handlers.Campaign.Create)
					r.Get("/", handlers.Campaign.List)
					r.Get("/{id}", handlers.Campaign.Get)
					r.Put("/{id}", handlers.Campaign.Update)
					r.Get("/{id}/analytics", handlers.Campaign.GetAnalytics)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireCapability(user.CapabilityCampaignSend))
					r.Post("/{id}/send", handlers.Campaign.Send)
				})
			})

			r.Route("/recipient-lists", func(r chi.Router) {
				r.Use(middleware.RequireCapability(user.CapabilityCampaignManage))
				r.Post("/", handlers.Campaign.CreateRecipientList)
				r.Get("/", handlers.Campaign.ListRecipientLists)
				r.Get("/{id}", handlers.Campaign.GetRecipientList)
			})
		})
	})
	return r
}
