package http

import (
	"log/slog"
	"os"

	"github.com/clinicore/attendance-backend-go/internal/config"
	"github.com/clinicore/attendance-backend-go/internal/handler/http/middleware"
	"github.com/clinicore/attendance-backend-go/internal/pkg/metrics"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	cfg *config.Config,
	jwtAuth *jwtauth.JWTAuth,
	attendanceHandler AttendanceHandler,
	checkinHandler CheckinHandler,
	organizationHandler OrganizationHandler,
	notificationHandler NotificationHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "clinicore-attendance"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.App.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Client-ID"},
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

	r.Handle("/metrics", metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {

		// The scan page runs before any operator signs in: payload
		// validation, the device IP probe, check-in itself, and the
		// alternate permission path are all unauthenticated.
		r.Route("/checkin", func(r chi.Router) {
			r.Post("/validate", checkinHandler.ValidatePayload)
			r.Get("/device-ip", checkinHandler.DeviceIP)
		})

		r.Route("/attendances", func(r chi.Router) {
			r.Post("/", attendanceHandler.CheckIn)
			r.Post("/permission-request", attendanceHandler.SubmitPermissionRequest)
			r.Patch("/{id}/check-out", attendanceHandler.CheckOut)

			// Dashboard and admin surface
			r.Group(func(r chi.Router) {
				r.Use(jwtauth.Verifier(jwtAuth))
				r.Use(middleware.AuthRequired(jwtAuth))

				r.Get("/", attendanceHandler.List)
				r.Get("/{id}", attendanceHandler.Get)
				r.Patch("/{id}/ask-permission", attendanceHandler.AskPermission)

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Patch("/{id}/approval", attendanceHandler.SetApproval)
					r.Put("/{id}", attendanceHandler.Update)
					r.Delete("/{id}", attendanceHandler.Delete)
				})
			})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtAuth))
			r.Use(middleware.AuthRequired(jwtAuth))

			r.Post("/checkin/refresh", checkinHandler.Refresh)

			r.Route("/organizations", func(r chi.Router) {
				r.Get("/", organizationHandler.List)
				r.Get("/{id}", organizationHandler.Get)
				r.Get("/{id}/qrcode", organizationHandler.QRCode)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", organizationHandler.Create)
					r.Put("/{id}", organizationHandler.Update)
					r.Delete("/{id}", organizationHandler.Delete)
				})
			})

			r.Route("/networks", func(r chi.Router) {
				r.Get("/", organizationHandler.ListNetworks)
				r.Get("/{id}", organizationHandler.GetNetwork)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", organizationHandler.CreateNetwork)
					r.Put("/{id}", organizationHandler.UpdateNetwork)
					r.Delete("/{id}", organizationHandler.DeleteNetwork)
				})
			})
		})

		// The dashboard stream and feed are session-scoped, keyed by
		// client_id rather than identity.
		r.Route("/notifications", func(r chi.Router) {
			r.Get("/stream", notificationHandler.Stream)
			r.Get("/", notificationHandler.Feed)
			r.Get("/unread-count", notificationHandler.UnreadCount)
			r.Patch("/{id}/read", notificationHandler.MarkAsRead)
			r.Patch("/read-all", notificationHandler.MarkAllAsRead)
			r.Delete("/", notificationHandler.ClearAll)
		})
	})
	return r
}
