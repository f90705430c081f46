package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/staffhub-id/leave-backend-go/internal/config"
	"github.com/staffhub-id/leave-backend-go/internal/domain/user"
	"github.com/staffhub-id/leave-backend-go/internal/handler/http/middleware"
	"github.com/staffhub-id/leave-backend-go/internal/pkg/jwt"
)

func NewRouter(cfg *config.Config, jwtService jwt.Service, authHandler AuthHandler, leaveHandler LeaveHandler, holidayHandler HolidayHandler) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "leave-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.App.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
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

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.RefreshToken)
			r.Post("/logout", authHandler.Logout)
			r.Route("/login/oauth", func(r chi.Router) {
				r.Get("/google", authHandler.LoginWithGoogle)
			})
			r.Route("/oauth/callback", func(r chi.Router) {
				r.Get("/google", authHandler.OAuthCallbackGoogle)
			})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/leave", func(r chi.Router) {

				r.Route("/requests", func(r chi.Router) {
					r.With(middleware.RequirePermission(user.PermissionLeaveCreate)).
						Post("/", leaveHandler.SubmitRequest)
					r.With(middleware.RequirePermission(user.PermissionLeaveViewOwn)).
						Get("/my", leaveHandler.GetMyRequests)

					r.With(middleware.RequireManager).
						Get("/pending", leaveHandler.ListPendingApprovals)

					r.Route("/{id}", func(r chi.Router) {
						r.Get("/", leaveHandler.GetRequest)
						r.With(middleware.RequirePermission(user.PermissionLeaveApprove)).
							Post("/approve", leaveHandler.ApproveRequest)
						r.With(middleware.RequirePermission(user.PermissionLeaveApprove)).
							Post("/reject", leaveHandler.RejectRequest)
						r.Post("/shorten", leaveHandler.ShortenRequest)
					})
				})

				r.Route("/types", func(r chi.Router) {
					r.Get("/", leaveHandler.ListTypes)

					// HR only
					r.Group(func(r chi.Router) {
						r.Use(middleware.RequirePermission(user.PermissionLeaveManageTypes))
						r.Post("/", leaveHandler.CreateType)
						r.Put("/{id}", leaveHandler.UpdateType)
						r.Delete("/{id}", leaveHandler.DeleteType)
					})
				})

				r.Route("/balances", func(r chi.Router) {
					r.With(middleware.RequirePermission(user.PermissionLeaveViewOwn)).
						Get("/my", leaveHandler.GetMyBalances)

					// HR only
					r.Group(func(r chi.Router) {
						r.Use(middleware.RequirePermission(user.PermissionBalanceAdjust))
						r.Get("/{employeeID}", leaveHandler.GetBalances)
						r.Post("/adjust", leaveHandler.AdjustBalance)
					})
				})

				r.Post("/attachments", leaveHandler.UploadAttachment)
			})

			r.Route("/holidays", func(r chi.Router) {
				r.Get("/", holidayHandler.List)
				r.Get("/business-days", holidayHandler.BusinessDays)

				// HR only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionHolidayManage))
					r.Post("/", holidayHandler.Create)
					r.Delete("/{id}", holidayHandler.Delete)
				})
			})
		})
	})
	return r
}
