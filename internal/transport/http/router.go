package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sent-robotics/robot-relay/internal/application/media"
	"github.com/sent-robotics/robot-relay/internal/application/notification"
	"github.com/sent-robotics/robot-relay/internal/application/session"
	"github.com/sent-robotics/robot-relay/internal/config"
	"github.com/sent-robotics/robot-relay/internal/domain"
	"github.com/sent-robotics/robot-relay/internal/transport/http/handler"
	appmiddleware "github.com/sent-robotics/robot-relay/internal/transport/http/middleware"
	"golang.org/x/time/rate"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	sessionSvc := session.NewService(session.StaticUsers(cfg), deps.JWTProvider)
	notifSvc := notification.NewService(deps.Store, deps.Mailer, deps.Messenger)
	mediaSvc := media.NewService(deps.Camera, deps.Mailer, deps.Archive, cfg.CapturePath)

	sessionH := handler.NewSessionHandler(sessionSvc, cfg.SessionTTL)
	notifH := handler.NewNotificationHandler(notifSvc)
	mediaH := handler.NewMediaHandler(mediaSvc)

	// 5 requests/second with a burst of 10: flood protection on login.
	loginRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	authMw := appmiddleware.Auth(deps.JWTProvider)
	adminOnly := appmiddleware.RequireRole(domain.RoleAdmin)

	// ── Public routes ────────────────────────────────────────────────────
	r.Get("/health-check/ping", handler.Ping)
	r.With(loginRL.Limit).Post("/login", sessionH.Login)
	r.Get("/logout", sessionH.Logout)
	r.Post("/notify", notifH.Receive)
	r.Get("/notify", notifH.List)
	// The stream is only linked from the authenticated dashboard but the
	// endpoint itself is open; the <img> tag cannot attach a header, and
	// the original deployment relied on the page gate. Add authMw here to
	// close it.
	r.Get("/stream", mediaH.Stream)

	// ── Admin routes ─────────────────────────────────────────────────────
	r.Group(func(r chi.Router) {
		r.Use(authMw)
		r.Use(adminOnly)

		r.Post("/clear", notifH.Clear)
		r.Post("/take_photo", mediaH.TakePhoto)
	})

	return r
}
