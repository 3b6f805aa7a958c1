package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/wcraske/simpleCalendar/internal/api/handlers"
	"github.com/wcraske/simpleCalendar/internal/config"
	"github.com/wcraske/simpleCalendar/internal/metrics"
	"github.com/wcraske/simpleCalendar/internal/middleware"
	"github.com/wcraske/simpleCalendar/internal/models"
	"github.com/wcraske/simpleCalendar/internal/services"
)

type RouterDeps struct {
	Cfg      config.Config
	Log      *slog.Logger
	UserSvc  *services.UserService
	EventSvc *services.EventService
	Weather  handlers.WeatherSource
}

func NewRouter(d RouterDeps) http.Handler {
	if d.Log == nil {
		d.Log = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RequestLogger(d.Log), middleware.Recover, middleware.HTTPMetrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: d.Cfg.CORSAllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
	}))

	authH := handlers.NewAuthHandler(d.UserSvc)
	eventH := handlers.NewEventHandler(d.EventSvc)
	userH := handlers.NewUserHandler(d.UserSvc)
	weatherH := handlers.NewWeatherHandler(d.Weather)
	am := middleware.NewAuthMiddleware(d.UserSvc)

	// health & metrics
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", metrics.Handler())

	r.Post("/token", authH.Login)
	r.Post("/register", authH.Register)
	r.Get("/weather", weatherH.Current)

	r.Group(func(r chi.Router) {
		r.Use(am.Auth)

		r.Get("/users/me/", authH.Me)

		r.Route("/events", func(r chi.Router) {
			r.Post("/", eventH.Create)
			r.Get("/", eventH.List)
			r.Get("/{id}", eventH.Get)
			r.Put("/{id}", eventH.Update)
			r.Delete("/{id}", eventH.Delete)
		})
		r.Get("/upcoming-events/", eventH.Upcoming)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(models.RoleAdmin))
			r.Get("/users/", userH.List)
			r.Delete("/users/{id}", userH.Delete)
		})
	})

	return r
}
