package router

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/GregMSThompson/timeline-chart/internal/handlers"
	"github.com/GregMSThompson/timeline-chart/internal/middleware"
)

func NewRouter(deps *handlers.Deps) chi.Router {
	r := chi.NewRouter()

	lm := middleware.NewLoggerMiddleware(deps.Log)
	r.Use(chimiddleware.RequestID)
	r.Use(lm.LoggerMiddleware)
	r.Use(chimiddleware.Recoverer)

	ch := handlers.NewChartHandlers(deps)
	r.Get("/", ch.Index)
	r.Get("/demo.svg", ch.Demo)
	r.Post("/render", ch.Render)

	th := handlers.NewTimelineHandlers(deps)
	am := middleware.NewMiddleware(deps.Firebase)
	r.Group(func(r chi.Router) {
		r.Use(am.FirebaseAuth)
		r.Mount("/timelines", th.TimelineRoutes())
	})
	return r
}
