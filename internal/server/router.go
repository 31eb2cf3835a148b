package server

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"barkeep/internal/handlers"
	applog "barkeep/internal/log"
	"barkeep/internal/metrics"
)

func newRouter(withMetrics bool) http.Handler {
	mux := http.NewServeMux()
	applog.Debug(context.Background(), "registering http routes")

	handle := func(pattern, route string, h http.HandlerFunc) {
		var handler http.Handler = h
		if withMetrics {
			handler = metrics.Middleware(route, handler)
		}
		mux.Handle(pattern, handler)
		applog.Debug(context.Background(), "route registered", "path", pattern)
	}

	handle("/healthz", "/healthz", handlers.Health)
	handle("/api/ingredients", "/api/ingredients", handlers.IngredientResource)
	handle("/api/ingredients/", "/api/ingredients/*", handlers.IngredientResource)
	handle("/api/recipes", "/api/recipes", handlers.RecipeResource)
	handle("/api/recipes/", "/api/recipes/*", handlers.RecipeResource)

	if withMetrics {
		mux.Handle("/metrics", promhttp.Handler())
		applog.Debug(context.Background(), "route registered", "path", "/metrics")
	}
	return mux
}
