package routes

import (
	"encoding/json"
	"net/http"

	"blogposts/app/controllers"
	"blogposts/app/metrics"
	"blogposts/app/middleware"
	"blogposts/app/repositories"
	"blogposts/app/services"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRoutes defines the application's routes and returns a router.
// The repository is owned by the caller and must outlive the router.
func SetupRoutes(repo *repositories.Repository, metricsManager *metrics.Manager, gatherer prometheus.Gatherer) *mux.Router {
	router := mux.NewRouter()

	// Apply global middleware
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer(metricsManager))
	router.Use(middleware.RequestMetrics(metricsManager))

	router.NotFoundHandler = jsonError("Not found", http.StatusNotFound)
	router.MethodNotAllowedHandler = jsonError("Method not allowed", http.StatusMethodNotAllowed)

	postService := services.NewPostService(repo.Posts())

	router.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})).Methods("GET").Name("metrics")

	// JSON API
	api := router.NewRoute().Subrouter()
	api.Use(middleware.ContentTypeJSON)
	controllers.NewPostController(postService, metricsManager).RegisterRoutes(api)
	controllers.NewHealthController(repo, postService).RegisterRoutes(api)

	return router
}

func jsonError(message string, status int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
	})
}
