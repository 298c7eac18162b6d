package controllers

import (
	"context"
	"encoding/json"
	"net/http"

	"blogposts/app/services"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// HealthController reports whether the document store is reachable
type HealthController struct {
	store       pinger
	postService *services.PostService
}

func NewHealthController(store pinger, postService *services.PostService) *HealthController {
	return &HealthController{
		store:       store,
		postService: postService,
	}
}

func (hc *HealthController) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/health", hc.Health).Methods("GET").Name("health")
}

func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	count, err := hc.check(r.Context())
	if err != nil {
		log.Warnf("health check failed: %s", err)
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "unavailable"})
		return
	}

	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"status": "ok",
		"posts":  count,
	})
}

func (hc *HealthController) check(ctx context.Context) (int, error) {
	if err := hc.store.Ping(ctx); err != nil {
		return 0, err
	}
	return hc.postService.CountPosts(ctx)
}
