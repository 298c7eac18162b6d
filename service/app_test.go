package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"testing"
	"time"

	"blogposts/app/config"
	"blogposts/app/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeGracefulShutdown(t *testing.T) {
	repo, err := repositories.Open(repositories.Options{InMemory: true})
	require.NoError(t, err)
	defer repo.Close()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	cfg := config.Default()
	cfg.InMemory = true
	cfg.ShutdownTimeout = time.Second

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Serve(ctx, cfg, repo, ln)
	}()

	baseURL := fmt.Sprintf("http://%s", ln.Addr())

	resp, err := http.Get(baseURL + "/health")
	require.NoError(t, err)
	var health map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", health["status"])

	resp, err = http.Get(baseURL + "/metrics")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}

	_, err = http.Get(baseURL + "/health")
	assert.Error(t, err)
}

func TestServeReturnsListenerError(t *testing.T) {
	repo, err := repositories.Open(repositories.Options{InMemory: true})
	require.NoError(t, err)
	defer repo.Close()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	require.NoError(t, ln.Close())

	err = Serve(context.Background(), config.Default(), repo, ln)
	assert.Error(t, err)
}
