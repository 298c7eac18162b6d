package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"blogposts/app/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	oldOut, oldLevel := log.StandardLogger().Out, log.GetLevel()
	log.SetOutput(&buf)
	log.SetLevel(log.DebugLevel)
	t.Cleanup(func() {
		log.SetOutput(oldOut)
		log.SetLevel(oldLevel)
	})

	handler := Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest("GET", "/test", nil)
	rw := httptest.NewRecorder()
	handler.ServeHTTP(rw, req)

	assert.Equal(t, http.StatusTeapot, rw.Code)
	logOutput := buf.String()
	assert.Contains(t, logOutput, "method=GET")
	assert.Contains(t, logOutput, "path=/test")
	assert.Contains(t, logOutput, "status=418")
	assert.Contains(t, logOutput, "duration=")
}

func TestRecoverer(t *testing.T) {
	var buf bytes.Buffer
	oldOut := log.StandardLogger().Out
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(oldOut) })

	t.Run("panic", func(t *testing.T) {
		metricsManager := metrics.NewTestManager()
		handler := Recoverer(metricsManager)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic("test panic")
		}))

		req := httptest.NewRequest("GET", "/test", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Internal Server Error\n", w.Body.String())
		assert.Equal(t, float64(1), testutil.ToFloat64(metricsManager.CounterHandleRequestPanic))
		assert.Contains(t, buf.String(), "test panic")
	})

	t.Run("no panic", func(t *testing.T) {
		metricsManager := metrics.NewTestManager()
		handler := Recoverer(metricsManager)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}))

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, float64(0), testutil.ToFloat64(metricsManager.CounterHandleRequestPanic))
	})

	t.Run("nil metrics manager", func(t *testing.T) {
		handler := Recoverer(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic("boom")
		}))

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestContentTypeJSON(t *testing.T) {
	handler := ContentTypeJSON(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/posts", nil))

	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
}

func TestRequestMetrics(t *testing.T) {
	metricsManager := metrics.NewTestManager()

	handler := RequestMetrics(metricsManager)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 3; i++ {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/posts", nil))
	}
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("DELETE", "/posts/x", nil))

	assert.Equal(t, float64(3), testutil.ToFloat64(metricsManager.CounterRequests.WithLabelValues("GET", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(metricsManager.CounterRequests.WithLabelValues("DELETE", "204")))
}

func TestRequestMetricsWithoutManager(t *testing.T) {
	var buf bytes.Buffer
	oldOut := log.StandardLogger().Out
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(oldOut) })

	panicCounter := metrics.NewTestManager()
	handler := Recoverer(panicCounter)(RequestMetrics(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/posts", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), testutil.ToFloat64(panicCounter.CounterHandleRequestPanic))
	assert.NotContains(t, buf.String(), "panic")
}
