// cmd/worker-manager/server.go
package main

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"jobseeker-scoring/internal/common/database"
	"jobseeker-scoring/internal/common/logger"
)

func newServer(addr string, checker *database.Checker, log logger.Logger) *http.Server {
	if addr == "" {
		addr = ":8080"
	}
	return &http.Server{
		Addr:              addr,
		Handler:           newMux(checker, log),
		ReadHeaderTimeout: 5 * time.Second,
	}
}

func newMux(checker *database.Checker, log logger.Logger) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		backends, err := checker.Check(r.Context())
		if err != nil {
			log.Warn("readiness check failed", map[string]interface{}{"error": err.Error()})
			writeJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
				"status":   "not_ready",
				"backends": backends,
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"status":   "ready",
			"backends": backends,
		})
	})

	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
