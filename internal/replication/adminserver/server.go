package adminserver

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	_ "net/http/pprof"
)

// Runner is the subset of worker.Worker the admin server needs to report
// liveness without importing the worker package directly.
type Runner interface {
	IsRunning() bool
}

// Server is the worker process's HTTP admin surface: /healthz reports
// whether every worker goroutine is still running, /shutdown requests a
// graceful stop, and the net/http/pprof routes are exposed for profiling.
// It is meant to share one listener with the admin gRPC health service via
// cmux, the way pprof.Server does in the teacher.
type Server struct {
	config
	httpServer http.Server
	workers    []Runner
	shutdown   func()
}

// New builds a Server reporting on workers and invoking shutdown when a
// client requests /shutdown.
func New(workers []Runner, shutdown func(), opts ...Option) *Server {
	cfg := newConfig(opts)
	s := &Server{config: cfg, workers: workers, shutdown: shutdown}

	mux := http.NewServeMux()
	mux.Handle("/debug/pprof/", http.DefaultServeMux)
	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.HandleFunc("/shutdown", s.handleShutdown)

	s.httpServer = http.Server{
		Handler:           mux,
		ReadHeaderTimeout: cfg.readHeaderTimeout,
		WriteTimeout:      cfg.writeTimeout,
		IdleTimeout:       cfg.idleTimeout,
	}
	return s
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	running := 0
	for _, wk := range s.workers {
		if wk.IsRunning() {
			running++
		}
	}
	status := http.StatusOK
	if running != len(s.workers) {
		status = http.StatusServiceUnavailable
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]int{
		"workers":        len(s.workers),
		"workersRunning": running,
	})
}

func (s *Server) handleShutdown(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	go s.shutdown()
	w.WriteHeader(http.StatusAccepted)
}

// Run serves the admin HTTP endpoints on ls until it is closed.
func (s *Server) Run(ls net.Listener) error {
	return s.httpServer.Serve(ls)
}

// Close shuts the HTTP server down gracefully.
func (s *Server) Close(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
