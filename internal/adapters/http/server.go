package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/prochem/flowsim/pkg/domain"
)

// Engine defines the interface for the flowsheet solver core.
type Engine interface {
	Solve(ctx context.Context) (*domain.Result, error)
	Advance(ctx context.Context, dt float64) (*domain.Result, error)
	Snapshot() domain.Snapshot
	Topology() *domain.Topology
}

// Server exposes a flowsheet engine over HTTP.
type Server struct {
	Engine Engine
}

// NewHandler creates the HTTP handler for the engine.
func NewHandler(engine Engine) http.Handler {
	server := &Server{Engine: engine}
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", server.Health)
	r.Get("/topology", server.GetTopology)
	r.Get("/streams", server.GetStreams)
	r.Post("/solve", server.Solve)
	r.Post("/advance", server.Advance)

	return r
}

// Health handles the GET /healthz request.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

// GetTopology handles the GET /topology request.
func (s *Server) GetTopology(w http.ResponseWriter, r *http.Request) {
	topo := s.Engine.Topology()

	units := make(map[string]domain.UnitSpec, len(topo.Units))
	for name, spec := range topo.Units {
		units[name] = spec
	}
	writeJSON(w, map[string]any{
		"units": units,
		"order": topo.Order,
	})
}

// GetStreams handles the GET /streams request: the current state of every
// stream, solved or not.
func (s *Server) GetStreams(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Engine.Snapshot())
}

// Solve handles the POST /solve request.
func (s *Server) Solve(w http.ResponseWriter, r *http.Request) {
	result, err := s.Engine.Solve(r.Context())
	if err != nil {
		status := http.StatusInternalServerError
		var conv *domain.ConvergenceFailure
		if errors.As(err, &conv) {
			// The flowsheet is valid but would not settle; that is a
			// client-data problem, not a server fault.
			status = http.StatusUnprocessableEntity
		}
		http.Error(w, fmt.Sprintf("Solve error: %v", err), status)
		return
	}
	writeJSON(w, result)
}

// Advance handles the POST /advance?dt=<hours> request.
func (s *Server) Advance(w http.ResponseWriter, r *http.Request) {
	dt, err := strconv.ParseFloat(r.URL.Query().Get("dt"), 64)
	if err != nil || dt <= 0 {
		http.Error(w, "Query parameter dt must be a positive number of hours", http.StatusBadRequest)
		return
	}

	result, err := s.Engine.Advance(r.Context(), dt)
	if err != nil {
		http.Error(w, fmt.Sprintf("Advance error: %v", err), http.StatusInternalServerError)
		return
	}
	writeJSON(w, result)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		fmt.Printf("Response encode error: %v\n", err)
	}
}
