// Package httpapi exposes the registry's view of the instrumented model over
// a small diagnostic HTTP surface. It serves reports only; instrumented
// operations are never proxied across the wire.
package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/canary/pkg/classify"
	"github.com/aretw0/canary/pkg/domain"
	"github.com/aretw0/canary/pkg/ports"
)

// Registry is the slice of the inspector the server needs.
type Registry interface {
	Records() []domain.MemberRecord
	Hierarchy() map[string][]string
}

// Server serves the diagnostic API.
type Server struct {
	registry   Registry
	gatherer   prometheus.Gatherer
	instanceID string
	started    time.Time
}

// Option configures the server.
type Option func(*Server)

// WithGatherer sets the prometheus gatherer backing the /metrics route.
// Defaults to the global gatherer.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// NewHandler creates the HTTP handler for a registry.
func NewHandler(registry Registry, opts ...Option) http.Handler {
	s := &Server{
		registry:   registry,
		gatherer:   prometheus.DefaultGatherer,
		instanceID: uuid.NewString(),
		started:    time.Now(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Get("/healthz", s.health)
	r.Get("/api/v1/members", s.members)
	r.Get("/api/v1/hierarchy", s.hierarchy)
	r.Get("/api/v1/stats", s.stats)
	r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	return r
}

// memberDTO is the wire shape of one classified member.
type memberDTO struct {
	Owner           string `json:"owner"`
	Name            string `json:"name"`
	Kind            string `json:"kind"`
	Scope           string `json:"scope"`
	Provenance      string `json:"provenance"`
	ImplementedFrom string `json:"implemented_from,omitempty"`
	Signature       string `json:"signature,omitempty"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"status":      "ok",
		"instance_id": s.instanceID,
		"uptime":      time.Since(s.started).String(),
	})
}

func (s *Server) members(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, toDTOs(s.registry.Records()))
}

func (s *Server) hierarchy(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.registry.Hierarchy())
}

func (s *Server) stats(w http.ResponseWriter, r *http.Request) {
	records := s.registry.Records()
	byKind := map[string]int{}
	byScope := map[string]int{}
	for _, rec := range records {
		byKind[string(rec.Kind)]++
		byScope[string(rec.Scope)]++
	}
	writeJSON(w, map[string]any{
		"members":  len(records),
		"owners":   len(s.registry.Hierarchy()),
		"by_kind":  byKind,
		"by_scope": byScope,
	})
}

func toDTOs(records []domain.MemberRecord) []memberDTO {
	out := make([]memberDTO, 0, len(records))
	for _, rec := range records {
		dto := memberDTO{
			Owner:           rec.OwnerName,
			Name:            rec.Name,
			Kind:            string(rec.Kind),
			Scope:           string(rec.Scope),
			Provenance:      string(rec.Provenance),
			ImplementedFrom: rec.ImplementedFrom,
		}
		if _, callable := rec.Member.(ports.Callable); callable {
			dto.Signature = classify.Signature(rec.Member)
		}
		out = append(out, dto)
	}
	return out
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "encoding response", http.StatusInternalServerError)
	}
}
