package orchestrator

import (
	"github.com/go-logr/logr"

	"github.com/imamik/colonyctl/internal/config"
	"github.com/imamik/colonyctl/internal/gateway"
)

// Service orchestrates cluster deployment and scaling against the backend ports.
type Service struct {
	clusters gateway.ClusterGateway
	nodes    gateway.NodesProvider
	files    gateway.FileWriter

	timeouts *config.Timeouts
	log      logr.Logger
	metrics  *Metrics
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger. The default discards everything.
func WithLogger(log logr.Logger) Option {
	return func(s *Service) {
		s.log = log
	}
}

// WithTimeouts overrides the polling timeouts loaded from the environment.
func WithTimeouts(t *config.Timeouts) Option {
	return func(s *Service) {
		if t != nil {
			s.timeouts = t
		}
	}
}

// WithFileWriter sets the writer used by ExportKubeconfig.
func WithFileWriter(w gateway.FileWriter) Option {
	return func(s *Service) {
		s.files = w
	}
}

// WithMetrics enables metric recording.
func WithMetrics(m *Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// New creates a Service over the given ports.
func New(clusters gateway.ClusterGateway, nodes gateway.NodesProvider, opts ...Option) *Service {
	s := &Service{
		clusters: clusters,
		nodes:    nodes,
		log:      logr.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.timeouts == nil {
		s.timeouts = config.LoadTimeouts()
	}
	return s
}
