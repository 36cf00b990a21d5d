// Package handlers implements the business logic for CLI commands.
//
// Each exported function backs one cobra command: it builds an orchestrator
// service from settings, runs the operation and renders the result. Factory
// variables let tests substitute the backend and other integrations.
package handlers

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"

	"github.com/imamik/colonyctl/internal/config"
	"github.com/imamik/colonyctl/internal/gateway"
	"github.com/imamik/colonyctl/internal/orchestrator"
	"github.com/imamik/colonyctl/internal/platform/backend"
	"github.com/imamik/colonyctl/internal/platform/files"
	"github.com/imamik/colonyctl/internal/platform/hcloud"
	"github.com/imamik/colonyctl/internal/platform/s3"
)

// Options carries the global flags shared by all commands.
type Options struct {
	EnvFile   string
	Verbosity int
	Output    string
	// Out receives rendered results. Defaults to os.Stdout.
	Out io.Writer
}

// backendPorts is the combined surface of the backend adapter.
type backendPorts interface {
	gateway.ClusterGateway
	gateway.NodesProvider
}

// Factory function variables - can be replaced in tests.
var (
	loadSettings = config.LoadSettings
	loadTimeouts = config.LoadTimeouts

	newBackend = func(settings *config.Settings, timeouts *config.Timeouts, log logr.Logger, reg prometheus.Registerer) backendPorts {
		return backend.New(settings.APIURL,
			backend.WithToken(settings.APIToken),
			backend.WithTimeouts(timeouts),
			backend.WithLogger(log.WithName("backend")),
			backend.WithMetrics(backend.NewMetrics(reg)),
		)
	}

	newObjectStore = func(s config.S3Settings) (files.ObjectStore, error) {
		return s3.NewClient(s.Endpoint, s.Region, s.AccessKey, s.SecretKey)
	}

	newServerLister = func(token string, timeouts *config.Timeouts) hcloud.ServerLister {
		return hcloud.NewRealClient(token, hcloud.WithTimeouts(timeouts))
	}

	pushMetrics = func(ctx context.Context, url, command string, g prometheus.Gatherer) error {
		return push.New(url, "colonyctl").
			Grouping("command", command).
			Gatherer(g).
			PushContext(ctx)
	}
)

// session holds everything a single command invocation needs.
type session struct {
	command  string
	settings *config.Settings
	timeouts *config.Timeouts
	service  *orchestrator.Service
	store    *files.Store
	registry *prometheus.Registry
	log      logr.Logger
	out      *printer
}

func newSession(command string, opts Options) (*session, error) {
	out, err := newPrinter(opts.Out, opts.Output)
	if err != nil {
		return nil, err
	}

	settings, err := loadSettings(opts.EnvFile)
	if err != nil {
		return nil, err
	}
	timeouts := loadTimeouts()
	logger := newLogger(opts.Verbosity).WithValues("command", command)
	registry := prometheus.NewRegistry()

	storeOpts := []files.Option{files.WithLogger(logger.WithName("files"))}
	if settings.S3.Configured() {
		objects, err := newObjectStore(settings.S3)
		if err != nil {
			return nil, fmt.Errorf("failed to create object storage client: %w", err)
		}
		storeOpts = append(storeOpts, files.WithObjectStore(objects))
	}
	store := files.NewStore(storeOpts...)

	ports := newBackend(settings, timeouts, logger, registry)
	service := orchestrator.New(ports, ports,
		orchestrator.WithLogger(logger.WithName("orchestrator")),
		orchestrator.WithTimeouts(timeouts),
		orchestrator.WithFileWriter(store),
		orchestrator.WithMetrics(orchestrator.NewMetrics(registry)),
	)

	return &session{
		command:  command,
		settings: settings,
		timeouts: timeouts,
		service:  service,
		store:    store,
		registry: registry,
		log:      logger,
		out:      out,
	}, nil
}

// finish pushes the collected metrics when a Pushgateway is configured.
// Push failures are logged and never fail the command.
func (s *session) finish(ctx context.Context) {
	if s.settings.PushgatewayURL == "" {
		return
	}
	if err := pushMetrics(context.WithoutCancel(ctx), s.settings.PushgatewayURL, s.command, s.registry); err != nil {
		s.log.Error(err, "failed to push metrics", "url", s.settings.PushgatewayURL)
	}
}

// newLogger returns a logr.Logger writing through the standard log package.
// Verbosity 0 shows Info and Error; each -v enables one more V level.
func newLogger(verbosity int) logr.Logger {
	return funcr.New(func(prefix, args string) {
		if prefix != "" {
			log.Printf("%s: %s", prefix, args)
			return
		}
		log.Println(args)
	}, funcr.Options{Verbosity: verbosity})
}
