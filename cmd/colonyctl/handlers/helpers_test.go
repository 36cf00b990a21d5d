package handlers

import (
	"bytes"
	"context"
	"testing"

	"github.com/go-logr/logr"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/imamik/colonyctl/internal/config"
	colonytest "github.com/imamik/colonyctl/internal/testing"
)

const testKubeconfig = `apiVersion: v1
kind: Config
clusters:
- name: c1
  cluster:
    server: https://10.0.0.10:6443
contexts:
- name: admin@c1
  context:
    cluster: c1
    user: admin
current-context: admin@c1
users:
- name: admin
  user:
    token: abc
`

// testEnv replaces the handler factories with in-memory fakes for the
// duration of a test. Tests using it must not run in parallel.
type testEnv struct {
	backend  *colonytest.FakeBackend
	settings *config.Settings
	out      *bytes.Buffer
	opts     Options

	confirmed bool
	prompts   []string
	pushed    []string
}

func newTestEnv(t *testing.T, backend *colonytest.FakeBackend) *testEnv {
	t.Helper()
	env := &testEnv{
		backend:   backend,
		settings:  &config.Settings{APIURL: "http://colony.test"},
		out:       &bytes.Buffer{},
		confirmed: true,
	}
	env.opts = Options{Output: OutputText, Out: env.out}

	origSettings := loadSettings
	origTimeouts := loadTimeouts
	origBackend := newBackend
	origConfirm := confirmAction
	origPush := pushMetrics
	origLister := newServerLister
	t.Cleanup(func() {
		loadSettings = origSettings
		loadTimeouts = origTimeouts
		newBackend = origBackend
		confirmAction = origConfirm
		pushMetrics = origPush
		newServerLister = origLister
	})

	loadSettings = func(_ string) (*config.Settings, error) { return env.settings, nil }
	loadTimeouts = colonytest.FastTimeouts
	newBackend = func(_ *config.Settings, _ *config.Timeouts, _ logr.Logger, _ prometheus.Registerer) backendPorts {
		return env.backend
	}
	confirmAction = func(_ context.Context, title, _ string) (bool, error) {
		env.prompts = append(env.prompts, title)
		return env.confirmed, nil
	}
	pushMetrics = func(_ context.Context, _ string, command string, g prometheus.Gatherer) error {
		if _, err := g.Gather(); err != nil {
			return err
		}
		env.pushed = append(env.pushed, command)
		return nil
	}
	return env
}

func (e *testEnv) withOutput(format string) Options {
	opts := e.opts
	opts.Output = format
	return opts
}
