// Package config loads colonyctl's runtime configuration.
//
// Three sources are supported:
//   - [LoadSettings]: backend endpoint, credentials and integrations from the
//     environment, optionally seeded from a .env file.
//   - [LoadTimeouts]: polling and API timeouts from the environment.
//   - [DecodeRequest]: a YAML deploy request describing the desired cluster.
//     It does not validate, so callers can merge command-line overrides
//     before calling [ValidateRequest].
package config
