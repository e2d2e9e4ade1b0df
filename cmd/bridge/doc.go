// Command bridge runs the host-side HTTP bridge.
//
// The UI layer reaches it over HTTP (POST /invoke/http_request) or the
// WebSocket IPC channel (/ipc) and uses it to issue outbound HTTP requests
// through the host process.
//
// Usage:
//
//	bridge [-config bridge.yaml] [-host 127.0.0.1] [-port 8000]
//
// Configuration comes from the environment (see internal/infrastructure/config),
// optionally overlaid by a YAML or TOML file. Flags win over both. When a
// config file is given it is watched, and log level changes apply live.
package main
