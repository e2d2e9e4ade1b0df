// Package config provides 12-factor configuration management for the bridge.
//
// Configuration is loaded from environment variables with sensible defaults,
// optionally overlaid by a YAML or TOML file. CLI flags override both.
//
// Configuration Sections:
//   - Server: HTTP server settings (port, host)
//   - Transport: outbound timeout and proxy
//   - Logging: Log level and output format
//   - RateLimit: Per-IP rate limiting configuration
//   - CORS: allowed origins
//
// Example Usage:
//
//	cfg, err := config.LoadWithFile("bridge.yaml")
//	go config.Watch(ctx, "bridge.yaml", logger, func(c *config.Config) {
//		_ = log.SetLevel(c.Logging.Level)
//	})
//
// Environment Variables:
//   - PORT, HOST
//   - TRANSPORT_TIMEOUT_SECONDS, TRANSPORT_PROXY
//   - LOG_LEVEL, LOG_DEV
//   - RATE_LIMIT_RPS, RATE_LIMIT_BURST, RATE_LIMIT_ENABLED
//   - CORS_ALLOW_ORIGINS
package config
