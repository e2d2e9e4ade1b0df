/*
Package monitoring provides performance monitoring and metrics collection.

# Overview

This package implements Prometheus-based metrics collection for the bridge,
tracking boundary HTTP requests, command invocations and the IPC channel.

# Features

- HTTP request metrics (latency, throughput, size)
- Invocation metrics (duration, outcome, error kind)
- WebSocket IPC metrics (connections, frames)
- Uptime

# Usage

	// Create metrics collector on its own registry
	reg := prometheus.NewRegistry()
	metrics := monitoring.NewMetrics(reg)

	// Add middleware to Gin router
	router.Use(monitoring.Middleware(metrics))

	// Time operations
	timer := monitoring.NewTimer(metrics, "http", "http_request")
	// ... perform operation ...
	timer.Stop("success")

# Metrics Endpoint

	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
*/
package monitoring
