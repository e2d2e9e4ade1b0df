// Package service provides the command registry behind the UI boundary.
//
// Providers register a service definition; every tool in the definition
// becomes a command the UI layer can invoke by ID (for example
// "http_request"). The registry is safe for concurrent use.
package service
