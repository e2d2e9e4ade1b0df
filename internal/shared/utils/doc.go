// Package utils holds input checks shared by the HTTP and IPC boundaries.
package utils
