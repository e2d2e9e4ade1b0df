package utils

import (
	"fmt"
	"regexp"
)

// Boundary limits
const (
	MaxArgsSize      = 16 * 1024 * 1024 // 16MB - invocation arguments, request body included
	MaxCommandLength = 128
)

// CommandPattern allows alphanumeric, hyphens, underscores, and dots
var CommandPattern = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)

// ValidateCommand checks a command name before registry lookup
func ValidateCommand(name string) error {
	if name == "" {
		return fmt.Errorf("command is required")
	}
	if len(name) > MaxCommandLength {
		return fmt.Errorf("command exceeds maximum length of %d", MaxCommandLength)
	}
	if !CommandPattern.MatchString(name) {
		return fmt.Errorf("command contains invalid characters")
	}
	return nil
}

// ValidateArgsSize checks the raw argument payload size
func ValidateArgsSize(data []byte) error {
	if len(data) > MaxArgsSize {
		return fmt.Errorf("arguments size %d bytes exceeds maximum %d bytes", len(data), MaxArgsSize)
	}
	return nil
}
