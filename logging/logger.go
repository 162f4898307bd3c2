// Package logging provides the service logger and in-process request
// statistics.
package logging

import (
	"os"

	"go.uber.org/zap"
)

// NewLogger builds the service logger. DEV_MODE=true switches to the
// human-readable development encoder.
func NewLogger() (*zap.Logger, error) {
	if os.Getenv(EnvDevMode) == "true" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
