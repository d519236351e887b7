// Package logging builds the process-wide structured logger.
package logging

import "go.uber.org/zap"

// New returns the service logger. debug switches to the development
// config with human-readable output and debug-level verbosity.
func New(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
