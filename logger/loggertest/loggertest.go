// Package loggertest builds zap loggers for use in tests.
package loggertest

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

// New returns a logger that writes through t.Log.
func New(t *testing.T) *zap.Logger {
	return zaptest.NewLogger(t)
}
