//go:build unit

package minicron

import (
	"context"
	"testing"

	"github.com/LerianStudio/lib-minicron/minicron/log"
	"github.com/stretchr/testify/assert"
)

type namedLogger struct {
	log.Logger
	name string
}

func TestNewLoggerFromContext_DefaultsToNop(t *testing.T) {
	t.Parallel()

	assert.Equal(t, log.NewNop(), NewLoggerFromContext(context.Background()))

	//nolint:staticcheck // nil context is part of the contract
	assert.Equal(t, log.NewNop(), NewLoggerFromContext(nil))
}

func TestContextWithLogger(t *testing.T) {
	t.Parallel()

	logger := &namedLogger{Logger: log.NewNop(), name: "stderr"}
	ctx := ContextWithLogger(context.Background(), logger)

	assert.Same(t, logger, NewLoggerFromContext(ctx))
}

func TestContextWithRunID_DoesNotMutateParent(t *testing.T) {
	t.Parallel()

	logger := &namedLogger{Logger: log.NewNop(), name: "stderr"}
	parent := ContextWithLogger(context.Background(), logger)
	child := ContextWithRunID(parent, "run-1")

	assert.Equal(t, "run-1", RunIDFromContext(child))
	assert.Equal(t, "", RunIDFromContext(parent))
	assert.Same(t, logger, NewLoggerFromContext(child), "logger survives the derived context")
	assert.Equal(t, "", RunIDFromContext(context.Background()))
}
