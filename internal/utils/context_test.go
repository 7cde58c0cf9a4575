package utils

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunIDFromCtx(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, RunIDFromCtx(ctx))

	ctx = WithRunID(ctx, "0b5c7a4e-1f7e-4bde-9a8f-3a0d3c3b8e11")
	assert.Equal(t, "0b5c7a4e-1f7e-4bde-9a8f-3a0d3c3b8e11", RunIDFromCtx(ctx))
}
