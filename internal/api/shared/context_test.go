package shared

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTraceID(t *testing.T) {
	t.Run("set and get round-trip", func(t *testing.T) {
		ctx := SetTraceID(context.Background())
		traceID := GetTraceID(ctx)

		assert.Len(t, traceID, 32)
	})

	t.Run("absent trace ID reads as empty", func(t *testing.T) {
		assert.Empty(t, GetTraceID(context.Background()))
	})

	t.Run("ids are unique per context", func(t *testing.T) {
		first := GetTraceID(SetTraceID(context.Background()))
		second := GetTraceID(SetTraceID(context.Background()))

		assert.NotEqual(t, first, second)
	})
}
