package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputSchema(t *testing.T) {
	schema := OutputSchema()

	assert.Equal(t, "object", schema["type"])
	assert.NotContains(t, schema, "$schema")
	assert.NotContains(t, schema, "$id")

	props, ok := schema["properties"].(map[string]any)
	require.True(t, ok, "properties must be an object")

	for _, key := range []string{"ticker", "current_price", "change_pct", "timeframe", "top_headline", "analysis"} {
		assert.Contains(t, props, key)
	}

	required, ok := schema["required"].([]any)
	require.True(t, ok, "required must be a list")
	assert.Len(t, required, 6)
}
