package bench

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStrategy(t *testing.T) {
	for _, s := range []Strategy{Cloned, Shared} {
		got, err := ParseStrategy(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}

	_, err := ParseStrategy("")
	assert.ErrorAs(t, err, new(*UnrecognizedStrategyError))
	assert.Equal(t, "Strategy(9)", Strategy(9).String())
}
