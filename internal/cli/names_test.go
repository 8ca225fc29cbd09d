package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeItemName(t *testing.T) {
	name, err := normalizeItemName("  write report \n")
	require.NoError(t, err)
	assert.Equal(t, "write report", name)

	// "e" followed by a combining acute accent composes to a single rune.
	name, err = normalizeItemName("cafe\u0301")
	require.NoError(t, err)
	assert.Equal(t, "caf\u00e9", name)
}

func TestNormalizeItemName_Invalid(t *testing.T) {
	for _, raw := range []string{"", "   ", "tab\there", strings.Repeat("x", maxNameLen+1)} {
		_, err := normalizeItemName(raw)
		require.Error(t, err, "%q", raw)
		assert.Equal(t, CodeInvalidName, errorReason(err))
		assert.Equal(t, ExitCommandError, GetExitCode(err))
	}
}

func TestNormalizeHeapName(t *testing.T) {
	for _, raw := range []string{"work", "home-2", "q3_goals", "v1.0", "études"} {
		name, err := normalizeHeapName(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, raw, name)
	}

	for _, raw := range []string{"", "two words", "a/b", "semi;colon"} {
		_, err := normalizeHeapName(raw)
		require.Error(t, err, "%q", raw)
		assert.Equal(t, CodeInvalidName, errorReason(err))
	}
}
