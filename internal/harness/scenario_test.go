package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadScenario_Valid(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/oracle_faults.yaml")
	require.NoError(t, err)

	assert.Equal(t, "oracle_faults", scenario.Name)
	assert.Equal(t, []string{"x", "nobody", "y", "w", "y"}, scenario.Oracle.Answers)
	require.Len(t, scenario.Steps, 8)
	assert.Equal(t, EventAdd, scenario.Steps[2].Kind())
	assert.Equal(t, ExpectOracleContract, scenario.Steps[2].ExpectError)
	assert.Equal(t, EventPeek, scenario.Steps[3].Kind())
	assert.Equal(t, "x", *scenario.Steps[3].Peek)
	assert.Equal(t, EventDelete, scenario.Steps[6].Kind())
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestLoadScenario_EmptyPeekExpectsEmptyHeap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.yaml")
	src := `
name: s
description: d
steps:
  - peek: ""
`
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	scenario, err := LoadScenario(path)
	require.NoError(t, err)
	require.NotNil(t, scenario.Steps[0].Peek)
	assert.Equal(t, "", *scenario.Steps[0].Peek)
}

func TestParseScenario_Invalid(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "unknown field",
			src:  "name: s\ndescription: d\nstep:\n  - add: a\n",
			want: "failed to parse YAML",
		},
		{
			name: "missing name",
			src:  "description: d\nsteps:\n  - add: a\n",
			want: "name is required",
		},
		{
			name: "missing description",
			src:  "name: s\nsteps:\n  - add: a\n",
			want: "description is required",
		},
		{
			name: "no steps",
			src:  "name: s\ndescription: d\n",
			want: "steps list is required",
		},
		{
			name: "two oracles",
			src:  "name: s\ndescription: d\noracle:\n  ranking: [a]\n  answers: [a]\nsteps:\n  - add: a\n",
			want: "mutually exclusive",
		},
		{
			name: "two operations",
			src:  "name: s\ndescription: d\nsteps:\n  - add: a\n    delete: true\n",
			want: "steps[0]: exactly one of",
		},
		{
			name: "no operation",
			src:  "name: s\ndescription: d\nsteps:\n  - expect_error: oracle_failed\n",
			want: "steps[0]: exactly one of",
		},
		{
			name: "unknown expected error",
			src:  "name: s\ndescription: d\nsteps:\n  - add: a\n    expect_error: boom\n",
			want: `unknown expect_error "boom"`,
		},
		{
			name: "expected error on peek",
			src:  "name: s\ndescription: d\nsteps:\n  - peek: a\n    expect_error: oracle_failed\n",
			want: "only applies to add and delete",
		},
		{
			name: "negative min capacity",
			src:  "name: s\ndescription: d\nmin_capacity: -1\nsteps:\n  - add: a\n",
			want: "min_capacity",
		},
		{
			name: "assertion without type",
			src:  "name: s\ndescription: d\nsteps:\n  - add: a\nassertions:\n  - value: 1\n",
			want: "assertions[0]: type is required",
		},
		{
			name: "unknown assertion",
			src:  "name: s\ndescription: d\nsteps:\n  - add: a\nassertions:\n  - type: vibes\n",
			want: `unknown assertion type "vibes"`,
		},
		{
			name: "count without value",
			src:  "name: s\ndescription: d\nsteps:\n  - add: a\nassertions:\n  - type: count\n",
			want: "value is required for count",
		},
		{
			name: "negative value",
			src:  "name: s\ndescription: d\nsteps:\n  - add: a\nassertions:\n  - type: queries\n    value: -2\n",
			want: "value must be non-negative",
		},
		{
			name: "peek without item",
			src:  "name: s\ndescription: d\nsteps:\n  - add: a\nassertions:\n  - type: peek\n",
			want: "item is required for peek",
		},
		{
			name: "drain without order",
			src:  "name: s\ndescription: d\nsteps:\n  - add: a\nassertions:\n  - type: drain_order\n",
			want: "order is required",
		},
		{
			name: "pair of three",
			src:  "name: s\ndescription: d\nsteps:\n  - add: a\nassertions:\n  - type: never_asked\n    pair: [a, b, c]\n",
			want: "exactly two items",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.src))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
