package oracle

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrompt_Choose(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		prompts int
	}{
		{name: "first", input: "1\n", want: "write tests", prompts: 1},
		{name: "second", input: "2\n", want: "fix bug", prompts: 1},
		{name: "leading digit counts", input: "2 please\n", want: "fix bug", prompts: 1},
		{name: "skips empty lines", input: "\n\n1\n", want: "write tests", prompts: 3},
		{name: "skips other input", input: "x\n3\n2\n", want: "fix bug", prompts: 3},
		{name: "no trailing newline", input: "1", want: "write tests", prompts: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := pair(t, "write tests", "fix bug")
			var out bytes.Buffer
			p := NewPrompt(bufio.NewReader(strings.NewReader(tt.input)), &out)

			got, err := p.Choose(context.Background(), a, b)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Name())

			assert.True(t, strings.HasPrefix(out.String(), "(1) write tests\n(2) fix bug\n"))
			assert.Equal(t, tt.prompts, strings.Count(out.String(), "Select higher priority: "))
		})
	}
}

func TestPrompt_EOF(t *testing.T) {
	a, b := pair(t, "a", "b")
	p := NewPrompt(bufio.NewReader(strings.NewReader("maybe\n")), &bytes.Buffer{})

	_, err := p.Choose(context.Background(), a, b)
	assert.ErrorIs(t, err, ErrNoInput)
}

func TestPrompt_Cancelled(t *testing.T) {
	a, b := pair(t, "a", "b")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := NewPrompt(bufio.NewReader(strings.NewReader("1\n")), &bytes.Buffer{})

	_, err := p.Choose(ctx, a, b)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPrompt_SharedReader(t *testing.T) {
	a, b := pair(t, "a", "b")
	in := bufio.NewReader(strings.NewReader("2\nview\n"))
	p := NewPrompt(in, &bytes.Buffer{})

	got, err := p.Choose(context.Background(), a, b)
	require.NoError(t, err)
	assert.Equal(t, "b", got.Name())

	line, err := ReadLine(in)
	require.NoError(t, err)
	assert.Equal(t, "view", line)
}

func TestReadLine(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("  add milk \r\nlast"))

	line, err := ReadLine(in)
	require.NoError(t, err)
	assert.Equal(t, "add milk", line)

	line, err = ReadLine(in)
	require.NoError(t, err)
	assert.Equal(t, "last", line)

	_, err = ReadLine(in)
	assert.ErrorIs(t, err, ErrNoInput)
}
