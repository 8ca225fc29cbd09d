package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite_Golden(t *testing.T) {
	tests := []struct {
		name  string
		names []string
	}{
		{name: "empty"},
		{name: "single", names: []string{"inbox zero"}},
		{name: "two", names: []string{"ship", "review"}},
		{name: "full_seven", names: []string{"ship", "review", "lunch", "email", "standup", "gym", "taxes"}},
		{name: "twelve", names: []string{
			"task a", "task b", "task c", "task d", "task e", "task f",
			"task g", "task h", "task i", "task j", "task k", "task l",
		}},
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Write(&buf, tt.names, nil))
			g.Assert(t, tt.name, buf.Bytes())
		})
	}
}

func TestRows_PreOrder(t *testing.T) {
	rows := Rows([]string{"a", "b", "c", "d"})
	require.Len(t, rows, 4)

	var order []string
	for _, r := range rows {
		order = append(order, r.Name)
	}
	assert.Equal(t, []string{"a", "b", "d", "c"}, order)
	assert.Equal(t, Row{Index: "3", Tree: " ║╚═", Name: "d"}, rows[2])
}

func TestRows_Empty(t *testing.T) {
	assert.Nil(t, Rows(nil))
	assert.Nil(t, Tree(nil, nil))
}

func TestTree_Colored(t *testing.T) {
	style, err := NewStyle(Palette{
		Background0: "#000000",
		Background1: "#ffffff",
		Index:       "010203",
		Tree:        "#0a0b0c",
		Text:        "#ff0000",
	})
	require.NoError(t, err)

	lines := Tree([]string{"a", "b"}, style)
	require.Len(t, lines, 2)

	assert.Equal(t,
		"\x1b[48;2;0;0;0m\x1b[38;2;1;2;3m0 \x1b[38;2;10;11;12m╚╦\x1b[38;2;255;0;0ma\x1b[0m",
		lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "\x1b[48;2;255;255;255m"), "rows alternate background")
	assert.True(t, strings.HasSuffix(lines[1], "b\x1b[0m"))
}

func TestNewStyle_InvalidColor(t *testing.T) {
	p := DefaultPalette
	p.Tree = "#12345"

	_, err := NewStyle(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "color tree")
}

func TestNewStyle_Default(t *testing.T) {
	_, err := NewStyle(DefaultPalette)
	assert.NoError(t, err)
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		in      string
		r, g, b uint8
		wantErr bool
	}{
		{in: "#89b4fa", r: 0x89, g: 0xb4, b: 0xfa},
		{in: "FFFFFF", r: 255, g: 255, b: 255},
		{in: "", wantErr: true},
		{in: "#zzzzzz", wantErr: true},
		{in: "#1234567", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			r, g, b, err := ParseHex(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, []uint8{tt.r, tt.g, tt.b}, []uint8{r, g, b})
		})
	}
}
