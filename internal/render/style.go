package render

import (
	"fmt"
	"strconv"
	"strings"
)

const reset = "\x1b[0m"

// Palette names the colors of a rendered tree as hex RGB strings such as
// "#89b4fa". Rows alternate between the two backgrounds.
type Palette struct {
	Background0 string
	Background1 string
	Index       string
	Tree        string
	Text        string
}

// DefaultPalette is used when no colors are configured.
var DefaultPalette = Palette{
	Background0: "#1e1e2e",
	Background1: "#313244",
	Index:       "#7f849c",
	Tree:        "#89b4fa",
	Text:        "#cdd6f4",
}

// Style holds the terminal escape sequences for a Palette.
type Style struct {
	background [2]string
	index      string
	tree       string
	text       string
}

// NewStyle converts a palette to 24-bit color escape sequences.
func NewStyle(p Palette) (*Style, error) {
	var s Style
	fields := []struct {
		name   string
		hex    string
		dst    *string
		ground int
	}{
		{"background0", p.Background0, &s.background[0], 48},
		{"background1", p.Background1, &s.background[1], 48},
		{"index", p.Index, &s.index, 38},
		{"tree", p.Tree, &s.tree, 38},
		{"text", p.Text, &s.text, 38},
	}
	for _, f := range fields {
		r, g, b, err := ParseHex(f.hex)
		if err != nil {
			return nil, fmt.Errorf("color %s: %w", f.name, err)
		}
		*f.dst = fmt.Sprintf("\x1b[%d;2;%d;%d;%dm", f.ground, r, g, b)
	}
	return &s, nil
}

// ParseHex parses a color written as "rrggbb" or "#rrggbb".
func ParseHex(hex string) (r, g, b uint8, err error) {
	s := strings.TrimPrefix(hex, "#")
	if len(s) != 6 {
		return 0, 0, 0, fmt.Errorf("invalid hex color %q", hex)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid hex color %q", hex)
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v), nil
}

func (s *Style) apply(i int, row Row) string {
	return s.background[i%2] +
		s.index + row.Index + " " +
		s.tree + row.Tree +
		s.text + row.Name +
		reset
}
