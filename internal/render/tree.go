package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// EmptyMessage is written in place of a tree when the heap has no items.
const EmptyMessage = "Heap is empty."

const (
	boxLast   = "╚"
	boxBranch = "╠"
	boxVert   = "║"
	boxLeaf   = "═"
	boxFork   = "╦"
)

// Row is one line of a rendered tree.
type Row struct {
	Index string // array index, right-aligned to the widest index
	Tree  string // connectors leading to the item
	Name  string
}

// String returns the row without styling.
func (r Row) String() string {
	return r.Index + " " + r.Tree + r.Name
}

// Rows lays out names, given in heap array order, as a tree.
// Returns nil for an empty heap.
func Rows(names []string) []Row {
	if len(names) == 0 {
		return nil
	}
	width := len(strconv.Itoa(len(names) - 1))
	rows := make([]Row, 0, len(names))

	var walk func(i int, prefix string, last bool)
	walk = func(i int, prefix string, last bool) {
		var b strings.Builder
		b.WriteString(prefix)
		if last {
			b.WriteString(boxLast)
			prefix += " "
		} else {
			b.WriteString(boxBranch)
			prefix += boxVert
		}

		l, r := 2*i+1, 2*i+2
		if l >= len(names) {
			b.WriteString(boxLeaf)
		} else {
			b.WriteString(boxFork)
		}
		rows = append(rows, Row{
			Index: fmt.Sprintf("%*d", width, i),
			Tree:  b.String(),
			Name:  names[i],
		})

		if l < len(names) {
			walk(l, prefix, r >= len(names))
		}
		if r < len(names) {
			walk(r, prefix, true)
		}
	}
	walk(0, "", true)
	return rows
}

// Tree renders names as text lines. A nil style renders without color.
// Returns nil for an empty heap.
func Tree(names []string, style *Style) []string {
	rows := Rows(names)
	lines := make([]string, len(rows))
	for i, row := range rows {
		if style == nil {
			lines[i] = row.String()
		} else {
			lines[i] = style.apply(i, row)
		}
	}
	if len(lines) == 0 {
		return nil
	}
	return lines
}

// Write renders names to w, one row per line, or EmptyMessage if there are
// none.
func Write(w io.Writer, names []string, style *Style) error {
	lines := Tree(names, style)
	if len(lines) == 0 {
		lines = []string{EmptyMessage}
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
