package oracle

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/roach88/todoheap/internal/heap"
)

// ErrNoInput is returned when the operator's input ends before a choice is
// made.
var ErrNoInput = errors.New("input closed before a choice was made")

// Prompt asks the operator to choose between two items on a terminal.
//
// The question is written as
//
//	(1) <first item>
//	(2) <second item>
//	Select higher priority:
//
// and lines are read until one starts with 1 or 2. Anything else, including
// an empty line, repeats the prompt.
type Prompt struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompt creates a prompt reading from in and writing to out.
//
// in is shared with any other line-oriented reader of the same terminal (the
// shell reads commands from it between questions).
func NewPrompt(in *bufio.Reader, out io.Writer) *Prompt {
	return &Prompt{in: in, out: out}
}

// Choose implements heap.Oracle.
func (p *Prompt) Choose(ctx context.Context, a, b *heap.Item) (*heap.Item, error) {
	fmt.Fprintf(p.out, "(1) %s\n(2) %s\n", a.Name(), b.Name())
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		fmt.Fprint(p.out, "Select higher priority: ")
		line, err := ReadLine(p.in)
		if err != nil {
			return nil, err
		}
		switch {
		case strings.HasPrefix(line, "1"):
			return a, nil
		case strings.HasPrefix(line, "2"):
			return b, nil
		}
	}
}

// ReadLine reads one line from r without its line ending and surrounding
// space. A final line without a newline is returned normally; ErrNoInput is
// returned once nothing is left.
func ReadLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("read input: %w", err)
		}
		if line == "" {
			return "", ErrNoInput
		}
	}
	return strings.TrimSpace(line), nil
}
