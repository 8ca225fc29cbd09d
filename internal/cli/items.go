package cli

import (
	"bufio"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/todoheap/internal/oracle"
	"github.com/roach88/todoheap/internal/render"
)

// ItemsAdded is the result of the add command.
type ItemsAdded struct {
	Heap    string   `json:"heap"`
	Added   []string `json:"added"`
	Top     string   `json:"top"`
	Queries int      `json:"queries"`
}

func (r ItemsAdded) WriteText(w io.Writer) error {
	for _, name := range r.Added {
		if _, err := fmt.Fprintf(w, "Added: %s\n", name); err != nil {
			return err
		}
	}
	return nil
}

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add <heap> <item>...",
		Short: "Add items, answering questions as needed",
		Long: `Add one or more items to a heap.

When the heap cannot tell from earlier answers which of two items matters
more, it asks. Answer 1 or 2. The heap is saved only if every item was
added and every question answered.

Examples:
  todoheap add work "write report"
  todoheap add errands milk stamps "pick up dry cleaning"`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := rootOpts.formatter(cmd)
			st, err := rootOpts.openStore()
			if err != nil {
				return err
			}
			defer rootOpts.closeStore(st)

			prompt := oracle.NewPrompt(bufio.NewReader(cmd.InOrStdin()), f.PromptWriter())
			s, err := openSession(cmd.Context(), rootOpts, st, args[0], prompt)
			if err != nil {
				return err
			}

			result := ItemsAdded{Heap: s.name, Added: []string{}}
			before := s.heap.Queries()
			for _, raw := range args[1:] {
				name, err := s.add(cmd.Context(), raw)
				if err != nil {
					return err
				}
				result.Added = append(result.Added, name)
			}
			if err := s.save(cmd.Context()); err != nil {
				return err
			}

			result.Top, _ = s.heap.Peek()
			result.Queries = s.heap.Queries() - before
			return f.Success(result)
		},
	}
}

// TopItem is the result of the peek and del commands.
type TopItem struct {
	Heap  string `json:"heap"`
	Item  string `json:"item,omitempty"`
	Empty bool   `json:"empty"`

	verb string
}

func (r TopItem) WriteText(w io.Writer) error {
	var err error
	switch {
	case r.Empty:
		_, err = fmt.Fprintln(w, render.EmptyMessage)
	case r.verb != "":
		_, err = fmt.Fprintf(w, "%s: %s\n", r.verb, r.Item)
	default:
		_, err = fmt.Fprintln(w, r.Item)
	}
	return err
}

// NewPeekCommand creates the peek command.
func NewPeekCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "peek <heap>",
		Short: "Show the highest priority item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := rootOpts.openStore()
			if err != nil {
				return err
			}
			defer rootOpts.closeStore(st)

			s, err := openSession(cmd.Context(), rootOpts, st, args[0], notAsking)
			if err != nil {
				return err
			}
			top, ok := s.heap.Peek()
			return rootOpts.formatter(cmd).Success(TopItem{Heap: s.name, Item: top, Empty: !ok})
		},
	}
}

// NewDelCommand creates the del command.
func NewDelCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "del <heap>",
		Short: "Remove the highest priority item",
		Long: `Remove the highest priority item from a heap.

Restoring order may need answers to questions about the remaining items.
Deleting from an empty heap does nothing.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := rootOpts.formatter(cmd)
			st, err := rootOpts.openStore()
			if err != nil {
				return err
			}
			defer rootOpts.closeStore(st)

			prompt := oracle.NewPrompt(bufio.NewReader(cmd.InOrStdin()), f.PromptWriter())
			s, err := openSession(cmd.Context(), rootOpts, st, args[0], prompt)
			if err != nil {
				return err
			}

			name, ok, err := s.pop(cmd.Context())
			if err != nil {
				return err
			}
			if ok {
				if err := s.save(cmd.Context()); err != nil {
					return err
				}
			}
			return f.Success(TopItem{Heap: s.name, Item: name, Empty: !ok, verb: "Deleted"})
		},
	}
}

// ViewOptions holds flags for the view command.
type ViewOptions struct {
	*RootOptions
	NoColor bool
}

// HeapView is the result of the view command.
type HeapView struct {
	Heap  string     `json:"heap"`
	Items []ViewItem `json:"items"`

	style *render.Style
}

// ViewItem is one item of a HeapView, at its array index.
type ViewItem struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
}

func (r HeapView) WriteText(w io.Writer) error {
	names := make([]string, len(r.Items))
	for i, it := range r.Items {
		names[i] = it.Name
	}
	return render.Write(w, names, r.style)
}

// NewViewCommand creates the view command.
func NewViewCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ViewOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "view <heap>",
		Short: "Show the heap as a tree",
		Long: `Show every item of a heap as a tree, highest priority at the top.

Each row starts with the item's position in the heap. Colors come from the
config file and can be turned off with --no-color.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := opts.openStore()
			if err != nil {
				return err
			}
			defer opts.closeStore(st)

			s, err := openSession(cmd.Context(), opts.RootOptions, st, args[0], notAsking)
			if err != nil {
				return err
			}

			view := HeapView{Heap: s.name, Items: []ViewItem{}}
			for i, name := range s.heap.Names() {
				view.Items = append(view.Items, ViewItem{Index: i, Name: name})
			}
			if view.style, err = treeStyle(opts.RootOptions, opts.NoColor); err != nil {
				return err
			}
			return opts.formatter(cmd).Success(view)
		},
	}

	cmd.Flags().BoolVar(&opts.NoColor, "no-color", false, "disable colors")

	return cmd
}

// treeStyle returns the configured tree colors, or nil when color is off.
func treeStyle(o *RootOptions, noColor bool) (*render.Style, error) {
	if noColor || !o.Config.Color {
		return nil, nil
	}
	style, err := render.NewStyle(o.Config.Colors.Palette())
	if err != nil {
		return nil, WrapExitError(ExitCommandError, CodeConfig, "invalid colors", err)
	}
	return style, nil
}
