package cli

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/todoheap/internal/store"
)

// NewOptions holds flags for the new command.
type NewOptions struct {
	*RootOptions
	MinCapacity int
}

// HeapCreated is the result of the new command.
type HeapCreated struct {
	Heap        string `json:"heap"`
	MinCapacity int    `json:"min_capacity"`
}

func (r HeapCreated) WriteText(w io.Writer) error {
	_, err := fmt.Fprintf(w, "Created: %s\n", r.Heap)
	return err
}

// NewNewCommand creates the new command.
func NewNewCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &NewOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "new <heap>",
		Short: "Create an empty heap",
		Long: `Create an empty named heap in the database.

The minimum capacity is the size the heap's backing array never shrinks
below. It defaults to min_capacity from the config file.

Examples:
  todoheap new work
  todoheap new errands --min-capacity 4`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNew(opts, args[0], cmd)
		},
	}

	cmd.Flags().IntVar(&opts.MinCapacity, "min-capacity", 0, "minimum capacity (default from config)")

	return cmd
}

func runNew(opts *NewOptions, heapName string, cmd *cobra.Command) error {
	name, err := normalizeHeapName(heapName)
	if err != nil {
		return err
	}
	minCap := opts.MinCapacity
	if minCap == 0 {
		minCap = opts.Config.MinCapacity
	}
	if minCap < 1 {
		return NewExitError(ExitCommandError, CodeCommand,
			fmt.Sprintf("min capacity must be at least 1, got %d", minCap))
	}

	st, err := opts.openStore()
	if err != nil {
		return err
	}
	defer opts.closeStore(st)

	if err := st.CreateHeap(cmd.Context(), name, minCap); err != nil {
		if errors.Is(err, store.ErrHeapExists) {
			return NewExitError(ExitCommandError, CodeHeapExists, fmt.Sprintf("heap %q already exists", name))
		}
		return WrapExitError(ExitCommandError, CodeStore, "failed to create heap", err)
	}

	opts.Logger.Info("heap created", "heap", name, "min_capacity", minCap)
	return opts.formatter(cmd).Success(HeapCreated{Heap: name, MinCapacity: minCap})
}

// HeapList is the result of the heaps command.
type HeapList struct {
	Heaps []store.HeapInfo `json:"heaps"`
}

func (r HeapList) WriteText(w io.Writer) error {
	if len(r.Heaps) == 0 {
		_, err := fmt.Fprintln(w, "No heaps.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tITEMS\tMIN CAPACITY\tSAVES")
	for _, h := range r.Heaps {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\n", h.Name, h.Count, h.MinCapacity, h.Saves)
	}
	return tw.Flush()
}

// NewHeapsCommand creates the heaps command.
func NewHeapsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "heaps",
		Short: "List stored heaps",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := rootOpts.openStore()
			if err != nil {
				return err
			}
			defer rootOpts.closeStore(st)

			heaps, err := st.ListHeaps(cmd.Context())
			if err != nil {
				return WrapExitError(ExitCommandError, CodeStore, "failed to list heaps", err)
			}
			return rootOpts.formatter(cmd).Success(HeapList{Heaps: heaps})
		},
	}
}

// HeapDropped is the result of the drop command.
type HeapDropped struct {
	Heap string `json:"heap"`
}

func (r HeapDropped) WriteText(w io.Writer) error {
	_, err := fmt.Fprintf(w, "Dropped: %s\n", r.Heap)
	return err
}

// NewDropCommand creates the drop command.
func NewDropCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "drop <heap>",
		Short: "Delete a heap and everything learned about its items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := normalizeHeapName(args[0])
			if err != nil {
				return err
			}

			st, err := rootOpts.openStore()
			if err != nil {
				return err
			}
			defer rootOpts.closeStore(st)

			if err := st.DeleteHeap(cmd.Context(), name); err != nil {
				if errors.Is(err, store.ErrHeapNotFound) {
					return NewExitError(ExitCommandError, CodeHeapNotFound, fmt.Sprintf("heap %q not found", name))
				}
				return WrapExitError(ExitCommandError, CodeStore, "failed to drop heap", err)
			}

			rootOpts.Logger.Info("heap dropped", "heap", name)
			return rootOpts.formatter(cmd).Success(HeapDropped{Heap: name})
		},
	}
}
