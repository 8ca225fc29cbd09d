package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/roach88/todoheap/internal/heap"
	"github.com/roach88/todoheap/internal/store"
)

// HeapFile is the YAML form of an exported heap.
type HeapFile struct {
	Name          string `yaml:"name"`
	heap.Snapshot `yaml:",inline"`
}

// ExportOptions holds flags for the export command.
type ExportOptions struct {
	*RootOptions
	Output string
}

// HeapExported is the result of export with --output.
type HeapExported struct {
	Heap  string `json:"heap"`
	Path  string `json:"path"`
	Items int    `json:"items"`
}

func (r HeapExported) WriteText(w io.Writer) error {
	_, err := fmt.Fprintf(w, "Exported: %s (%d items) to %s\n", r.Heap, r.Items, r.Path)
	return err
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "export <heap>",
		Short: "Write a heap and its learned priorities as YAML",
		Long: `Write a heap as YAML: its items in heap order and, for each item, the
items known to be lower priority.

Without --output the YAML is written to stdout.

Examples:
  todoheap export work > work.yaml
  todoheap export work -o work.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file (default stdout)")

	return cmd
}

func runExport(opts *ExportOptions, heapName string, cmd *cobra.Command) error {
	st, err := opts.openStore()
	if err != nil {
		return err
	}
	defer opts.closeStore(st)

	s, err := openSession(cmd.Context(), opts.RootOptions, st, heapName, notAsking)
	if err != nil {
		return err
	}

	data, err := marshalHeapFile(HeapFile{Name: s.name, Snapshot: s.heap.Snapshot()})
	if err != nil {
		return WrapExitError(ExitFailure, CodeCommand, "failed to encode heap", err)
	}

	if opts.Output == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(opts.Output, data, 0644); err != nil {
		return WrapExitError(ExitCommandError, CodeCommand, "failed to write export file", err)
	}
	return opts.formatter(cmd).Success(HeapExported{Heap: s.name, Path: opts.Output, Items: s.heap.Len()})
}

func marshalHeapFile(f HeapFile) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// parseHeapFile decodes an exported heap, rejecting unknown fields.
func parseHeapFile(data []byte) (*HeapFile, error) {
	var f HeapFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &f, nil
}

// ImportOptions holds flags for the import command.
type ImportOptions struct {
	*RootOptions
	As      string
	Replace bool
}

// HeapImported is the result of the import command.
type HeapImported struct {
	Heap     string `json:"heap"`
	Items    int    `json:"items"`
	Replaced bool   `json:"replaced"`
}

func (r HeapImported) WriteText(w io.Writer) error {
	_, err := fmt.Fprintf(w, "Imported: %s (%d items)\n", r.Heap, r.Items)
	return err
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ImportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Load a heap from an exported YAML file",
		Long: `Load a heap written by export.

The file is checked before anything is stored: item ids must be unique,
every relation must name an item of the file, the relation must not
contradict itself and no item may be known to outrank the item above it.

Examples:
  todoheap import work.yaml
  todoheap import work.yaml --as work-copy
  todoheap import work.yaml --replace`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.As, "as", "", "store under this name instead of the file's")
	cmd.Flags().BoolVar(&opts.Replace, "replace", false, "overwrite an existing heap of the same name")

	return cmd
}

func runImport(opts *ImportOptions, path string, cmd *cobra.Command) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return WrapExitError(ExitCommandError, CodeCommand, "failed to read import file", err)
	}
	f, err := parseHeapFile(data)
	if err != nil {
		return WrapExitError(ExitCommandError, CodeCommand, "invalid import file", err)
	}

	name := f.Name
	if opts.As != "" {
		name = opts.As
	}
	if name, err = normalizeHeapName(name); err != nil {
		return err
	}

	if f.MinCapacity == 0 {
		f.MinCapacity = opts.Config.MinCapacity
	}
	h, err := heap.Restore(notAsking, f.Snapshot, heap.WithLogger(opts.Logger))
	if err != nil {
		return WrapExitError(ExitCommandError, CodeInvariant, "invalid import file", err)
	}

	st, err := opts.openStore()
	if err != nil {
		return err
	}
	defer opts.closeStore(st)

	replaced, err := createForImport(cmd.Context(), st, name, h.MinCapacity(), opts.Replace)
	if err != nil {
		return err
	}
	if err := st.SaveHeap(cmd.Context(), name, h.Snapshot()); err != nil {
		return WrapExitError(ExitCommandError, CodeStore, "failed to save heap", err)
	}

	opts.Logger.Info("heap imported", "heap", name, "items", h.Len(), "replaced", replaced)
	return opts.formatter(cmd).Success(HeapImported{Heap: name, Items: h.Len(), Replaced: replaced})
}

// createForImport creates heap name, or with replace accepts an existing
// one. It reports whether the heap already existed.
func createForImport(ctx context.Context, st *store.Store, name string, minCap int, replace bool) (bool, error) {
	err := st.CreateHeap(ctx, name, minCap)
	switch {
	case err == nil:
		return false, nil
	case errors.Is(err, store.ErrHeapExists) && replace:
		return true, nil
	case errors.Is(err, store.ErrHeapExists):
		return false, NewExitError(ExitCommandError, CodeHeapExists,
			fmt.Sprintf("heap %q already exists (use --replace or --as)", name))
	default:
		return false, WrapExitError(ExitCommandError, CodeStore, "failed to create heap", err)
	}
}
