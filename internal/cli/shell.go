package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/todoheap/internal/oracle"
	"github.com/roach88/todoheap/internal/render"
)

const shellHelp = `Commands:
  peek          show the highest priority item
  add [name]    add an item (asks for the name if omitted)
  del           remove the highest priority item
  view          show the heap as a tree
  save          save changes
  help          show this list
  quit, q       leave (asks to save unsaved changes)`

// ShellOptions holds flags for the shell command.
type ShellOptions struct {
	*RootOptions
	NoColor bool
}

// NewShellCommand creates the shell command.
func NewShellCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ShellOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "shell <heap>",
		Short: "Work on a heap interactively",
		Long: `Open a heap in an interactive shell.

Changes are kept in memory until "save". Leaving with unsaved changes asks
whether to save them. Type "help" inside the shell for its commands.

Example:
  todoheap shell work`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := opts.openStore()
			if err != nil {
				return err
			}
			defer opts.closeStore(st)

			style, err := treeStyle(opts.RootOptions, opts.NoColor)
			if err != nil {
				return err
			}

			sh := &shell{
				in:    bufio.NewReader(cmd.InOrStdin()),
				out:   cmd.OutOrStdout(),
				style: style,
			}
			sh.session, err = openSession(cmd.Context(), opts.RootOptions, st, args[0],
				oracle.NewPrompt(sh.in, sh.out))
			if err != nil {
				return err
			}
			return sh.run(cmd.Context())
		},
	}

	cmd.Flags().BoolVar(&opts.NoColor, "no-color", false, "disable colors")

	return cmd
}

// shell is an interactive session on one heap. Commands and answers to
// questions are read from the same input.
type shell struct {
	*session
	in    *bufio.Reader
	out   io.Writer
	style *render.Style
}

func (sh *shell) run(ctx context.Context) error {
	fmt.Fprintf(sh.out, "Opened: %s (%d items)\n", sh.name, sh.heap.Len())
	fmt.Fprintln(sh.out, `Type "help" for list of available commands.`)

	for {
		fmt.Fprint(sh.out, "\n>>> ")
		line, err := oracle.ReadLine(sh.in)
		if errors.Is(err, oracle.ErrNoInput) {
			fmt.Fprintln(sh.out)
			return sh.leave(ctx)
		}
		if err != nil {
			return WrapExitError(ExitFailure, CodeInput, "failed to read command", err)
		}

		command, arg, _ := strings.Cut(line, " ")
		arg = strings.TrimSpace(arg)

		switch strings.ToLower(command) {
		case "":
		case "peek":
			top, ok := sh.heap.Peek()
			if !ok {
				top = render.EmptyMessage
			}
			fmt.Fprintln(sh.out, top)
		case "add":
			if err := sh.add(ctx, arg); err != nil {
				return err
			}
		case "del":
			if err := sh.del(ctx); err != nil {
				return err
			}
		case "view":
			if err := render.Write(sh.out, sh.heap.Names(), sh.style); err != nil {
				return err
			}
		case "save":
			if err := sh.save(ctx); err != nil {
				return err
			}
			fmt.Fprintf(sh.out, "Saved: %s\n", sh.name)
		case "help", "?":
			fmt.Fprintln(sh.out, shellHelp)
		case "quit", "q":
			return sh.leave(ctx)
		default:
			fmt.Fprintln(sh.out, "Command not recognized.")
			fmt.Fprintln(sh.out, `Type "help" for list of available commands.`)
		}
	}
}

func (sh *shell) add(ctx context.Context, name string) error {
	for name == "" {
		fmt.Fprint(sh.out, "Enter name: ")
		line, err := oracle.ReadLine(sh.in)
		if err != nil {
			fmt.Fprintln(sh.out)
			return sh.abandon(err)
		}
		name = line
	}

	added, err := sh.session.add(ctx, name)
	if err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) && exitErr.Reason == CodeInvalidName {
			fmt.Fprintln(sh.out, exitErr.Message)
			return nil
		}
		return sh.abandon(err)
	}
	fmt.Fprintf(sh.out, "Added: %s\n", added)
	return nil
}

func (sh *shell) del(ctx context.Context) error {
	name, ok, err := sh.pop(ctx)
	if err != nil {
		return sh.abandon(err)
	}
	if !ok {
		fmt.Fprintln(sh.out, render.EmptyMessage)
		return nil
	}
	fmt.Fprintf(sh.out, "Deleted: %s\n", name)
	return nil
}

// leave ends the shell, asking to save unsaved changes.
func (sh *shell) leave(ctx context.Context) error {
	if !sh.dirty {
		return nil
	}
	for {
		fmt.Fprint(sh.out, "Save? (y/n) ")
		line, err := oracle.ReadLine(sh.in)
		if err != nil {
			fmt.Fprintln(sh.out)
			fmt.Fprintln(sh.out, "Not saved.")
			return nil
		}
		switch strings.ToLower(line) {
		case "y", "yes":
			if err := sh.save(ctx); err != nil {
				return err
			}
			fmt.Fprintf(sh.out, "Saved: %s\n", sh.name)
			return nil
		case "n", "no":
			fmt.Fprintln(sh.out, "Not saved.")
			return nil
		}
	}
}

// abandon ends the shell after input stopped mid-operation. Unsaved changes
// are dropped since nothing more can be asked.
func (sh *shell) abandon(err error) error {
	if sh.dirty {
		fmt.Fprintln(sh.out, "Not saved.")
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}
	return WrapExitError(ExitFailure, CodeInput, "input closed", err)
}
