// Command todoheap is a to-do list kept as a priority heap whose order is
// learned by asking which of two items matters more.
package main

import (
	"context"
	"os"

	"github.com/roach88/todoheap/internal/cli"
)

func main() {
	os.Exit(cli.Execute(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
