package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
)

// cliRun is the outcome of one CLI invocation.
type cliRun struct {
	code   int
	stdout string
	stderr string
}

// testCLI runs commands against one database with no config file.
type testCLI struct {
	t   *testing.T
	db  string
	cfg string
}

func newTestCLI(t *testing.T) *testCLI {
	t.Helper()
	dir := t.TempDir()
	return &testCLI{
		t:   t,
		db:  filepath.Join(dir, "todoheap.db"),
		cfg: filepath.Join(dir, "missing.cue"),
	}
}

// run executes args with stdin as the terminal input.
func (c *testCLI) run(stdin string, args ...string) cliRun {
	c.t.Helper()
	var stdout, stderr bytes.Buffer
	full := append([]string{"--db", c.db, "--config", c.cfg}, args...)
	code := Execute(context.Background(), full, strings.NewReader(stdin), &stdout, &stderr)
	return cliRun{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

// mustRun executes args and fails the test on a non-zero exit code.
func (c *testCLI) mustRun(stdin string, args ...string) cliRun {
	c.t.Helper()
	r := c.run(stdin, args...)
	if r.code != ExitSuccess {
		c.t.Fatalf("todoheap %v: exit %d\nstdout:\n%s\nstderr:\n%s", args, r.code, r.stdout, r.stderr)
	}
	return r
}
