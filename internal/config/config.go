package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/roach88/todoheap/internal/render"
)

//go:embed schema.cue
var schemaCUE string

// Config holds todoheap settings.
type Config struct {
	Database    string `json:"database"`
	MinCapacity int    `json:"min_capacity"`
	LogLevel    string `json:"log_level"`
	LogFile     string `json:"log_file"`
	Color       bool   `json:"color"`
	Colors      Colors `json:"colors"`
}

// Colors holds the tree view colors as hex RGB strings.
type Colors struct {
	Background0 string `json:"background0"`
	Background1 string `json:"background1"`
	Index       string `json:"index"`
	Tree        string `json:"tree"`
	Text        string `json:"text"`
}

// Palette converts the colors for the renderer.
func (c Colors) Palette() render.Palette {
	return render.Palette{
		Background0: c.Background0,
		Background1: c.Background1,
		Index:       c.Index,
		Tree:        c.Tree,
		Text:        c.Text,
	}
}

// Level returns the slog level named by LogLevel. Unknown names map to Info.
func (c *Config) Level() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// Error is a configuration error with the CUE source position, if known.
type Error struct {
	Message string
	Pos     token.Pos
}

func (e *Error) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: config: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Message)
	}
	return fmt.Sprintf("config: %s", e.Message)
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		// The embedded schema is fixed at build time.
		panic(fmt.Sprintf("config: invalid built-in defaults: %v", err))
	}
	return cfg
}

// Load reads the CUE file at path and applies defaults.
// An empty path or a file that does not exist yields the defaults.
func Load(path string) (*Config, error) {
	var data []byte
	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			data = b
		}
	}
	return Parse(path, data)
}

// Parse applies defaults to the CUE source src. filename is only used in
// error positions.
func Parse(filename string, src []byte) (*Config, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, formatCUEError(err)
	}
	def := schema.LookupPath(cue.ParsePath("#Config"))

	v := def
	if len(src) > 0 {
		file := ctx.CompileBytes(src, cue.Filename(filename))
		if err := file.Err(); err != nil {
			return nil, formatCUEError(err)
		}
		if err := checkKnownFields(def, file); err != nil {
			return nil, err
		}
		v = def.Unify(file)
	}

	if err := v.Validate(); err != nil {
		return nil, formatCUEError(err)
	}

	var cfg Config
	if err := v.Decode(&cfg); err != nil {
		return nil, formatCUEError(err)
	}
	return &cfg, nil
}

// checkKnownFields rejects fields of file that the schema does not declare.
func checkKnownFields(schema, file cue.Value) error {
	iter, err := file.Fields()
	if err != nil {
		return formatCUEError(err)
	}
	for iter.Next() {
		sel := iter.Selector()
		field := schema.LookupPath(cue.MakePath(sel))
		if !field.Exists() {
			return &Error{
				Message: fmt.Sprintf("unknown field %q", sel.String()),
				Pos:     iter.Value().Pos(),
			}
		}
		if iter.Value().IncompleteKind() == cue.StructKind {
			if err := checkKnownFields(field, iter.Value()); err != nil {
				return err
			}
		}
	}
	return nil
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	// CUE errors may contain multiple errors
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return &Error{Message: err.Error()}
	}

	// Return first error with position info
	first := errs[0]
	e := &Error{Message: first.Error()}
	if positions := cueerrors.Positions(first); len(positions) > 0 {
		e.Pos = positions[0]
	}
	return e
}
