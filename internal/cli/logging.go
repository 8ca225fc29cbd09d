package cli

import (
	"io"
	"log/slog"

	slogmulti "github.com/samber/slog-multi"
	"gopkg.in/natefinch/lumberjack.v2"
)

// newLogger builds the process logger. Text records go to console at level;
// with a log file, JSON records at the same level are also written to a
// rotating file. The returned closer releases the file.
func newLogger(console io.Writer, level slog.Level, logFile string) (*slog.Logger, io.Closer) {
	opts := &slog.HandlerOptions{Level: level}
	text := slog.NewTextHandler(console, opts)
	if logFile == "" {
		return slog.New(text), nopCloser{}
	}

	rotating := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    16,
		MaxBackups: 4,
		MaxAge:     30,
		Compress:   true,
	}
	return slog.New(slogmulti.Fanout(text, slog.NewJSONHandler(rotating, opts))), rotating
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
