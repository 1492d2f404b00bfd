// Package logs builds the structured logger shared by angelio components:
// a text handler on the terminal, fanned out to the systemd journal when
// running as a service.
package logs

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path"
	"strings"
	"time"

	slogmulti "github.com/samber/slog-multi"
	slogjournal "github.com/systemd/slog-journal"
)

// Level is the shared level of every logger built by New.
var Level = new(slog.LevelVar)

// Options selects the logger outputs.
type Options struct {
	Writer  io.Writer // Terminal output; os.Stderr if nil.
	Journal bool      // Log to the journal even outside a systemd service.
	Service bool      // Running as a systemd service: journal only.
}

// New creates a logger.
func New(opts Options) *slog.Logger {
	var handlers []slog.Handler

	writer := opts.Writer
	if writer == nil {
		writer = os.Stderr
	}

	var terminalHandler slog.Handler
	if !opts.Service {
		terminalHandler = slog.NewTextHandler(writer, &slog.HandlerOptions{
			Level: Level,
		})
		handlers = append(handlers, terminalHandler)
	}

	if opts.Journal || opts.Service {
		journalHandler, err := slogjournal.NewHandler(&slogjournal.Options{
			Level: Level,
			ReplaceGroup: func(key string) string {
				return JournalKey(key)
			},
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				a.Key = JournalKey(a.Key)
				return a
			},
		})
		if err != nil {
			if terminalHandler != nil {
				record := slog.NewRecord(time.Now(), slog.LevelWarn, "logs: journal unavailable", 0)
				record.Add("error", err)
				_ = terminalHandler.Handle(context.Background(), record)
			}
		} else {
			handlers = append(handlers, journalHandler)
		}
	}

	return slog.New(slogmulti.Fanout(handlers...))
}

// JournalKey maps an attribute key to a valid journal field name.
func JournalKey(str string) string {
	str = strings.ToUpper(str)
	str = strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' ||
			r >= '0' && r <= '9' {
			return r
		}
		return '_'
	}, str)
	return str
}

// ParseLevel parses a level name such as "debug" or "warn".
func ParseLevel(name string) (level slog.Level, err error) {
	err = level.UnmarshalText([]byte(name))
	return
}

// IsService returns true if the process runs in a systemd service cgroup.
func IsService() bool {
	content, err := os.ReadFile("/proc/self/cgroup")
	if err != nil {
		return false
	}
	return serviceCgroup(string(content))
}

func serviceCgroup(content string) bool {
	parts := strings.SplitN(strings.TrimSpace(content), ":", 3)
	if len(parts) < 3 {
		return false
	}
	cgroup := parts[2]
	return strings.HasSuffix(cgroup, ".service") ||
		strings.HasSuffix(path.Dir(cgroup), ".service")
}
