// Package logging wraps the standard library's log.Logger the way
// cmd/server/main.go and internal/session/manager.go use it
// throughout the teacher repo, adding a startup banner and a handful
// of human-readable diagnostics the plain log package doesn't offer.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"github.com/ncruces/go-strftime"
)

// Logger is a thin wrapper over *log.Logger. Components hold one
// instead of calling the log package's package-level functions
// directly, so tests can redirect output.
type Logger struct {
	l     *log.Logger
	color bool
}

// New builds a Logger writing to w, prefixing each line with the date
// and a microsecond-precision time (no file names).
func New(w io.Writer) *Logger {
	color := false
	if f, ok := w.(*os.File); ok {
		color = isatty.IsTerminal(f.Fd())
	}
	return &Logger{
		l:     log.New(w, "", log.LstdFlags|log.Lmicroseconds),
		color: color,
	}
}

// Default returns a Logger writing to stderr, matching where the
// standard log package writes by default.
func Default() *Logger { return New(os.Stderr) }

func (lg *Logger) Printf(format string, args ...any) {
	lg.l.Printf(format, args...)
}

func (lg *Logger) Fatalf(format string, args ...any) {
	lg.l.Fatalf(format, args...)
}

// Banner prints a startup line identifying the server or client, the
// listen/connect address, and a strftime-formatted timestamp. Colored
// when writing to a real terminal.
func (lg *Logger) Banner(program, detail string) {
	ts := strftime.Format("%Y-%m-%d %H:%M:%S", time.Now())
	line := fmt.Sprintf("[%s] %s starting: %s", ts, program, detail)
	if lg.color {
		line = "\x1b[36m" + line + "\x1b[0m"
	}
	lg.l.Print(line)
}

// QueueDepth logs a per-client queue depth as a comma-grouped count, so
// an operator watching server logs under load sees "1,204 pending"
// rather than a raw integer (matters once a slow client's unbounded
// queue starts to grow).
func (lg *Logger) QueueDepth(clientID uint64, depth int) {
	lg.l.Printf("client %d: %s pending", clientID, humanize.Comma(int64(depth)))
}

// TurnDuration logs how long a turn resolution took against its
// configured budget. A turn over budget is marked OVER and its elapsed
// time is rendered with humanize.RelTime; otherwise the plain
// time.Duration is printed.
func (lg *Logger) TurnDuration(turn uint16, took, budget time.Duration) {
	if took > budget {
		lg.l.Printf("turn %d took %s (budget %s, OVER)", turn, humanize.RelTime(time.Now().Add(-took), time.Now(), "", ""), budget)
		return
	}
	lg.l.Printf("turn %d took %s", turn, took)
}
