package streamer

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type LogLevel int

const (
	LogDebug LogLevel = iota
	LogInfo
	LogWarn
	LogError
)

var levelLabels = map[LogLevel]string{
	LogDebug: "debug",
	LogInfo:  "info",
	LogWarn:  "warn",
	LogError: "error",
}

var levelStyles = map[LogLevel]lipgloss.Style{
	LogDebug: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	LogInfo:  lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	LogWarn:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	LogError: lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
}

func parseLogLevel(s string) LogLevel {
	switch strings.ToLower(s) {
	case "debug":
		return LogDebug
	case "warn":
		return LogWarn
	case "error":
		return LogError
	default:
		return LogInfo
	}
}

// Printer writes leveled operator output to stderr. This tool runs for days
// inside CI workflows, so output is plain append-only lines rather than an
// interactive display. A nil Printer discards everything, which keeps test
// construction cheap.
type Printer struct {
	quiet    bool
	minLevel LogLevel
}

func newPrinter(cfg Config) *Printer {
	return &Printer{
		quiet:    cfg.Quiet,
		minLevel: parseLogLevel(cfg.LogLevel),
	}
}

func (p *Printer) Log(level LogLevel, format string, args ...interface{}) {
	if p == nil {
		return
	}
	if level < p.minLevel {
		return
	}
	if p.quiet && level < LogWarn {
		return
	}
	label := levelStyles[level].Render(fmt.Sprintf("%-5s", levelLabels[level]))
	fmt.Fprintf(os.Stderr, "%s %s\n", label, fmt.Sprintf(format, args...))
}

// levelWriter adapts the Printer into an io.Writer so external process
// output can be folded into the log at a fixed level.
type levelWriter struct {
	printer *Printer
	level   LogLevel
}

func (w levelWriter) Write(b []byte) (int, error) {
	for _, line := range strings.Split(strings.TrimRight(string(b), "\n"), "\n") {
		if line != "" {
			w.printer.Log(w.level, "%s", line)
		}
	}
	return len(b), nil
}

func (p *Printer) writer(level LogLevel) levelWriter {
	return levelWriter{printer: p, level: level}
}

func humanBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}

func truncateText(text string, max int) string {
	if max <= 0 || len(text) <= max {
		return text
	}
	if max <= 3 {
		return text[:max]
	}
	return text[:max-3] + "..."
}
