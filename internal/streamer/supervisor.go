package streamer

import (
	"context"
	"io"
	"os/exec"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultRestartDelay is the pause between encoder restarts.
	DefaultRestartDelay = 5 * time.Second

	// DefaultMaxSessions is effectively unbounded; a 24/7 stream should
	// outlive any realistic number of encoder crashes.
	DefaultMaxSessions = 999
)

// Launcher starts one encoder process and blocks until it exits.
type Launcher interface {
	Launch(ctx context.Context) error
}

// ffmpegLauncher runs the compiled encoder command. Encoder output is folded
// into the debug log; its exit status is informational only.
type ffmpegLauncher struct {
	binary  string
	args    []string
	printer *Printer
}

func newFFmpegLauncher(args []string, printer *Printer) *ffmpegLauncher {
	return &ffmpegLauncher{binary: "ffmpeg", args: args, printer: printer}
}

func (l *ffmpegLauncher) Launch(ctx context.Context) error {
	cmd := exec.CommandContext(ctx, l.binary, l.args...)
	cmd.Stdout = io.Discard
	cmd.Stderr = l.printer.writer(LogDebug)
	return cmd.Run()
}

// Supervisor keeps the encoder running indefinitely. Every process exit,
// clean or not, is treated as transient and answered with a restart after a
// fixed delay; only context cancellation or the session ceiling stops the
// loop, and both count as a successful run.
type Supervisor struct {
	launcher Launcher
	printer  *Printer

	RestartDelay time.Duration
	MaxSessions  int

	id string
}

func NewSupervisor(launcher Launcher, printer *Printer) *Supervisor {
	return &Supervisor{
		launcher:     launcher,
		printer:      printer,
		RestartDelay: DefaultRestartDelay,
		MaxSessions:  DefaultMaxSessions,
		id:           uuid.NewString()[:8],
	}
}

// Run blocks until the stream is cancelled or the session ceiling is
// reached. It never returns an error: a 24/7 stream must not die from a
// single tool crash.
func (s *Supervisor) Run(ctx context.Context) error {
	s.printer.Log(LogInfo, "LIVE - stream running 24/7 (run %s)", s.id)

	for attempt := 1; attempt <= s.MaxSessions; attempt++ {
		if ctx.Err() != nil {
			s.printer.Log(LogInfo, "stream stopped")
			return nil
		}
		s.printer.Log(LogInfo, "stream session %d", attempt)

		err := s.launcher.Launch(ctx)
		if ctx.Err() != nil {
			s.printer.Log(LogInfo, "stream stopped")
			return nil
		}
		if err != nil {
			s.printer.Log(LogWarn, "stream ended (%v), restarting in %s", err, s.RestartDelay)
		} else {
			s.printer.Log(LogWarn, "stream ended, restarting in %s", s.RestartDelay)
		}

		select {
		case <-ctx.Done():
			s.printer.Log(LogInfo, "stream stopped")
			return nil
		case <-time.After(s.RestartDelay):
		}
	}

	s.printer.Log(LogWarn, "session ceiling reached (%d attempts), stopping", s.MaxSessions)
	return nil
}
