package streamer

import (
	"context"
	"errors"
	"testing"
	"time"
)

// scriptedLauncher fails a fixed number of times, then cancels the run the
// way an operator interrupt would.
type scriptedLauncher struct {
	failures int
	cancel   context.CancelFunc
	launches int
}

func (l *scriptedLauncher) Launch(ctx context.Context) error {
	l.launches++
	if l.launches <= l.failures {
		return errors.New("exit status 1")
	}
	l.cancel()
	<-ctx.Done()
	return ctx.Err()
}

func newTestSupervisor(launcher Launcher) *Supervisor {
	s := NewSupervisor(launcher, nil)
	s.RestartDelay = time.Millisecond
	return s
}

func TestSupervisorRestartsUntilCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	launcher := &scriptedLauncher{failures: 3, cancel: cancel}
	s := newTestSupervisor(launcher)

	if err := s.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}
	// 3 crashes mean 3 restarts, so the 4th launch is the one interrupted.
	if launcher.launches != 4 {
		t.Fatalf("launches = %d, want 4", launcher.launches)
	}
}

func TestSupervisorCancelledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	launcher := &scriptedLauncher{failures: 99, cancel: func() {}}
	s := newTestSupervisor(launcher)

	if err := s.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if launcher.launches != 0 {
		t.Fatalf("launches = %d, want 0", launcher.launches)
	}
}

type countingLauncher struct {
	launches int
	err      error
}

func (l *countingLauncher) Launch(context.Context) error {
	l.launches++
	return l.err
}

func TestSupervisorStopsAtSessionCeiling(t *testing.T) {
	launcher := &countingLauncher{err: errors.New("exit status 1")}
	s := newTestSupervisor(launcher)
	s.MaxSessions = 5

	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if launcher.launches != 5 {
		t.Fatalf("launches = %d, want 5", launcher.launches)
	}
}

func TestSupervisorRestartsOnCleanExitToo(t *testing.T) {
	launcher := &countingLauncher{}
	s := newTestSupervisor(launcher)
	s.MaxSessions = 3

	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if launcher.launches != 3 {
		t.Fatalf("launches = %d, want 3", launcher.launches)
	}
}

func TestSupervisorCancelledDuringDelay(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	launcher := &countingLauncher{err: errors.New("exit status 1")}
	s := newTestSupervisor(launcher)
	s.RestartDelay = time.Minute
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("supervisor did not stop promptly on cancellation")
	}
	if launcher.launches != 1 {
		t.Fatalf("launches = %d, want 1", launcher.launches)
	}
}
