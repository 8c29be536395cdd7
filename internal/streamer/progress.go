package streamer

import (
	"context"
	"io"
	"time"
)

// progressWriter reports download progress at coarse byte intervals. One
// download owns one writer and feeds it from a single io.Copy, so there is
// no locking here.
type progressWriter struct {
	printer  *Printer
	size     int64 // expected total, 0 when unknown
	interval int64 // bytes between progress lines
	written  int64
	reported int64
	start    time.Time
}

func newProgressWriter(printer *Printer, size, interval int64) *progressWriter {
	return &progressWriter{
		printer:  printer,
		size:     size,
		interval: interval,
		start:    time.Now(),
	}
}

func (p *progressWriter) Write(b []byte) (int, error) {
	n := len(b)
	p.written += int64(n)
	if p.written-p.reported >= p.interval {
		p.reported = p.written
		p.print()
	}
	return n, nil
}

func (p *progressWriter) print() {
	mb := float64(p.written) / (1024 * 1024)
	if p.size > 0 {
		percent := float64(p.written) * 100 / float64(p.size)
		p.printer.Log(LogInfo, "downloaded: %.1f MB (%.1f%%)", mb, percent)
		return
	}
	p.printer.Log(LogInfo, "downloaded: %.1f MB", mb)
}

func (p *progressWriter) Finish() {
	elapsed := time.Since(p.start)
	rate := ""
	if secs := elapsed.Seconds(); secs > 0 {
		rate = " at " + humanBytes(int64(float64(p.written)/secs)) + "/s"
	}
	p.printer.Log(LogInfo, "download complete: %s in %s%s", humanBytes(p.written), elapsed.Round(time.Second), rate)
}

type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (r *contextReader) Read(p []byte) (int, error) {
	select {
	case <-r.ctx.Done():
		return 0, r.ctx.Err()
	default:
		return r.r.Read(p)
	}
}

func copyWithContext(ctx context.Context, dst io.Writer, src io.Reader) (int64, error) {
	reader := &contextReader{ctx: ctx, r: src}
	return io.Copy(dst, reader)
}
