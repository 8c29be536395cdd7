package streamer

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"time"
)

// gdownTimeout is generous: the fallback only runs after the primary path
// failed, and multi-GB files over a throttled export can take a while.
const gdownTimeout = 30 * time.Minute

// gdownFetcher shells out to the gdown tool, which knows how to walk
// Drive's large-file confirmation flow on its own.
type gdownFetcher struct {
	printer *Printer
	binary  string
}

func (g *gdownFetcher) Fetch(ctx context.Context, url, outputPath string) error {
	binary := g.binary
	if binary == "" {
		binary = "gdown"
	}
	if _, err := exec.LookPath(binary); err != nil {
		return wrapCategory(CategoryTool, fmt.Errorf("fallback tool not available: %w", err))
	}

	ctx, cancel := context.WithTimeout(ctx, gdownTimeout)
	defer cancel()

	g.printer.Log(LogInfo, "downloading with %s", binary)
	cmd := exec.CommandContext(ctx, binary, url, "-O", outputPath, "--fuzzy")
	var stderr bytes.Buffer
	cmd.Stdout = g.printer.writer(LogDebug)
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		detail := truncateText(stderr.String(), 200)
		if detail != "" {
			return wrapCategory(CategoryTool, fmt.Errorf("%s failed: %w: %s", binary, err, detail))
		}
		return wrapCategory(CategoryTool, fmt.Errorf("%s failed: %w", binary, err))
	}
	return nil
}
