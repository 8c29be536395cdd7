package streamer

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

const probeTimeout = 30 * time.Second

// probeDuration asks ffprobe for the file's duration. Purely informational:
// callers must treat any error as a warning, never a failure.
func probeDuration(path string) (time.Duration, error) {
	out, err := ffmpeg.ProbeWithTimeout(path, probeTimeout, ffmpeg.KwArgs{})
	if err != nil {
		return 0, wrapCategory(CategoryTool, err)
	}
	return parseProbeDuration(out)
}

func parseProbeDuration(probeJSON string) (time.Duration, error) {
	var info struct {
		Format struct {
			Duration string `json:"duration"`
		} `json:"format"`
	}
	if err := json.Unmarshal([]byte(probeJSON), &info); err != nil {
		return 0, wrapCategory(CategoryTool, fmt.Errorf("parsing probe output: %w", err))
	}
	seconds, err := strconv.ParseFloat(info.Format.Duration, 64)
	if err != nil {
		return 0, wrapCategory(CategoryTool, fmt.Errorf("parsing duration %q: %w", info.Format.Duration, err))
	}
	return time.Duration(seconds * float64(time.Second)), nil
}

// formatClock renders a duration as HH:MM:SS for log output.
func formatClock(d time.Duration) string {
	total := int64(d.Seconds())
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}
