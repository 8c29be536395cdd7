// Package streamer downloads a single source video, including large files
// behind Google Drive's confirmation handshake, and loops it into a YouTube
// RTMP live stream around the clock.
package streamer

import (
	"context"
)

// Run executes one full streaming run: validate configuration, acquire the
// source file, probe its duration, then supervise the encoder until the
// context is cancelled. The returned error is nil for any deliberate stop.
func Run(ctx context.Context, cfg Config) error {
	printer := newPrinter(cfg)

	if err := cfg.Validate(); err != nil {
		printer.Log(LogError, "%v", err)
		return markReported(err)
	}

	printer.Log(LogInfo, "=== 24/7 live streamer ===")
	printer.Log(LogInfo, "stream key: %s", maskKey(cfg.StreamKey))
	printer.Log(LogInfo, "source: %s", truncateText(cfg.VideoURL, 60))

	downloader := NewDownloader(cfg.Timeout, printer)
	result, err := downloader.Download(ctx, cfg.VideoURL, cfg.OutputPath)
	if err != nil {
		if ctx.Err() != nil {
			printer.Log(LogInfo, "stopped during download")
			return nil
		}
		printer.Log(LogError, "download failed: %v", err)
		return markReported(err)
	}
	if result.viaFallback {
		printer.Log(LogInfo, "video acquired via fallback tool")
	}
	printer.Log(LogInfo, "video file: %s (%s)", result.path, humanBytes(result.bytes))

	if duration, err := probeDuration(result.path); err == nil {
		printer.Log(LogInfo, "video duration: %s", formatClock(duration))
	} else {
		printer.Log(LogWarn, "could not determine duration: %v", err)
	}

	plan := NewEncodingPlan(cfg.Quality, cfg.AspectRatio)
	printer.Log(LogInfo, "output resolution: %dx%d", plan.Width, plan.Height)
	printer.Log(LogInfo, "video bitrate: %s", plan.VideoBitrate)

	launcher := newFFmpegLauncher(plan.EncoderArgs(result.path, cfg.RTMPURL()), printer)
	supervisor := NewSupervisor(launcher, printer)
	if err := supervisor.Run(ctx); err != nil {
		return err
	}

	printer.Log(LogInfo, "=== stream session complete ===")
	return nil
}
