package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ii6938613-ui/fire/internal/streamer"
)

func main() {
	cfg := streamer.ConfigFromEnv()

	flag.StringVar(&cfg.VideoURL, "url", cfg.VideoURL, "source video URL (default $VIDEO_URL)")
	flag.StringVar(&cfg.Quality, "quality", cfg.Quality, "quality tier: 360p, 480p, 720p, 1080p, 1440p, 2160p")
	flag.StringVar(&cfg.AspectRatio, "aspect", cfg.AspectRatio, "aspect ratio: 16:9, 9:16, 4:3, 1:1")
	flag.StringVar(&cfg.OutputPath, "o", streamer.DefaultOutputPath, "local path for the downloaded video")
	flag.DurationVar(&cfg.Timeout, "timeout", 60*time.Second, "per-request timeout for download handshakes")
	flag.BoolVar(&cfg.Quiet, "quiet", false, "suppress progress output (warnings still shown)")
	flag.StringVar(&cfg.LogLevel, "log-level", "info", "log level: debug, info, warn, error")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := streamer.Run(ctx, cfg)
	streamer.CloseIdleConnections()
	if err != nil {
		if !streamer.IsReported(err) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(streamer.ExitCode(err))
	}
}
