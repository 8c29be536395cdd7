package streamer

import (
	"fmt"
	"os"
	"time"
)

const (
	// rtmpPrefix is the YouTube Live ingest endpoint; the stream key is
	// appended to form the full publish URL.
	rtmpPrefix = "rtmp://a.rtmp.youtube.com/live2/"

	DefaultQuality     = "720p"
	DefaultAspectRatio = "16:9"
	DefaultOutputPath  = "video.mp4"
	DefaultTimeout     = 60 * time.Second
)

// Config describes one streaming run: where the source video comes from and
// where the encoded stream goes.
type Config struct {
	StreamKey   string
	VideoURL    string
	Quality     string
	AspectRatio string

	OutputPath string
	Timeout    time.Duration
	Quiet      bool
	LogLevel   string
}

// ConfigFromEnv builds a Config from the deployment environment. Missing
// optional values get defaults; required values are checked by Validate.
func ConfigFromEnv() Config {
	cfg := Config{
		StreamKey:   os.Getenv("YOUTUBE_STREAM_KEY"),
		VideoURL:    os.Getenv("VIDEO_URL"),
		Quality:     os.Getenv("VIDEO_QUALITY"),
		AspectRatio: os.Getenv("ASPECT_RATIO"),
	}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Quality == "" {
		c.Quality = DefaultQuality
	}
	if c.AspectRatio == "" {
		c.AspectRatio = DefaultAspectRatio
	}
	if c.OutputPath == "" {
		c.OutputPath = DefaultOutputPath
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// Validate checks the settings that must be present before any network
// activity starts.
func (c *Config) Validate() error {
	c.applyDefaults()
	if c.StreamKey == "" {
		return categorizedf(CategoryConfig, "YOUTUBE_STREAM_KEY not set")
	}
	if c.VideoURL == "" {
		return categorizedf(CategoryConfig, "VIDEO_URL not set")
	}
	return nil
}

// RTMPURL returns the full publish URL including the secret stream key.
func (c Config) RTMPURL() string {
	return rtmpPrefix + c.StreamKey
}

// maskKey renders a stream key for log output without disclosing it.
func maskKey(key string) string {
	if len(key) < 13 {
		return "****"
	}
	return fmt.Sprintf("%s...%s", key[:8], key[len(key)-4:])
}
