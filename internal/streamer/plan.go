package streamer

import (
	"fmt"
	"strconv"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

const (
	defaultWidth  = 1280
	defaultHeight = 720

	defaultVideoBitrate = "2500k"
	audioBitrate        = "128k"
	audioSampleRate     = 44100
	keyframeInterval    = 60
)

// bitrateByHeight maps output height to the target x264 bitrate.
var bitrateByHeight = map[int]string{
	360:  "800k",
	480:  "1200k",
	720:  "2500k",
	1080: "4500k",
	1440: "9000k",
	2160: "20000k",
}

// aspectRatios maps the recognized ratio strings to width:height factors.
var aspectRatios = map[string][2]int{
	"16:9": {16, 9},
	"9:16": {9, 16},
	"4:3":  {4, 3},
	"1:1":  {1, 1},
}

// EncodingPlan is the derived set of resolution and bitrate parameters for
// one run. Deriving it is a pure function of (quality, aspect).
type EncodingPlan struct {
	Width        int
	Height       int
	VideoBitrate string
	BufSize      string
	AudioBitrate string
	SampleRate   int
}

// NewEncodingPlan derives output geometry and bitrates from a quality tier
// like "720p" and an aspect ratio like "16:9". Unrecognized quality strings
// fall back to 1280x720; unrecognized ratios fall back to 16:9.
func NewEncodingPlan(quality, aspect string) EncodingPlan {
	width, height := defaultWidth, defaultHeight
	if h, ok := parseQualityHeight(quality); ok {
		height = h
		ratio, ok := aspectRatios[aspect]
		if !ok {
			ratio = aspectRatios["16:9"]
		}
		width = height * ratio[0] / ratio[1]
		if width%2 != 0 {
			width++
		}
	}

	bitrate, ok := bitrateByHeight[height]
	if !ok {
		bitrate = defaultVideoBitrate
	}

	return EncodingPlan{
		Width:        width,
		Height:       height,
		VideoBitrate: bitrate,
		BufSize:      doubleBitrate(bitrate),
		AudioBitrate: audioBitrate,
		SampleRate:   audioSampleRate,
	}
}

func parseQualityHeight(quality string) (int, bool) {
	if !strings.HasSuffix(quality, "p") {
		return 0, false
	}
	h, err := strconv.Atoi(strings.TrimSuffix(quality, "p"))
	if err != nil || h <= 0 {
		return 0, false
	}
	return h, true
}

// doubleBitrate turns "4500k" into "9000k" for the encoder buffer size.
func doubleBitrate(bitrate string) string {
	n, err := strconv.Atoi(strings.TrimSuffix(bitrate, "k"))
	if err != nil {
		return bitrate
	}
	return strconv.Itoa(n*2) + "k"
}

func (p EncodingPlan) scaleFilter() string {
	return fmt.Sprintf("scale=%d:%d:force_original_aspect_ratio=decrease,pad=%d:%d:(ow-iw)/2:(oh-ih)/2",
		p.Width, p.Height, p.Width, p.Height)
}

// EncoderArgs compiles the full ffmpeg argument list for looping inputPath
// into the RTMP destination forever: infinite input loop, real-time pacing,
// scale+pad to the planned geometry, x264 at the planned bitrate, AAC audio,
// FLV framing.
func (p EncodingPlan) EncoderArgs(inputPath, destination string) []string {
	stream := ffmpeg.Input(inputPath, ffmpeg.KwArgs{
		"stream_loop": -1,
		"re":          "",
	}).Output(destination, ffmpeg.KwArgs{
		"vf":      p.scaleFilter(),
		"c:v":     "libx264",
		"preset":  "veryfast",
		"b:v":     p.VideoBitrate,
		"maxrate": p.VideoBitrate,
		"bufsize": p.BufSize,
		"pix_fmt": "yuv420p",
		"g":       keyframeInterval,
		"c:a":     "aac",
		"b:a":     p.AudioBitrate,
		"ar":      p.SampleRate,
		"format":  "flv",
	})
	return stream.GetArgs()
}
