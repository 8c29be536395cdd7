package streamer

import (
	"context"
	"errors"

	"github.com/kkdai/youtube/v2"
)

// progressiveItags are combined audio+video formats, best first. Adaptive
// formats are useless here: the encoder loops one self-contained file.
var progressiveItags = []int{22, 18}

// downloadYouTube fetches a watch-page video through the YouTube client and
// streams the best progressive format to disk.
func (d *Downloader) downloadYouTube(ctx context.Context, rawURL, outputPath string) error {
	client := &youtube.Client{HTTPClient: d.client}
	video, err := client.GetVideoContext(ctx, rawURL)
	if err != nil {
		return wrapCategory(CategoryNetwork, err)
	}
	d.printer.Log(LogInfo, "video: %s", truncateText(video.Title, 60))

	format := pickProgressiveFormat(video)
	if format == nil {
		return wrapCategory(CategoryNetwork, errors.New("no progressive format available"))
	}

	stream, size, err := client.GetStreamContext(ctx, video, format)
	if err != nil {
		return wrapCategory(CategoryNetwork, err)
	}
	defer stream.Close()

	return d.streamToFile(ctx, stream, size, outputPath, directProgressEvery)
}

func pickProgressiveFormat(video *youtube.Video) *youtube.Format {
	for _, itag := range progressiveItags {
		for i := range video.Formats {
			f := &video.Formats[i]
			if f.ItagNo == itag && f.AudioChannels > 0 {
				return f
			}
		}
	}
	for i := range video.Formats {
		f := &video.Formats[i]
		if f.AudioChannels > 0 && f.Height > 0 {
			return f
		}
	}
	return nil
}
