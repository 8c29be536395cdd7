package streamer

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// driveIDPatterns are the known shapes of Google Drive sharing URLs. Order
// matters only in that the first matching pattern wins.
var driveIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`/file/d/([a-zA-Z0-9_-]+)`),
	regexp.MustCompile(`id=([a-zA-Z0-9_-]+)`),
	regexp.MustCompile(`/open\?id=([a-zA-Z0-9_-]+)`),
	regexp.MustCompile(`/d/([a-zA-Z0-9_-]+)`),
}

func validateInputURL(raw string) (string, error) {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", wrapCategory(CategoryInvalidURL, fmt.Errorf("invalid URL: %w", err))
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return "", wrapCategory(CategoryInvalidURL, fmt.Errorf("invalid URL: missing scheme or host"))
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https":
	default:
		return "", wrapCategory(CategoryInvalidURL, fmt.Errorf("unsupported URL scheme: %s", parsed.Scheme))
	}
	return parsed.String(), nil
}

func isDriveURL(raw string) bool {
	return strings.Contains(raw, "drive.google.com") || strings.Contains(raw, "docs.google.com")
}

// extractDriveID pulls the file identifier out of any recognized Drive URL
// shape. Returns false if no pattern matches.
func extractDriveID(raw string) (string, bool) {
	for _, pattern := range driveIDPatterns {
		if match := pattern.FindStringSubmatch(raw); match != nil {
			return match[1], true
		}
	}
	return "", false
}

// driveExportURL is the endpoint that serves file bytes once the
// confirmation handshake succeeds.
func driveExportURL(base, fileID, confirm string) string {
	query := url.Values{"export": {"download"}, "id": {fileID}}
	if confirm != "" {
		query.Set("confirm", confirm)
	}
	return base + "?" + query.Encode()
}

// driveFuzzyURL is the normalized form the gdown fallback understands.
func driveFuzzyURL(fileID string) string {
	return "https://drive.google.com/uc?id=" + fileID
}

// normalizeHostname returns the normalized hostname from a URL:
// lowercase, with "www." prefix removed, and port stripped.
func normalizeHostname(parsed *url.URL) string {
	host := strings.ToLower(parsed.Hostname())
	return strings.TrimPrefix(host, "www.")
}

func isYouTubeURL(raw string) bool {
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	host := normalizeHostname(parsed)
	return host == "youtube.com" || host == "youtu.be" || host == "music.youtube.com"
}
