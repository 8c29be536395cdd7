package streamer

import "testing"

func TestValidateInputURL(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid http", input: "http://example.com/video.mp4", wantErr: false},
		{name: "valid https", input: "https://drive.google.com/file/d/abc/view", wantErr: false},
		{name: "missing scheme", input: "example.com/video.mp4", wantErr: true},
		{name: "empty", input: " ", wantErr: true},
		{name: "unsupported scheme", input: "ftp://example.com/video.mp4", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := validateInputURL(tc.input)
			if tc.wantErr && err == nil {
				t.Fatalf("expected error for %q", tc.input)
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error for %q: %v", tc.input, err)
			}
		})
	}
}

func TestIsDriveURL(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"https://drive.google.com/file/d/abc123/view", true},
		{"https://docs.google.com/uc?id=abc123", true},
		{"https://www.dropbox.com/s/abc/video.mp4", false},
		{"https://example.com/video.mp4", false},
	}

	for _, tc := range cases {
		if got := isDriveURL(tc.input); got != tc.want {
			t.Errorf("isDriveURL(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestExtractDriveID(t *testing.T) {
	cases := []struct {
		name   string
		input  string
		wantID string
		wantOK bool
	}{
		{
			name:   "file path form",
			input:  "https://drive.google.com/file/d/1aB2cD3_-eF/view?usp=sharing",
			wantID: "1aB2cD3_-eF",
			wantOK: true,
		},
		{
			name:   "query parameter form",
			input:  "https://drive.google.com/uc?export=download&id=XyZ987_-ab",
			wantID: "XyZ987_-ab",
			wantOK: true,
		},
		{
			name:   "open form",
			input:  "https://drive.google.com/open?id=OpenID42",
			wantID: "OpenID42",
			wantOK: true,
		},
		{
			name:   "short path form",
			input:  "https://drive.google.com/d/ShortID99/edit",
			wantID: "ShortID99",
			wantOK: true,
		},
		{
			name:   "no identifier",
			input:  "https://drive.google.com/",
			wantOK: false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			id, ok := extractDriveID(tc.input)
			if ok != tc.wantOK {
				t.Fatalf("extractDriveID(%q) ok = %v, want %v", tc.input, ok, tc.wantOK)
			}
			if ok && id != tc.wantID {
				t.Fatalf("extractDriveID(%q) = %q, want %q", tc.input, id, tc.wantID)
			}
		})
	}
}

func TestIsYouTubeURL(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", true},
		{"https://youtu.be/dQw4w9WgXcQ", true},
		{"https://music.youtube.com/watch?v=abc", true},
		{"https://drive.google.com/file/d/abc/view", false},
		{"https://example.com/video.mp4", false},
	}

	for _, tc := range cases {
		if got := isYouTubeURL(tc.input); got != tc.want {
			t.Errorf("isYouTubeURL(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestDriveExportURL(t *testing.T) {
	got := driveExportURL("https://drive.google.com/uc", "abc123", "")
	want := "https://drive.google.com/uc?export=download&id=abc123"
	if got != want {
		t.Fatalf("driveExportURL = %q, want %q", got, want)
	}

	got = driveExportURL("https://drive.google.com/uc", "abc123", "tok")
	want = "https://drive.google.com/uc?confirm=tok&export=download&id=abc123"
	if got != want {
		t.Fatalf("driveExportURL with confirm = %q, want %q", got, want)
	}
}
