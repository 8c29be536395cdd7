package streamer

import (
	"testing"
	"time"
)

func TestParseProbeDuration(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		want    time.Duration
		wantErr bool
	}{
		{
			name:  "whole seconds",
			input: `{"format":{"duration":"120.000000","format_name":"mov,mp4"}}`,
			want:  2 * time.Minute,
		},
		{
			name:  "fractional seconds",
			input: `{"format":{"duration":"3723.500000"}}`,
			want:  3723*time.Second + 500*time.Millisecond,
		},
		{name: "missing duration", input: `{"format":{}}`, wantErr: true},
		{name: "not json", input: "no duration here", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseProbeDuration(tc.input)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tc.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseProbeDuration: %v", err)
			}
			if got != tc.want {
				t.Fatalf("duration = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestFormatClock(t *testing.T) {
	cases := []struct {
		input time.Duration
		want  string
	}{
		{0, "00:00:00"},
		{61 * time.Second, "00:01:01"},
		{3723 * time.Second, "01:02:03"},
		{25 * time.Hour, "25:00:00"},
	}

	for _, tc := range cases {
		if got := formatClock(tc.input); got != tc.want {
			t.Errorf("formatClock(%v) = %q, want %q", tc.input, got, tc.want)
		}
	}
}
