package upload

import (
	"strings"
	"testing"

	"github.com/bowerhall/brandchat/internal/chat"
	"github.com/bowerhall/brandchat/internal/config"
)

func TestFormatFileList(t *testing.T) {
	files := []chat.FileHandle{
		{Name: "invoice.pdf", Size: 2621440},
		{Name: "logo.png", Size: 1024},
	}

	got := FormatFileList(files)
	want := "**invoice.pdf** (2.50 MB)\n**logo.png** (0.00 MB)"
	if got != want {
		t.Errorf("FormatFileList() = %q, want %q", got, want)
	}
}

func TestFormatStarting(t *testing.T) {
	if got := FormatStarting(1, config.DefaultCopy()); got != "uploading 1 file(s)..." {
		t.Errorf("unexpected start message: %q", got)
	}
}

func TestFormatOutcome(t *testing.T) {
	c := config.DefaultCopy()

	tests := []struct {
		name     string
		result   Result
		contains []string
		excludes []string
	}{
		{
			name: "success with preview",
			result: Success{
				Filename: "logo.png", FileType: "image/png", SizeMB: 0.25, Path: "uploads/logo.png",
				Preview: PreviewAvailable{DataURI: "data:image/png;base64,AAAA"},
			},
			contains: []string{"![logo.png](data:image/png;base64,AAAA)", "**logo.png** uploaded", "- Type: image/png", "- Size: 0.25 MB", "- Path: uploads/logo.png"},
		},
		{
			name: "success metadata only",
			result: Success{
				Filename: "invoice.pdf", FileType: "application/pdf", SizeMB: 2.5, Path: "uploads/invoice.pdf",
				Preview: PreviewUnavailable{},
			},
			contains: []string{"**invoice.pdf** uploaded", "- Size: 2.50 MB"},
			excludes: []string{"!["},
		},
		{
			name:     "server error quoted",
			result:   Failure{Filename: "a.exe", Reason: "bad type"},
			contains: []string{"Upload failed for **a.exe**", "bad type"},
		},
		{
			name:     "server error fallback",
			result:   Failure{Filename: "a.exe"},
			contains: []string{c.ServerErrorFallback},
		},
		{
			name:     "network error quoted",
			result:   TransportError{Filename: "b.pdf", Reason: "connection refused"},
			contains: []string{"Network error while uploading **b.pdf**", "connection refused"},
		},
		{
			name:     "network error fallback",
			result:   TransportError{Filename: "b.pdf"},
			contains: []string{c.NetworkFallback},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatOutcome(tt.result, c)
			for _, s := range tt.contains {
				if !strings.Contains(got, s) {
					t.Errorf("expected %q in %q", s, got)
				}
			}
			for _, s := range tt.excludes {
				if strings.Contains(got, s) {
					t.Errorf("did not expect %q in %q", s, got)
				}
			}
		})
	}
}
