package upload

import (
	"fmt"
	"strings"

	"github.com/bowerhall/brandchat/internal/chat"
	"github.com/bowerhall/brandchat/internal/config"
)

// FormatFileList renders one "**name** (x.xx MB)" line per file.
func FormatFileList(files []chat.FileHandle) string {
	lines := make([]string, 0, len(files))
	for _, f := range files {
		lines = append(lines, fmt.Sprintf("**%s** (%.2f MB)", f.Name, f.SizeMB()))
	}
	return strings.Join(lines, "\n")
}

func FormatStarting(count int, c config.Copy) string {
	return fmt.Sprintf(c.UploadStarting, count)
}

// FormatOutcome renders the transcript entry for one file's result.
func FormatOutcome(r Result, c config.Copy) string {
	switch r := r.(type) {
	case Success:
		meta := formatMetadata(r)
		if p, ok := r.Preview.(PreviewAvailable); ok {
			return fmt.Sprintf("![%s](%s)\n\n%s", r.Filename, p.DataURI, meta)
		}
		return meta

	case Failure:
		reason := r.Reason
		if reason == "" {
			reason = c.ServerErrorFallback
		}
		return fmt.Sprintf("Upload failed for **%s**: %s", r.Filename, reason)

	case TransportError:
		reason := r.Reason
		if reason == "" {
			reason = c.NetworkFallback
		}
		return fmt.Sprintf("Network error while uploading **%s**: %s", r.Filename, reason)

	default:
		return fmt.Sprintf("Network error while uploading **%s**: %s", r.File(), c.NetworkFallback)
	}
}

func formatMetadata(s Success) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**%s** uploaded\n", s.Filename)
	fmt.Fprintf(&b, "- Type: %s\n", s.FileType)
	fmt.Fprintf(&b, "- Size: %.2f MB\n", s.SizeMB)
	fmt.Fprintf(&b, "- Path: %s", s.Path)
	return b.String()
}
