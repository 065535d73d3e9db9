package render

import (
	"io"
	"time"

	"github.com/bowerhall/brandchat/internal/chat"
	"gopkg.in/yaml.v3"
)

type export struct {
	ExportedAt time.Time      `yaml:"exported_at"`
	Count      int            `yaml:"count"`
	Messages   []chat.Message `yaml:"messages"`
}

// YAML writes the transcript snapshot as a YAML document.
func YAML(w io.Writer, msgs []chat.Message, now time.Time) error {
	enc := yaml.NewEncoder(w)
	defer func() { _ = enc.Close() }()

	enc.SetIndent(2)
	return enc.Encode(export{
		ExportedAt: now,
		Count:      len(msgs),
		Messages:   msgs,
	})
}
