package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultCopy returns the built-in strings.
func DefaultCopy() Copy {
	return Copy{
		LeadIn:              "starting analysis",
		UploadStarting:      "uploading %d file(s)...",
		Placeholder:         "Thanks! I'm looking into your brand. Attach files for a deeper analysis.",
		ServerErrorFallback: "the server rejected the file",
		NetworkFallback:     "the upload request could not be completed",
	}
}

// LoadCopy reads YAML overrides from path on top of DefaultCopy.
// Keys missing from the file keep their defaults; an empty path returns the defaults.
func LoadCopy(path string) (Copy, error) {
	c := DefaultCopy()
	if path == "" {
		return c, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Copy{}, fmt.Errorf("read copy file: %w", err)
	}

	var overrides Copy
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return Copy{}, fmt.Errorf("parse copy file %s: %w", path, err)
	}

	c.merge(overrides)
	return c, nil
}

func (c *Copy) merge(o Copy) {
	if o.LeadIn != "" {
		c.LeadIn = o.LeadIn
	}
	if o.UploadStarting != "" {
		c.UploadStarting = o.UploadStarting
	}
	if o.Placeholder != "" {
		c.Placeholder = o.Placeholder
	}
	if o.ServerErrorFallback != "" {
		c.ServerErrorFallback = o.ServerErrorFallback
	}
	if o.NetworkFallback != "" {
		c.NetworkFallback = o.NetworkFallback
	}
}
