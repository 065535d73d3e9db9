package config

import "time"

type Config struct {
	Upload   UploadConfig
	Chat     ChatConfig
	Identity IdentityConfig
	Copy     Copy
}

type UploadConfig struct {
	Endpoint string
	Timeout  time.Duration
	Origin   string // sent as Origin header when the backend sits on another host
}

type ChatConfig struct {
	ReplyDelay time.Duration
	CopyFile   string
}

type IdentityConfig struct {
	UserLabel  string
	UserGlyph  string
	AgentLabel string
	AgentGlyph string
}

// Copy holds every fixed user-visible string the core emits.
type Copy struct {
	LeadIn              string `yaml:"lead_in"`
	UploadStarting      string `yaml:"upload_starting"` // fmt verb %d receives the file count
	Placeholder         string `yaml:"placeholder_reply"`
	ServerErrorFallback string `yaml:"server_error_fallback"`
	NetworkFallback     string `yaml:"network_error_fallback"`
}
