package config

import (
	"fmt"
	"os"
	"time"
)

const (
	defaultEndpoint      = "http://localhost:8000/upload"
	defaultUploadTimeout = 60 * time.Second
	defaultReplyDelay    = time.Second
)

func Load() (*Config, error) {
	uploadConfig, err := loadUploadConfig()
	if err != nil {
		return nil, err
	}

	chatConfig, err := loadChatConfig()
	if err != nil {
		return nil, err
	}

	copyText, err := LoadCopy(chatConfig.CopyFile)
	if err != nil {
		return nil, err
	}

	return &Config{
		Upload:   uploadConfig,
		Chat:     chatConfig,
		Identity: loadIdentityConfig(),
		Copy:     copyText,
	}, nil
}

func loadUploadConfig() (UploadConfig, error) {
	endpoint := os.Getenv("BRANDCHAT_UPLOAD_URL")
	if endpoint == "" {
		endpoint = defaultEndpoint
	}

	timeout, err := durationEnv("BRANDCHAT_UPLOAD_TIMEOUT", defaultUploadTimeout)
	if err != nil {
		return UploadConfig{}, err
	}

	return UploadConfig{
		Endpoint: endpoint,
		Timeout:  timeout,
		Origin:   os.Getenv("BRANDCHAT_UPLOAD_ORIGIN"),
	}, nil
}

func loadChatConfig() (ChatConfig, error) {
	delay, err := durationEnv("BRANDCHAT_REPLY_DELAY", defaultReplyDelay)
	if err != nil {
		return ChatConfig{}, err
	}

	return ChatConfig{
		ReplyDelay: delay,
		CopyFile:   os.Getenv("BRANDCHAT_COPY_FILE"),
	}, nil
}

func loadIdentityConfig() IdentityConfig {
	return IdentityConfig{
		UserLabel:  envOr("BRANDCHAT_USER_LABEL", "You"),
		UserGlyph:  envOr("BRANDCHAT_USER_GLYPH", "🙂"),
		AgentLabel: envOr("BRANDCHAT_AGENT_LABEL", "Brand Analyst"),
		AgentGlyph: envOr("BRANDCHAT_AGENT_GLYPH", "🤖"),
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// durationEnv parses key as a Go duration; zero is allowed, negatives are not.
func durationEnv(key string, def time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s must not be negative, got %s", key, raw)
	}

	return d, nil
}
