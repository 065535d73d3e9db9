package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"BRANDCHAT_UPLOAD_URL",
		"BRANDCHAT_UPLOAD_TIMEOUT",
		"BRANDCHAT_UPLOAD_ORIGIN",
		"BRANDCHAT_REPLY_DELAY",
		"BRANDCHAT_COPY_FILE",
		"BRANDCHAT_USER_LABEL",
		"BRANDCHAT_AGENT_LABEL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Upload.Endpoint != defaultEndpoint {
		t.Errorf("expected endpoint %s, got %s", defaultEndpoint, cfg.Upload.Endpoint)
	}
	if cfg.Upload.Timeout != defaultUploadTimeout {
		t.Errorf("expected timeout %s, got %s", defaultUploadTimeout, cfg.Upload.Timeout)
	}
	if cfg.Chat.ReplyDelay != defaultReplyDelay {
		t.Errorf("expected reply delay %s, got %s", defaultReplyDelay, cfg.Chat.ReplyDelay)
	}
	if cfg.Identity.UserLabel != "You" {
		t.Errorf("expected default user label, got %s", cfg.Identity.UserLabel)
	}
	if cfg.Copy != DefaultCopy() {
		t.Errorf("expected default copy, got %+v", cfg.Copy)
	}
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("BRANDCHAT_UPLOAD_URL", "https://api.example.com/upload")
	t.Setenv("BRANDCHAT_UPLOAD_TIMEOUT", "5s")
	t.Setenv("BRANDCHAT_REPLY_DELAY", "250ms")
	t.Setenv("BRANDCHAT_UPLOAD_ORIGIN", "https://app.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Upload.Endpoint != "https://api.example.com/upload" {
		t.Errorf("endpoint mismatch: %s", cfg.Upload.Endpoint)
	}
	if cfg.Upload.Timeout != 5*time.Second {
		t.Errorf("timeout mismatch: %s", cfg.Upload.Timeout)
	}
	if cfg.Chat.ReplyDelay != 250*time.Millisecond {
		t.Errorf("reply delay mismatch: %s", cfg.Chat.ReplyDelay)
	}
	if cfg.Upload.Origin != "https://app.example.com" {
		t.Errorf("origin mismatch: %s", cfg.Upload.Origin)
	}
}

func TestLoadInvalidDuration(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"BRANDCHAT_UPLOAD_TIMEOUT", "soon"},
		{"BRANDCHAT_REPLY_DELAY", "-1s"},
	}

	for _, tt := range tests {
		clearEnv(t)
		t.Setenv(tt.key, tt.value)

		if _, err := Load(); err == nil {
			t.Errorf("expected error for %s=%s", tt.key, tt.value)
		}
	}
}

func TestLoadCopyOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "copy.yml")
	data := []byte("lead_in: analysis begins\nplaceholder_reply: hang tight\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write copy file: %v", err)
	}

	c, err := LoadCopy(path)
	if err != nil {
		t.Fatalf("LoadCopy failed: %v", err)
	}

	if c.LeadIn != "analysis begins" {
		t.Errorf("expected overridden lead-in, got %q", c.LeadIn)
	}
	if c.Placeholder != "hang tight" {
		t.Errorf("expected overridden placeholder, got %q", c.Placeholder)
	}
	if c.UploadStarting != DefaultCopy().UploadStarting {
		t.Errorf("expected default upload-starting text, got %q", c.UploadStarting)
	}
}

func TestLoadCopyErrors(t *testing.T) {
	if _, err := LoadCopy(filepath.Join(t.TempDir(), "missing.yml")); err == nil {
		t.Error("expected error for missing copy file")
	}

	path := filepath.Join(t.TempDir(), "bad.yml")
	if err := os.WriteFile(path, []byte("lead_in: [unterminated"), 0o644); err != nil {
		t.Fatalf("write copy file: %v", err)
	}
	if _, err := LoadCopy(path); err == nil {
		t.Error("expected error for malformed copy file")
	}
}
