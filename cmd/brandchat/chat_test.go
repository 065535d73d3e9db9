package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bowerhall/brandchat/internal/chat"
	"github.com/bowerhall/brandchat/internal/conversation"
	"github.com/bowerhall/brandchat/internal/logger"
	"github.com/bowerhall/brandchat/internal/upload"
)

type okUploader struct{}

func (okUploader) Upload(ctx context.Context, file chat.FileHandle) upload.Result {
	return upload.Success{Filename: file.Name, FileType: "text/plain", Path: "uploads/" + file.Name, Preview: upload.PreviewUnavailable{}}
}

func newTestSession(t *testing.T) (*session, *bytes.Buffer) {
	t.Helper()

	ctrl := conversation.New(okUploader{},
		conversation.WithReplyDelay(5*time.Millisecond),
		conversation.WithHook(nil),
	)
	t.Cleanup(ctrl.Close)

	var buf bytes.Buffer
	return &session{ctrl: ctrl, out: &buf}, &buf
}

func waitFor(t *testing.T, s *session) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.ctrl.Wait(ctx); err != nil {
		t.Fatalf("wait: %v", err)
	}
	s.flush()
}

func TestSessionAttachAndSend(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "brief.txt")
	if err := os.WriteFile(path, []byte("brand brief"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	s, out := newTestSession(t)

	if quit := s.handle("/attach " + path); quit {
		t.Fatal("attach should not quit")
	}
	if !strings.Contains(out.String(), "brief.txt (11 B)") {
		t.Errorf("expected staged file listing, got %q", out.String())
	}

	s.handle("review this")
	waitFor(t, s)

	text := out.String()
	for _, want := range []string{"review this", "**brief.txt**", "uploading 1 file(s)...", "**brief.txt** uploaded"} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}
	if len(s.ctrl.Pending()) != 0 {
		t.Error("pending files should be consumed by send")
	}
}

func TestSessionCommands(t *testing.T) {
	tests := []struct {
		name string
		line string
		quit bool
		want string
	}{
		{name: "quit", line: "/quit", quit: true},
		{name: "exit", line: "/exit", quit: true},
		{name: "empty pending", line: "/pending", want: "no files staged"},
		{name: "attach without paths", line: "/attach", want: "usage: /attach"},
		{name: "attach missing file", line: "/attach /does/not/exist", want: "attach failed"},
		{name: "unknown command", line: "/nope", want: "commands:"},
		{name: "export", line: "/export", want: "messages:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, out := newTestSession(t)

			if got := s.handle(tt.line); got != tt.quit {
				t.Errorf("handle(%q) quit = %v, want %v", tt.line, got, tt.quit)
			}
			if tt.want != "" && !strings.Contains(out.String(), tt.want) {
				t.Errorf("handle(%q) output %q, want it to contain %q", tt.line, out.String(), tt.want)
			}
		})
	}
}

func TestSessionFlushPrintsOnlyNewMessages(t *testing.T) {
	s, out := newTestSession(t)

	s.handle("first")
	waitFor(t, s)
	out.Reset()

	s.handle("second")
	waitFor(t, s)

	if strings.Contains(out.String(), "first") {
		t.Errorf("earlier messages should not be reprinted:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "second") {
		t.Errorf("new message missing:\n%s", out.String())
	}
}

func TestReadFilesSkipsBlank(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	if err := os.WriteFile(path, []byte("a"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	files, err := readFiles([]string{path, "  "})
	if err != nil {
		t.Fatalf("readFiles: %v", err)
	}
	if len(files) != 1 || files[0].Name != "a.txt" || files[0].Size != 1 {
		t.Errorf("unexpected files: %+v", files)
	}
}

type brokenWriter struct{}

func (brokenWriter) Write(p []byte) (int, error) {
	return 0, errors.New("terminal gone")
}

func TestSessionFlushReportsRenderError(t *testing.T) {
	var logs bytes.Buffer
	logger.SetOutput(&logs)
	t.Cleanup(func() { logger.SetOutput(os.Stderr) })

	s, _ := newTestSession(t)
	s.out = brokenWriter{}

	if _, err := s.ctrl.Send("hello"); err != nil {
		t.Fatalf("send: %v", err)
	}
	s.flush()

	if s.printed != 0 {
		t.Errorf("printed = %d, want 0 after a failed render", s.printed)
	}
	if !strings.Contains(logs.String(), "render transcript failed") || !strings.Contains(logs.String(), "terminal gone") {
		t.Errorf("expected render failure in logs, got %q", logs.String())
	}
}
