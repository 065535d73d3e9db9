package conversation

import (
	"time"

	"github.com/bowerhall/brandchat/internal/logger"
	"github.com/bowerhall/brandchat/internal/upload"
)

type EventType string

const (
	EventStage         EventType = "stage"
	EventSend          EventType = "send"
	EventUploadStart   EventType = "upload_start"
	EventUploadOutcome EventType = "upload_outcome"
	EventReply         EventType = "reply"
)

// Event describes one lifecycle point of the controller.
type Event struct {
	Type      EventType
	At        time.Time
	MessageID string
	Files     []string // stage, send and upload_start
	Filename  string   // upload_outcome
	Outcome   upload.Outcome
	Detail    string
}

// Hook observes controller events. It is called synchronously, so it must
// not call back into the controller.
type Hook func(Event)

// LogHook writes every event to the package logger.
func LogHook() Hook {
	return func(e Event) {
		switch e.Type {
		case EventStage:
			logger.Info("files staged", "count", len(e.Files), "files", e.Files)
		case EventSend:
			logger.Info("message sent", "id", e.MessageID, "files", len(e.Files))
		case EventUploadStart:
			logger.Info("upload started", "files", len(e.Files))
		case EventUploadOutcome:
			if e.Outcome == upload.OutcomeSuccess {
				logger.Info("upload finished", "file", e.Filename, "outcome", e.Outcome)
			} else {
				logger.Warn("upload failed", "file", e.Filename, "outcome", e.Outcome, "detail", e.Detail)
			}
		case EventReply:
			logger.Debug("reply posted", "id", e.MessageID)
		}
	}
}

// MultiHook fans an event out to several hooks in order. Nil hooks are skipped.
func MultiHook(hooks ...Hook) Hook {
	return func(e Event) {
		for _, h := range hooks {
			if h != nil {
				h(e)
			}
		}
	}
}
