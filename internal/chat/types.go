package chat

import (
	"errors"
	"time"
)

var ErrDuplicateID = errors.New("message id already in transcript")

type Sender string

const (
	SenderUser  Sender = "user"
	SenderAgent Sender = "agent"
)

// Kind tells the renderer how to treat Data. The core never inspects it.
type Kind string

const (
	KindText       Kind = "text"
	KindScore      Kind = "score"
	KindChart      Kind = "chart"
	KindResultCard Kind = "result-card"
)

type Message struct {
	ID          string    `yaml:"id"`
	Content     string    `yaml:"content"`
	Sender      Sender    `yaml:"sender"`
	SenderLabel string    `yaml:"sender_label,omitempty"`
	AvatarGlyph string    `yaml:"avatar,omitempty"`
	Timestamp   time.Time `yaml:"timestamp"`
	Kind        Kind      `yaml:"kind,omitempty"`
	Data        any       `yaml:"data,omitempty"`
}
