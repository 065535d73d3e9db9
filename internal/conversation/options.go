package conversation

import (
	"time"

	"github.com/bowerhall/brandchat/internal/config"
)

// Identity is the display metadata stamped on messages from one side.
type Identity struct {
	Label string
	Glyph string
}

type Option func(*Controller)

func WithCopy(c config.Copy) Option {
	return func(ctrl *Controller) { ctrl.copy = c }
}

// WithReplyDelay sets how long the placeholder reply waits after a plain-text send.
func WithReplyDelay(d time.Duration) Option {
	return func(ctrl *Controller) { ctrl.replyDelay = d }
}

func WithHook(h Hook) Option {
	return func(ctrl *Controller) { ctrl.hook = h }
}

func WithClock(now func() time.Time) Option {
	return func(ctrl *Controller) { ctrl.now = now }
}

func WithIdentity(user, agent Identity) Option {
	return func(ctrl *Controller) {
		ctrl.user = user
		ctrl.agent = agent
	}
}

// FromConfig maps the loaded configuration onto controller options.
func FromConfig(cfg *config.Config) []Option {
	return []Option{
		WithCopy(cfg.Copy),
		WithReplyDelay(cfg.Chat.ReplyDelay),
		WithIdentity(
			Identity{Label: cfg.Identity.UserLabel, Glyph: cfg.Identity.UserGlyph},
			Identity{Label: cfg.Identity.AgentLabel, Glyph: cfg.Identity.AgentGlyph},
		),
	}
}
