package chat

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

var idCounter atomic.Uint64

// NewID returns a session-unique message id. The counter keeps ids distinct
// when several messages are created within the same clock tick.
func NewID(now time.Time) string {
	n := idCounter.Add(1)
	return fmt.Sprintf("%d-%d-%s", now.UnixMilli(), n, uuid.New().String()[:8])
}
