package conversation

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/bowerhall/brandchat/internal/chat"
	"github.com/bowerhall/brandchat/internal/config"
	"github.com/bowerhall/brandchat/internal/logger"
	"github.com/bowerhall/brandchat/internal/schedule"
	"github.com/bowerhall/brandchat/internal/upload"
)

var ErrClosed = errors.New("conversation closed")

const defaultReplyDelay = time.Second

// Controller owns the transcript and the staged files of one chat session.
// It turns stage and send intents into transcript entries and upload runs.
type Controller struct {
	transcript *chat.Transcript
	pending    *chat.PendingFileSet
	uploader   upload.Uploader
	replies    *schedule.Scheduler

	copy       config.Copy
	replyDelay time.Duration
	hook       Hook
	now        func() time.Time
	user       Identity
	agent      Identity

	ctx    context.Context
	cancel context.CancelFunc

	// sendMu serializes Send, including the reply cancel-then-schedule swap.
	sendMu sync.Mutex

	mu       sync.Mutex
	closed   bool
	runQueue [][]chat.FileHandle
	working  bool
	replyID  string
	active   int
	idle     chan struct{}
}

func New(uploader upload.Uploader, opts ...Option) *Controller {
	ctx, cancel := context.WithCancel(context.Background())

	idle := make(chan struct{})
	close(idle)

	c := &Controller{
		transcript: chat.NewTranscript(),
		pending:    chat.NewPendingFileSet(),
		uploader:   uploader,
		replies:    schedule.NewScheduler(),
		copy:       config.DefaultCopy(),
		replyDelay: defaultReplyDelay,
		hook:       LogHook(),
		now:        time.Now,
		user:       Identity{Label: "You"},
		agent:      Identity{Label: "Brand Analyst"},
		ctx:        ctx,
		cancel:     cancel,
		idle:       idle,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// StageFiles adds files to the pending set. The transcript is untouched.
func (c *Controller) StageFiles(files ...chat.FileHandle) {
	if len(files) == 0 {
		return
	}

	c.pending.Stage(files...)
	c.emit(Event{Type: EventStage, Files: fileNames(files)})
}

// Send posts the user's message, combining text with every staged file and
// any files passed directly. With files, an upload run is queued; without,
// a single placeholder reply is scheduled.
func (c *Controller) Send(text string, files ...chat.FileHandle) (chat.Message, error) {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return chat.Message{}, ErrClosed
	}

	// the closed check, the consume and the append share one critical section
	staged := c.pending.ConsumeAndClear()
	toSend := append(append([]chat.FileHandle(nil), staged...), files...)
	msg, err := c.appendLocked(chat.SenderUser, c.user, composeUserContent(text, toSend, c.copy))
	if err != nil {
		c.pending.Stage(staged...)
	}
	c.mu.Unlock()
	if err != nil {
		return chat.Message{}, err
	}

	c.emit(Event{Type: EventSend, MessageID: msg.ID, Files: fileNames(toSend)})

	// a newer send supersedes a reply that has not been posted yet
	c.cancelReply()

	if len(toSend) > 0 {
		c.enqueueRun(toSend)
	} else {
		c.scheduleReply()
	}

	return msg, nil
}

func (c *Controller) Snapshot() []chat.Message {
	return c.transcript.Snapshot()
}

func (c *Controller) Pending() []chat.FileHandle {
	return c.pending.Snapshot()
}

// Typing reports whether the agent still has work that will produce messages.
func (c *Controller) Typing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active > 0
}

// Wait blocks until every queued run and pending reply has finished.
func (c *Controller) Wait(ctx context.Context) error {
	for {
		c.mu.Lock()
		idle := c.idle
		active := c.active
		c.mu.Unlock()

		if active == 0 {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-idle:
		}
	}
}

// Close cancels pending replies, drops queued runs and aborts the in-flight
// upload. No message is appended after Close returns.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	dropped := len(c.runQueue)
	c.runQueue = nil
	c.mu.Unlock()

	c.cancel()

	cancelled := c.replies.CancelAll()
	for i := 0; i < dropped+cancelled; i++ {
		c.release()
	}

	logger.Debug("conversation closed", "dropped_runs", dropped, "cancelled_replies", cancelled)
}

func (c *Controller) enqueueRun(files []chat.FileHandle) {
	c.acquire()

	c.mu.Lock()
	c.runQueue = append(c.runQueue, files)
	start := !c.working
	c.working = true
	c.mu.Unlock()

	if start {
		go c.drainRuns()
	}
}

// drainRuns executes queued runs one at a time, in the order they were sent.
func (c *Controller) drainRuns() {
	for {
		c.mu.Lock()
		if len(c.runQueue) == 0 || c.closed {
			dropped := len(c.runQueue)
			c.runQueue = nil
			c.working = false
			c.mu.Unlock()

			for i := 0; i < dropped; i++ {
				c.release()
			}
			return
		}
		files := c.runQueue[0]
		c.runQueue = c.runQueue[1:]
		c.mu.Unlock()

		c.runPipeline(files)
		c.release()
	}
}

func (c *Controller) runPipeline(files []chat.FileHandle) {
	p := upload.NewPipeline(c.uploader, agentSink{c},
		upload.WithCopy(c.copy),
		upload.WithStartHook(func(files []chat.FileHandle) {
			c.emit(Event{Type: EventUploadStart, Files: fileNames(files)})
		}),
		upload.WithOutcomeHook(func(_ int, file chat.FileHandle, r upload.Result) {
			c.emit(Event{
				Type:     EventUploadOutcome,
				Filename: file.Name,
				Outcome:  r.Outcome(),
				Detail:   outcomeDetail(r),
			})
		}),
	)

	if err := p.Run(c.ctx, files); err != nil {
		logger.Warn("upload run stopped", "files", len(files), "error", err)
	}
}

func (c *Controller) scheduleReply() {
	c.acquire()

	id := c.replies.After(c.replyDelay, "placeholder-reply", func() {
		defer c.release()

		msg, err := c.appendMessage(chat.SenderAgent, c.agent, c.copy.Placeholder)
		if err != nil {
			logger.Debug("placeholder reply dropped", "error", err)
			return
		}
		c.emit(Event{Type: EventReply, MessageID: msg.ID})
	})

	c.mu.Lock()
	c.replyID = id
	c.mu.Unlock()
}

func (c *Controller) cancelReply() {
	c.mu.Lock()
	id := c.replyID
	c.replyID = ""
	c.mu.Unlock()

	if id != "" && c.replies.Cancel(id) {
		c.release()
	}
}

// appendMessage is the only path into the transcript. Holding mu across the
// closed check and the append keeps anything from landing after Close.
func (c *Controller) appendMessage(sender chat.Sender, who Identity, content string) (chat.Message, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return chat.Message{}, ErrClosed
	}

	return c.appendLocked(sender, who, content)
}

// appendLocked requires c.mu.
func (c *Controller) appendLocked(sender chat.Sender, who Identity, content string) (chat.Message, error) {
	now := c.now()
	msg := chat.Message{
		ID:          chat.NewID(now),
		Content:     content,
		Sender:      sender,
		SenderLabel: who.Label,
		AvatarGlyph: who.Glyph,
		Timestamp:   now,
		Kind:        chat.KindText,
	}

	if err := c.transcript.Append(msg); err != nil {
		return chat.Message{}, err
	}

	return msg, nil
}

func (c *Controller) acquire() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.active == 0 {
		c.idle = make(chan struct{})
	}
	c.active++
}

func (c *Controller) release() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.active == 0 {
		return
	}
	c.active--
	if c.active == 0 {
		close(c.idle)
	}
}

func (c *Controller) emit(e Event) {
	if c.hook == nil {
		return
	}
	if e.At.IsZero() {
		e.At = c.now()
	}
	c.hook(e)
}

type agentSink struct {
	c *Controller
}

func (s agentSink) Post(content string) error {
	_, err := s.c.appendMessage(chat.SenderAgent, s.c.agent, content)
	return err
}
