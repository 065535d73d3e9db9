package upload

import (
	"context"
	"fmt"

	"github.com/bowerhall/brandchat/internal/chat"
	"github.com/bowerhall/brandchat/internal/config"
	"github.com/bowerhall/brandchat/internal/logger"
)

// Sink receives the agent messages a run produces, in order.
type Sink interface {
	Post(content string) error
}

// Pipeline uploads a batch of files one at a time and reports every outcome
// through its Sink. It keeps no state between runs.
type Pipeline struct {
	uploader  Uploader
	sink      Sink
	copy      config.Copy
	onStart   func(files []chat.FileHandle)
	onOutcome func(index int, file chat.FileHandle, r Result)
}

type PipelineOption func(*Pipeline)

func WithCopy(c config.Copy) PipelineOption {
	return func(p *Pipeline) { p.copy = c }
}

func WithStartHook(fn func(files []chat.FileHandle)) PipelineOption {
	return func(p *Pipeline) { p.onStart = fn }
}

func WithOutcomeHook(fn func(index int, file chat.FileHandle, r Result)) PipelineOption {
	return func(p *Pipeline) { p.onOutcome = fn }
}

func NewPipeline(uploader Uploader, sink Sink, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		uploader: uploader,
		sink:     sink,
		copy:     config.DefaultCopy(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

type task struct {
	index int
	file  chat.FileHandle
}

// Run posts the "uploading" message, then uploads each file strictly in
// order. A failed file never stops the batch. Run only returns early when ctx
// is cancelled or the sink refuses a message.
func (p *Pipeline) Run(ctx context.Context, files []chat.FileHandle) error {
	if err := p.sink.Post(FormatStarting(len(files), p.copy)); err != nil {
		return fmt.Errorf("post start message: %w", err)
	}

	if p.onStart != nil {
		p.onStart(files)
	}

	queue := make([]task, 0, len(files))
	for i, f := range files {
		queue = append(queue, task{index: i, file: f})
	}

	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			logger.Warn("upload run cancelled", "remaining", len(queue), "error", err)
			return err
		}

		t := queue[0]
		queue = queue[1:]

		result := p.uploader.Upload(ctx, t.file)
		if result == nil {
			result = TransportError{Filename: t.file.Name}
		}
		if ctx.Err() != nil {
			logger.Warn("upload run cancelled", "file", t.file.Name, "remaining", len(queue))
			return ctx.Err()
		}

		if p.onOutcome != nil {
			p.onOutcome(t.index, t.file, result)
		}

		if err := p.sink.Post(FormatOutcome(result, p.copy)); err != nil {
			return fmt.Errorf("post outcome for %s: %w", t.file.Name, err)
		}
	}

	return nil
}
