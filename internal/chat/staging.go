package chat

import "sync"

// PendingFileSet holds files staged by the user until the next send.
// Files are only ever removed all at once through ConsumeAndClear.
type PendingFileSet struct {
	mu    sync.Mutex
	files []FileHandle
}

func NewPendingFileSet() *PendingFileSet {
	return &PendingFileSet{}
}

// Stage appends files in the given order. Repeated calls accumulate; nothing
// is deduplicated.
func (p *PendingFileSet) Stage(files ...FileHandle) {
	if len(files) == 0 {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	next := make([]FileHandle, len(p.files), len(p.files)+len(files))
	copy(next, p.files)
	p.files = append(next, files...)
}

func (p *PendingFileSet) Snapshot() []FileHandle {
	p.mu.Lock()
	current := p.files
	p.mu.Unlock()

	copied := make([]FileHandle, len(current))
	copy(copied, current)

	return copied
}

// ConsumeAndClear returns every staged file and empties the set in one step.
func (p *PendingFileSet) ConsumeAndClear() []FileHandle {
	p.mu.Lock()
	defer p.mu.Unlock()

	files := p.files
	p.files = nil

	return files
}

func (p *PendingFileSet) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.files)
}
