package chat

import (
	"fmt"
	"os"
	"path/filepath"
)

const bytesPerMB = 1024 * 1024

// FileHandle is a file picked by the user, held in memory until it is uploaded.
type FileHandle struct {
	Name    string
	Size    int64
	Content []byte
}

func NewFileHandle(name string, content []byte) FileHandle {
	return FileHandle{
		Name:    name,
		Size:    int64(len(content)),
		Content: content,
	}
}

// ReadFile loads path from disk into a FileHandle named after its base name.
func ReadFile(path string) (FileHandle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return FileHandle{}, fmt.Errorf("read %s: %w", path, err)
	}
	return NewFileHandle(filepath.Base(path), data), nil
}

func (f FileHandle) SizeMB() float64 {
	return float64(f.Size) / bytesPerMB
}
