package codegen

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileSink writes the rendered document to a local file, the live
// script the user keeps open in their editor. Writes go through a
// temp file and rename so the editor never observes a partial write.
type FileSink struct {
	path string
}

func NewFileSink(path string) (*FileSink, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	return &FileSink{path: path}, nil
}

func (s *FileSink) Publish(_ context.Context, content string) error {
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, []byte(content), 0644); err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace document: %w", err)
	}
	return nil
}

func (s *FileSink) Path() string {
	return s.path
}

// BufferSink records every publish in memory. Used in tests and as a
// fallback when no output path is configured.
type BufferSink struct {
	mu       sync.Mutex
	contents []string
}

func NewBufferSink() *BufferSink {
	return &BufferSink{}
}

func (s *BufferSink) Publish(_ context.Context, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contents = append(s.contents, content)
	return nil
}

// Publishes returns every content ever published, in order.
func (s *BufferSink) Publishes() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.contents))
	copy(out, s.contents)
	return out
}

// Current returns the most recently published content.
func (s *BufferSink) Current() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.contents) == 0 {
		return ""
	}
	return s.contents[len(s.contents)-1]
}
