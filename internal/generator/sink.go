package generator

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// Sink persists rendered files. Implementations must be safe for concurrent
// use and must overwrite an existing destination of the same name.
type Sink interface {
	WriteFile(name string, content []byte) error
}

// DirSink writes files into a directory, creating it on first use.
type DirSink struct {
	Dir string

	once sync.Once
	err  error
}

// NewDirSink creates a DirSink rooted at dir.
func NewDirSink(dir string) *DirSink {
	return &DirSink{Dir: dir}
}

// WriteFile writes content to Dir/name, replacing any existing file.
func (s *DirSink) WriteFile(name string, content []byte) error {
	s.once.Do(func() {
		if err := os.MkdirAll(s.Dir, 0o755); err != nil {
			s.err = fmt.Errorf("creating output directory: %w", err)
		}
	})
	if s.err != nil {
		return s.err
	}

	file, err := os.Create(filepath.Join(s.Dir, name))
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	if _, err := writer.Write(content); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("flushing %s: %w", name, err)
	}
	return nil
}

// MemorySink keeps files in memory.
type MemorySink struct {
	mu    sync.Mutex
	files map[string][]byte
}

// NewMemorySink creates an empty MemorySink.
func NewMemorySink() *MemorySink {
	return &MemorySink{files: make(map[string][]byte)}
}

// WriteFile stores a copy of content under name.
func (s *MemorySink) WriteFile(name string, content []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[name] = append([]byte(nil), content...)
	return nil
}

// File returns the content stored under name.
func (s *MemorySink) File(name string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	content, ok := s.files[name]
	return content, ok
}

// Names returns the stored file names in sorted order.
func (s *MemorySink) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.files))
	for name := range s.files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// discardSink drops everything; used for dry runs.
type discardSink struct{}

func (discardSink) WriteFile(string, []byte) error { return nil }

// Discard is a Sink that writes nothing.
var Discard Sink = discardSink{}
