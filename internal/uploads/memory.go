package uploads

import (
	"bytes"
	"context"
	"io"
	"sort"
	"sync"
)

// MemorySink keeps uploads in process memory. It backs tests and
// deployments that run without an object store.
type MemorySink struct {
	mu    sync.RWMutex
	files map[string]memoryFile
}

type memoryFile struct {
	data        []byte
	contentType string
}

func NewMemorySink() *MemorySink {
	return &MemorySink{files: make(map[string]memoryFile)}
}

func (s *MemorySink) Store(_ context.Context, name string, r io.Reader, _ int64, contentType string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[name] = memoryFile{data: data, contentType: contentType}
	return nil
}

func (s *MemorySink) Open(_ context.Context, name string) (io.ReadCloser, *File, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.files[name]
	if !ok {
		return nil, nil, ErrNotFound
	}
	info := &File{Name: name, Size: int64(len(f.data)), ContentType: f.contentType}
	return io.NopCloser(bytes.NewReader(f.data)), info, nil
}

func (s *MemorySink) List(_ context.Context) ([]File, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	files := make([]File, 0, len(s.files))
	for name, f := range s.files {
		files = append(files, File{Name: name, Size: int64(len(f.data)), ContentType: f.contentType})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}
