package capture

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sync"
)

// maxFrameSize bounds how much of a file is read as one frame.
const maxFrameSize = 10 << 20

// FileDevice serves a still image from disk as if it were a camera.
type FileDevice struct {
	Path string
}

// Acquire opens the file.
func (d FileDevice) Acquire(ctx context.Context) (Stream, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(d.Path)
	if err != nil {
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("%w: %s", ErrDeviceNotFound, d.Path)
		case errors.Is(err, fs.ErrPermission):
			return nil, fmt.Errorf("%w: %s", ErrPermissionDenied, d.Path)
		}
		return nil, err
	}
	return &fileStream{f: f}, nil
}

type fileStream struct {
	mu       sync.Mutex
	f        *os.File
	released bool
}

func (s *fileStream) CaptureFrame(ctx context.Context) (Frame, error) {
	if err := ctx.Err(); err != nil {
		return Frame{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.released {
		return Frame{}, fmt.Errorf("%w: stream released", ErrNotReady)
	}
	if _, err := s.f.Seek(0, io.SeekStart); err != nil {
		return Frame{}, err
	}
	data, err := io.ReadAll(io.LimitReader(s.f, maxFrameSize))
	if err != nil {
		return Frame{}, fmt.Errorf("read frame: %w", err)
	}
	return NewFrame(data)
}

func (s *fileStream) Release() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.released {
		return nil
	}
	s.released = true
	return s.f.Close()
}
