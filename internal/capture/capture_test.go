package capture

import (
	"context"
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pngBase64 = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mP8z8BQDwAEhQGAhKmMIQAAAABJRU5ErkJggg=="

func pngBytes(t *testing.T) []byte {
	t.Helper()
	data, err := base64.StdEncoding.DecodeString(pngBase64)
	require.NoError(t, err)
	return data
}

type fakeDevice struct {
	acquireErr error
	frame      Frame
	captureErr error
	panics     bool
	stream     *fakeStream
}

type fakeStream struct {
	dev      *fakeDevice
	released int
}

func (d *fakeDevice) Acquire(context.Context) (Stream, error) {
	if d.acquireErr != nil {
		return nil, d.acquireErr
	}
	d.stream = &fakeStream{dev: d}
	return d.stream, nil
}

func (s *fakeStream) CaptureFrame(context.Context) (Frame, error) {
	if s.dev.panics {
		panic("driver crashed")
	}
	return s.dev.frame, s.dev.captureErr
}

func (s *fakeStream) Release() error {
	s.released++
	return nil
}

func TestNewFrame(t *testing.T) {
	f, err := NewFrame(pngBytes(t))
	require.NoError(t, err)
	assert.Equal(t, "image/png", f.MIME)
	assert.Equal(t, "data:image/png;base64,"+pngBase64, f.DataURL())

	_, err = NewFrame(nil)
	assert.ErrorIs(t, err, ErrNotReady)

	_, err = NewFrame([]byte("hello, this is plain text"))
	assert.ErrorIs(t, err, ErrNotReady)
}

func TestParseDataURL(t *testing.T) {
	f, err := ParseDataURL("data:image/png;base64," + pngBase64)
	require.NoError(t, err)
	assert.Equal(t, "image/png", f.MIME)

	for _, bad := range []string{
		"image/png;base64," + pngBase64,
		"data:image/png," + pngBase64,
		"data:image/png;base64,!!!",
		"data:text/plain;base64," + base64.StdEncoding.EncodeToString([]byte("plain text")),
	} {
		_, err := ParseDataURL(bad)
		assert.Error(t, err, bad)
	}
}

func TestSnapshot_ReleasesOnSuccess(t *testing.T) {
	frame, err := NewFrame(pngBytes(t))
	require.NoError(t, err)
	dev := &fakeDevice{frame: frame}

	got, err := Snapshot(context.Background(), dev)
	require.NoError(t, err)
	assert.Equal(t, frame, got)
	assert.Equal(t, 1, dev.stream.released)
}

func TestSnapshot_ReleasesOnCaptureError(t *testing.T) {
	dev := &fakeDevice{captureErr: ErrNotReady}
	_, err := Snapshot(context.Background(), dev)
	assert.ErrorIs(t, err, ErrNotReady)
	assert.Equal(t, 1, dev.stream.released)
}

func TestSnapshot_ReleasesOnCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	dev := &fakeDevice{}
	_, err := Snapshot(ctx, dev)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, dev.stream.released)
}

func TestSnapshot_ReleasesOnPanic(t *testing.T) {
	dev := &fakeDevice{panics: true}
	assert.Panics(t, func() { _, _ = Snapshot(context.Background(), dev) })
	assert.Equal(t, 1, dev.stream.released)
}

func TestSnapshot_AcquireErrors(t *testing.T) {
	for _, want := range []error{ErrPermissionDenied, ErrDeviceNotFound} {
		dev := &fakeDevice{acquireErr: want}
		_, err := Snapshot(context.Background(), dev)
		assert.ErrorIs(t, err, want)
		assert.Nil(t, dev.stream)
	}
}

func TestFileDevice(t *testing.T) {
	dir := t.TempDir()
	photo := filepath.Join(dir, "photo.png")
	require.NoError(t, os.WriteFile(photo, pngBytes(t), 0o644))

	frame, err := Snapshot(context.Background(), FileDevice{Path: photo})
	require.NoError(t, err)
	assert.Equal(t, "image/png", frame.MIME)

	_, err = Snapshot(context.Background(), FileDevice{Path: filepath.Join(dir, "missing.png")})
	assert.ErrorIs(t, err, ErrDeviceNotFound)

	empty := filepath.Join(dir, "empty.png")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	_, err = Snapshot(context.Background(), FileDevice{Path: empty})
	assert.ErrorIs(t, err, ErrNotReady)
}

func TestFileDevice_PermissionDenied(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("file permissions are not enforced here")
	}
	locked := filepath.Join(t.TempDir(), "locked.png")
	require.NoError(t, os.WriteFile(locked, pngBytes(t), 0o000))

	_, err := Snapshot(context.Background(), FileDevice{Path: locked})
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestFileStream_ReleaseIsIdempotent(t *testing.T) {
	photo := filepath.Join(t.TempDir(), "photo.png")
	require.NoError(t, os.WriteFile(photo, pngBytes(t), 0o644))

	stream, err := FileDevice{Path: photo}.Acquire(context.Background())
	require.NoError(t, err)
	require.NoError(t, stream.Release())
	require.NoError(t, stream.Release())

	_, err = stream.CaptureFrame(context.Background())
	assert.ErrorIs(t, err, ErrNotReady)
}

func TestMessage(t *testing.T) {
	assert.Contains(t, Message(ErrDeviceNotFound), "Webcam tidak ditemukan")
	assert.Contains(t, Message(errors.Join(errors.New("x"), ErrPermissionDenied)), "Izin kamera ditolak")
	assert.Contains(t, Message(ErrNotReady), "belum siap")
	assert.Equal(t, "", Message(nil))
	assert.Equal(t, "Tidak dapat mengakses webcam: boom", Message(errors.New("boom")))
}
