// Package capture integrates a still-image capture device used to fill the
// photo field of an application.
package capture

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Device hands out streams. Acquire fails with ErrPermissionDenied or
// ErrDeviceNotFound.
type Device interface {
	Acquire(ctx context.Context) (Stream, error)
}

// Stream is an acquired device. Release must be called exactly once.
type Stream interface {
	CaptureFrame(ctx context.Context) (Frame, error)
	Release() error
}

// Frame is a captured image.
type Frame struct {
	Data []byte
	MIME string
}

// NewFrame sniffs data and rejects anything that is not an image.
func NewFrame(data []byte) (Frame, error) {
	if len(data) == 0 {
		return Frame{}, fmt.Errorf("%w: empty frame", ErrNotReady)
	}
	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return Frame{}, fmt.Errorf("%w: frame is %s, not an image", ErrNotReady, mt.String())
	}
	return Frame{Data: data, MIME: baseType(mt.String())}, nil
}

// DataURL renders the frame as the opaque payload stored in the photo field.
func (f Frame) DataURL() string {
	return "data:" + f.MIME + ";base64," + base64.StdEncoding.EncodeToString(f.Data)
}

// ParseDataURL decodes a base64 image data URL and checks its content.
func ParseDataURL(s string) (Frame, error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return Frame{}, fmt.Errorf("not a data URL")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok || !strings.HasSuffix(meta, ";base64") {
		return Frame{}, fmt.Errorf("data URL is not base64 encoded")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return Frame{}, fmt.Errorf("invalid base64 payload: %w", err)
	}
	return NewFrame(data)
}

// Snapshot acquires dev, captures one frame and releases the stream on every
// exit path, including cancellation and panics in the device.
func Snapshot(ctx context.Context, dev Device) (frame Frame, err error) {
	stream, err := dev.Acquire(ctx)
	if err != nil {
		return Frame{}, err
	}
	defer func() {
		if rerr := stream.Release(); rerr != nil {
			err = errors.Join(err, fmt.Errorf("release capture stream: %w", rerr))
		}
	}()

	if err := ctx.Err(); err != nil {
		return Frame{}, err
	}
	return stream.CaptureFrame(ctx)
}

func baseType(mime string) string {
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		return mime[:i]
	}
	return mime
}
