package capture

import "errors"

var (
	// ErrPermissionDenied means the host refused access to the device.
	ErrPermissionDenied = errors.New("capture device permission denied")
	// ErrDeviceNotFound means no capture device is present.
	ErrDeviceNotFound = errors.New("capture device not found")
	// ErrNotReady means the device produced no usable frame yet.
	ErrNotReady = errors.New("capture device not ready")
)

// Message returns the user-facing text for a capture failure. Every failure
// is recoverable by acquiring again.
func Message(err error) string {
	switch {
	case errors.Is(err, ErrPermissionDenied):
		return "Izin kamera ditolak. Izinkan akses kamera lalu coba lagi."
	case errors.Is(err, ErrDeviceNotFound):
		return "Webcam tidak ditemukan. Pastikan perangkat memiliki kamera."
	case errors.Is(err, ErrNotReady):
		return "Video belum siap. Tunggu beberapa detik lagi."
	case err == nil:
		return ""
	}
	return "Tidak dapat mengakses webcam: " + err.Error()
}
