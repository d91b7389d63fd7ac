//go:build !windows

package device

import "os"

// Open opens a raw block-device node (e.g. /dev/sda1) for read-only
// access and wraps it in a Device aligned to 512-byte sectors. The
// caller should call SetSectorSize once the boot sector is decoded.
func Open(path string) (*Device, error) {
	fd, err := os.OpenFile(path, os.O_RDONLY, 0)
	if err != nil {
		return nil, &DeviceError{Op: "Open", Err: err}
	}
	return New(fd, 512), nil
}
