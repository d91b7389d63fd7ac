//go:build windows

package device

import (
	"fmt"

	"golang.org/x/sys/windows"
)

// Open opens a volume or physical-drive path (e.g. `\\.\C:` or
// `\\.\PhysicalDrive0`) for read-only, shared access, and wraps the
// resulting handle in a Device aligned to 512-byte sectors. The
// caller should call SetSectorSize once the boot sector is decoded.
func Open(path string) (*Device, error) {
	pathp, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return nil, &DeviceError{Op: "Open", Err: err}
	}

	handle, err := windows.CreateFile(
		pathp,
		windows.GENERIC_READ,
		windows.FILE_SHARE_READ|windows.FILE_SHARE_WRITE,
		nil,
		windows.OPEN_EXISTING,
		windows.FILE_ATTRIBUTE_NORMAL,
		0)
	if err != nil {
		return nil, &DeviceError{Op: fmt.Sprintf("CreateFile(%s)", path), Err: err}
	}

	return New(&winHandleReader{handle: handle}, 512), nil
}

// winHandleReader adapts a raw windows.Handle to io.ReaderAt using
// positioned overlapped reads, and supports Close.
type winHandleReader struct {
	handle windows.Handle
}

func (r *winHandleReader) ReadAt(buf []byte, offset int64) (int, error) {
	var overlapped windows.Overlapped
	overlapped.Offset = uint32(offset)
	overlapped.OffsetHigh = uint32(offset >> 32)

	var n uint32
	err := windows.ReadFile(r.handle, buf, &n, &overlapped)
	if err != nil {
		return int(n), err
	}
	return int(n), nil
}

func (r *winHandleReader) Close() error {
	return windows.CloseHandle(r.handle)
}
