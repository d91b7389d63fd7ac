// Package device provides sector-aligned positioned reads over a raw
// block device handle. It is the lowest layer of the MFT reader: every
// other component in this module reads bytes through a Device rather
// than touching an *os.File directly.
package device

import (
	"errors"
	"fmt"
	"io"
)

// DeviceError wraps a failure to open or read the underlying handle,
// carrying the OS-level error that caused it.
type DeviceError struct {
	Op  string
	Err error
}

func (e *DeviceError) Error() string {
	return fmt.Sprintf("device: %s: %v", e.Op, e.Err)
}

func (e *DeviceError) Unwrap() error {
	return e.Err
}

var ErrUnaligned = errors.New("device: offset/length not a multiple of sector size")

// Device is a read-only, sector-aligned view over a raw volume or
// physical-drive handle. All reads are blocking positioned reads; there
// is no internal buffering beyond what the OS provides.
type Device struct {
	handle     io.ReaderAt
	closer     io.Closer
	sectorSize int64
}

// New wraps an already-open handle. sectorSize must be a positive
// power of two; 512 is the safe default for volumes that have not
// yet had their boot sector decoded.
func New(handle io.ReaderAt, sectorSize int64) *Device {
	if sectorSize <= 0 {
		sectorSize = 512
	}
	d := &Device{handle: handle, sectorSize: sectorSize}
	if c, ok := handle.(io.Closer); ok {
		d.closer = c
	}
	return d
}

// SetSectorSize adjusts the alignment requirement once the boot
// sector has revealed the volume's real bytes-per-sector.
func (d *Device) SetSectorSize(sectorSize int64) {
	if sectorSize > 0 {
		d.sectorSize = sectorSize
	}
}

// ReadAt reads len(buf) bytes starting at offset. Both offset and
// len(buf) must be multiples of the sector size; RawBlockDevice never
// performs partial-sector reads.
func (d *Device) ReadAt(buf []byte, offset int64) (int, error) {
	if offset%d.sectorSize != 0 || int64(len(buf))%d.sectorSize != 0 {
		return 0, ErrUnaligned
	}

	n, err := d.handle.ReadAt(buf, offset)
	if err != nil && err != io.EOF {
		return n, &DeviceError{Op: "ReadAt", Err: err}
	}
	return n, err
}

// ReadSectors reads count sectors starting at sector start.
func (d *Device) ReadSectors(start, count int64) ([]byte, error) {
	buf := make([]byte, count*d.sectorSize)
	n, err := d.ReadAt(buf, start*d.sectorSize)
	if err != nil && err != io.EOF {
		return nil, err
	}
	return buf[:n], nil
}

// SectorSize returns the device's current alignment unit.
func (d *Device) SectorSize() int64 {
	return d.sectorSize
}

// Close releases the underlying handle, if it supports closing. Safe
// to call multiple times.
func (d *Device) Close() error {
	if d.closer == nil {
		return nil
	}
	closer := d.closer
	d.closer = nil
	return closer.Close()
}
