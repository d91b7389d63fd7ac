//go:build windows

package driveinfo

import (
	"fmt"

	"golang.org/x/sys/windows"
)

// resolvePlatform opens the volume handle for letter, then issues
// IOCTL_VOLUME_GET_VOLUME_DISK_EXTENTS (via the DeviceIoControl
// wrapper below) to find which physical drive backs it and the
// partition's starting byte offset, mirroring GetDriveAndPartitionNumber
// and GetNtfsDiskNumber in NtfsUtil.cpp.
func resolvePlatform(letter byte) (*Info, error) {
	path := volumePath(letter)

	handle, err := windows.CreateFile(
		windows.StringToUTF16Ptr(path),
		windows.GENERIC_READ,
		windows.FILE_SHARE_READ|windows.FILE_SHARE_WRITE,
		nil,
		windows.OPEN_EXISTING,
		0,
		0,
	)
	if err != nil {
		return nil, fmt.Errorf("driveinfo: open %s: %w", path, err)
	}
	defer windows.CloseHandle(handle)

	diskNumber, startOffset, err := volumeDiskExtents(handle)
	if err != nil {
		return nil, err
	}

	return &Info{
		DevicePath:          fmt.Sprintf(`\\.\PhysicalDrive%d`, diskNumber),
		PartitionByteOffset: startOffset,
	}, nil
}

const ioctlVolumeGetVolumeDiskExtents = 0x560000

// diskExtent mirrors the fixed-size DISK_EXTENT structure returned by
// IOCTL_VOLUME_GET_VOLUME_DISK_EXTENTS; only the first extent is used
// since a scan targets a single, unspanned NTFS volume.
type diskExtent struct {
	DiskNumber     uint32
	_              uint32 // alignment padding
	StartingOffset int64
	ExtentLength   int64
}

func volumeDiskExtents(handle windows.Handle) (diskNumber uint32, startOffset int64, err error) {
	var numExtents uint32
	buf := make([]byte, 8+32) // header + room for one 24-byte DISK_EXTENT
	var returned uint32

	err = windows.DeviceIoControl(
		handle, ioctlVolumeGetVolumeDiskExtents, nil, 0,
		&buf[0], uint32(len(buf)), &returned, nil,
	)
	if err != nil {
		return 0, 0, fmt.Errorf("driveinfo: DeviceIoControl: %w", err)
	}

	numExtents = byteOrderUint32(buf[0:4])
	if numExtents == 0 {
		return 0, 0, fmt.Errorf("driveinfo: volume has no disk extents")
	}

	extent := decodeDiskExtent(buf[8:])
	return extent.DiskNumber, extent.StartingOffset, nil
}

func byteOrderUint32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

func decodeDiskExtent(b []byte) diskExtent {
	return diskExtent{
		DiskNumber:     byteOrderUint32(b[0:4]),
		StartingOffset: int64(byteOrderUint32(b[8:12])) | int64(byteOrderUint32(b[12:16]))<<32,
		ExtentLength:   int64(byteOrderUint32(b[16:20])) | int64(byteOrderUint32(b[20:24]))<<32,
	}
}
