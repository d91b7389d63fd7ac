//go:build windows

package slowwalk

import (
	"os"
	"syscall"

	"golang.org/x/sys/windows"

	"github.com/landenlabs/mftfind/internal/mft"
)

// osAttributeFlags reads the real Win32 file attribute bits off the
// os.FileInfo's underlying syscall.Win32FileAttributeData, so -A
// filtering behaves identically under -z and the MFT reader.
func osAttributeFlags(info os.FileInfo, isDir bool) uint32 {
	sys, ok := info.Sys().(*syscall.Win32FileAttributeData)
	if !ok {
		return 0
	}

	var flags uint32
	if sys.FileAttributes&windows.FILE_ATTRIBUTE_READONLY != 0 {
		flags |= mft.AttrReadOnly
	}
	if sys.FileAttributes&windows.FILE_ATTRIBUTE_HIDDEN != 0 {
		flags |= mft.AttrHidden
	}
	if sys.FileAttributes&windows.FILE_ATTRIBUTE_SYSTEM != 0 {
		flags |= mft.AttrSystem
	}
	if sys.FileAttributes&windows.FILE_ATTRIBUTE_ARCHIVE != 0 {
		flags |= mft.AttrArchive
	}
	if sys.FileAttributes&windows.FILE_ATTRIBUTE_COMPRESSED != 0 {
		flags |= mft.AttrCompressed
	}
	if isDir {
		flags |= mft.AttrDirectory
	}
	return flags
}
