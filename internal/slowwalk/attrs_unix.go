//go:build !windows

package slowwalk

import (
	"os"
	"strings"

	"github.com/landenlabs/mftfind/internal/mft"
)

// osAttributeFlags approximates the Win32 attribute bits on
// platforms with no native equivalent: read-only from the
// owner-write permission bit, hidden from a leading dot, and
// directory from the FileInfo itself. System and compressed have no
// POSIX analogue and are left unset.
func osAttributeFlags(info os.FileInfo, isDir bool) uint32 {
	var flags uint32
	if info.Mode().Perm()&0200 == 0 {
		flags |= mft.AttrReadOnly
	}
	if strings.HasPrefix(info.Name(), ".") {
		flags |= mft.AttrHidden
	}
	if isDir {
		flags |= mft.AttrDirectory
	}
	return flags
}
