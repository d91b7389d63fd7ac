// Package slowwalk implements the "-z" collaborator: a plain
// filepath.WalkDir traversal through the OS's own directory APIs,
// applying the same filters.Pipeline the MFT reader uses so filter
// flags behave identically in either mode. Grounded on the original
// CLI's DirSlowFind (dosslowfind.cpp), reworked from a recursive
// FindFirstFile/FindNextFile loop into an idiomatic WalkDir callback.
package slowwalk

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/landenlabs/mftfind/internal/filters"
	"github.com/landenlabs/mftfind/internal/mft"
)

// Visitor receives one matched entry per file the walk accepts.
type Visitor func(entry *mft.FileEntry, fullPath string) error

// Walk traverses root, converting each regular directory entry into a
// FileEntry populated well enough for filters.Pipeline to evaluate
// (name, size, attribute flags, directory, stream count — always 1,
// since the OS API does not expose alternate data streams), and
// invoking visit for everything the pipeline accepts.
func Walk(root string, pipeline *filters.Pipeline, visit Visitor) error {
	index := uint32(0)

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}

		entry := fileEntryFromOSInfo(index, path, root, info, d.IsDir())
		entry.DirectoryResolved = true
		index++

		if pipeline == nil {
			return visit(entry, path)
		}
		if !pipeline.AcceptRead(entry) || !pipeline.AcceptDirectory(entry) {
			return nil
		}

		return visit(entry, path)
	})
}

func fileEntryFromOSInfo(index uint32, path, root string, info os.FileInfo, isDir bool) *mft.FileEntry {
	dir, name := filepath.Split(path)
	relDir, err := filepath.Rel(root, filepath.Clean(dir))
	if err != nil || relDir == "." {
		relDir = ""
	}

	entry := &mft.FileEntry{
		RecordIndex: index,
		Name:        name,
		Directory:   relDir,
		FileSize:    info.Size(),
		DiskSize:    info.Size(),
		Modified:    info.ModTime(),
		InUse:       true,
		IsDirectory: isDir,
		StreamCount: 1,
		NameCount:   1,
	}

	entry.AttributeFlags = osAttributeFlags(info, isDir)
	return entry
}
