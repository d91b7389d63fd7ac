package mft

import (
	"time"

	"github.com/landenlabs/mftfind/internal/runlist"
)

// FileEntry is the fully decoded, reporter-facing view of one MFT
// record, per spec §3's data model.
type FileEntry struct {
	RecordIndex    uint32
	ParentIndex    uint64 // masked to 48 bits
	ParentSequence uint16
	SequenceNumber uint16

	Name        string // best namespace, chosen per §4.5
	Namespace   Namespace
	NameCount   int
	StreamCount int

	DiskSize int64
	FileSize int64

	AttributeFlags uint32

	Created     time.Time
	Modified    time.Time
	MFTModified time.Time
	Accessed    time.Time

	InUse       bool
	IsDirectory bool
	Sparse      bool
	Deleted     bool
	Corrupt     bool

	Extents []runlist.Extent

	// Types holds every attribute type found on this record, in
	// on-disk order, for QueryReporter's record-type histogram.
	Types []AttributeType

	// Directory is populated lazily by DirectoryResolver only when a
	// reporter column or a directory post-filter requires it.
	Directory         string
	DirectoryResolved bool

	// DirectoryTruncated is set when DirectoryResolver cut the parent
	// chain short (a cycle or resolverMaxDepth), so Directory is a
	// partial path rather than one genuinely rooted at the volume root.
	DirectoryTruncated bool
}

// buildFileEntry decodes one fixed-up MFT record buffer into a
// FileEntry. recordIndex is the position-derived index (offset /
// record size), which is authoritative over any self-describing
// RecordNumber field per §3.
func buildFileEntry(recordIndex uint32, buf []byte, header *RecordHeader) *FileEntry {
	entry := &FileEntry{
		RecordIndex:    recordIndex,
		SequenceNumber: header.SequenceNumber(),
		InUse:          header.InUse(),
		IsDirectory:    header.IsDirectory(),
		Deleted:        !header.InUse(),
	}

	attrs := EnumerateAttributes(buf, header.FirstAttributeOffset())

	var names []*FileName
	var si *StandardInformation

	for _, attr := range attrs {
		entry.Types = append(entry.Types, attr.Type())

		switch attr.Type() {
		case AttrStandardInformation:
			if !attr.NonResident() && si == nil {
				si = ParseStandardInformation(attr.ResidentValue())
			}

		case AttrFileName:
			entry.NameCount++
			if !attr.NonResident() {
				if fn := ParseFileName(attr.ResidentValue()); fn != nil {
					names = append(names, fn)
				}
			}

		case AttrData:
			entry.StreamCount++
			if attr.IsSparse() {
				entry.Sparse = true
			}
			if attr.Name() == "" {
				if runs, err := attr.RunList(); err == nil {
					entry.Extents = runs
				}
			}
		}
	}

	best := chooseBestName(names)
	if best != nil {
		entry.Name = best.Name
		entry.Namespace = best.Namespace
		entry.ParentIndex = best.ParentIndex
		entry.ParentSequence = best.ParentSequence
		entry.FileSize = int64(best.RealSize)
		entry.DiskSize = int64(best.AllocatedSize)
		entry.AttributeFlags = best.FlagsRaw
	}

	if si != nil {
		entry.Created = FileTimeToTime(si.Created)
		entry.Modified = FileTimeToTime(si.Modified)
		entry.MFTModified = FileTimeToTime(si.MFTModified)
		entry.Accessed = FileTimeToTime(si.Accessed)
		if entry.AttributeFlags == 0 {
			entry.AttributeFlags = si.FlagsRaw
		}
	}

	return entry
}
