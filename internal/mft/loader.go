package mft

import (
	"errors"
	"io"

	"github.com/landenlabs/mftfind/internal/runlist"
)

const mftFileName = "$MFT"

var (
	// ErrNoMFT is returned when record 0's primary name is not $MFT.
	ErrNoMFT = errors.New("mft: record 0 is not named $MFT")

	ErrDeviceRead = errors.New("mft: device read failed")
)

// RetentionFilter decides whether a record, once loaded, should be
// kept in memory. MftLoader uses it to prune non-matching records
// while loading. cmd/mftfind loads with a nil filter in both report
// and query mode, so QueryReporter always sees the full, unpruned
// table.
type RetentionFilter interface {
	AcceptForRetention(si *StandardInformation, name *FileName, recordIndex uint32) bool
}

// Reader is the minimal interface MftLoader needs from the raw
// device: a positioned, sector-aligned read.
type Reader interface {
	io.ReaderAt
}

// MFT is the fully loaded, in-memory Master File Table: one
// contiguous buffer plus the record size needed to index into it, and
// the extent map describing where each byte of that buffer physically
// lives on disk (needed by DirectoryResolver for pruned records).
type MFT struct {
	buf         []byte
	recordSize  int64
	extents     []runlist.Extent
	clusterSize int64
}

func (m *MFT) RecordSize() int64 { return m.recordSize }

// RecordCount is how many record-sized slots the loaded buffer holds.
func (m *MFT) RecordCount() int64 { return int64(len(m.buf)) / m.recordSize }

// Load bootstraps the MFT by reading record 0 from disk, decoding its
// $DATA run list, and reading every extent into one contiguous
// buffer. filter, if non-nil, is consulted per record: records it
// rejects are zeroed in place (kept as placeholders so index->offset
// arithmetic still works) rather than fully decoded and retained.
func Load(device Reader, mftStartByteOffset, recordSize, clusterSize int64, filter RetentionFilter) (*MFT, error) {
	raw := make([]byte, recordSize)
	n, err := device.ReadAt(raw, mftStartByteOffset)
	if err != nil && err != io.EOF {
		return nil, ErrDeviceRead
	}
	raw = raw[:n]

	header, err := NewRecordHeader(raw)
	if err != nil {
		return nil, err
	}
	fixedUp, err := ApplyFixup(raw, header)
	if err != nil {
		return nil, err
	}

	attrs := EnumerateAttributes(fixedUp, header.FirstAttributeOffset())

	var names []*FileName
	var extents []runlist.Extent
	for _, attr := range attrs {
		switch attr.Type() {
		case AttrFileName:
			if !attr.NonResident() {
				if fn := ParseFileName(attr.ResidentValue()); fn != nil {
					names = append(names, fn)
				}
			}
		case AttrData:
			if attr.Name() == "" && attr.NonResident() {
				if runs, err := attr.RunList(); err == nil {
					extents = runs
				}
			}
		}
	}

	best := chooseBestName(names)
	if best == nil || best.Name != mftFileName {
		return nil, ErrNoMFT
	}

	totalClusters := int64(0)
	for _, e := range extents {
		totalClusters += e.Clusters
	}

	buf := make([]byte, totalClusters*clusterSize)
	pos := int64(0)
	for _, e := range extents {
		length := e.Clusters * clusterSize
		if e.LCN == runlist.SparseLCN {
			pos += length // already zeroed
			continue
		}

		n, err := device.ReadAt(buf[pos:pos+length], e.LCN*clusterSize)
		if err != nil && err != io.EOF {
			return nil, ErrDeviceRead
		}
		pos += int64(n)
		if int64(n) < length {
			pos = pos - int64(n) + length // keep offset arithmetic aligned even on short reads
		}
	}

	m := &MFT{buf: buf, recordSize: recordSize, extents: extents, clusterSize: clusterSize}

	if filter != nil {
		m.prune(filter)
	}

	return m, nil
}

// prune zeroes the bytes of any record the filter rejects, leaving a
// same-sized placeholder so RecordIterator's index arithmetic is
// unaffected.
func (m *MFT) prune(filter RetentionFilter) {
	count := m.RecordCount()
	for i := int64(0); i < count; i++ {
		start := i * m.recordSize
		raw := m.buf[start : start+m.recordSize]

		header, err := NewRecordHeader(raw)
		if err != nil || !header.IsMagicValid() {
			continue
		}

		scratch := make([]byte, len(raw))
		copy(scratch, raw)
		fixedUp, err := ApplyFixup(scratch, header)
		if err != nil {
			continue
		}

		var si *StandardInformation
		var name *FileName
		for _, attr := range EnumerateAttributes(fixedUp, header.FirstAttributeOffset()) {
			switch attr.Type() {
			case AttrStandardInformation:
				if !attr.NonResident() && si == nil {
					si = ParseStandardInformation(attr.ResidentValue())
				}
			case AttrFileName:
				if !attr.NonResident() && name == nil {
					name = ParseFileName(attr.ResidentValue())
				}
			}
		}

		if !filter.AcceptForRetention(si, name, uint32(i)) {
			for j := range raw {
				raw[j] = 0
			}
		}
	}
}

// isZeroed reports whether a record slot was pruned by Load.
func (m *MFT) isZeroed(raw []byte) bool {
	for _, b := range raw {
		if b != 0 {
			return false
		}
	}
	return true
}

// RawRecord returns the record-sized slice at index i from the
// in-memory buffer, or ok=false if i is out of range.
func (m *MFT) RawRecord(i int64) (raw []byte, ok bool) {
	start := i * m.recordSize
	end := start + m.recordSize
	if start < 0 || end > int64(len(m.buf)) {
		return nil, false
	}
	return m.buf[start:end], true
}

// Extents returns the $MFT's own on-disk extents, used by
// DirectoryResolver to translate a pruned or out-of-range index into
// a raw disk offset.
func (m *MFT) Extents() []runlist.Extent { return m.extents }

// ClusterSize is the volume's bytes-per-cluster, needed to translate
// extents into byte offsets.
func (m *MFT) ClusterSize() int64 { return m.clusterSize }

// diskOffsetForRecord translates record index i's logical position
// within the buffer Load assembled into an absolute device byte
// offset, by walking the same extent list Load read it from. ok is
// false if i falls in a sparse run or past every extent.
func (m *MFT) diskOffsetForRecord(i int64) (offset int64, ok bool) {
	target := i * m.recordSize
	pos := int64(0)
	for _, e := range m.Extents() {
		length := e.Clusters * m.ClusterSize()
		if target < pos+length {
			if e.LCN == runlist.SparseLCN {
				return 0, false
			}
			return e.LCN*m.ClusterSize() + (target - pos), true
		}
		pos += length
	}
	return 0, false
}

// readRecordFromDisk reads record i directly off device via
// diskOffsetForRecord, for a record that isn't usable from the
// in-memory buffer (out of range, or zeroed by a retention filter).
// Used by DirectoryResolver's raw-read fallback.
func (m *MFT) readRecordFromDisk(device Reader, i int64) ([]byte, error) {
	offset, ok := m.diskOffsetForRecord(i)
	if !ok {
		return nil, ErrBadExtent
	}

	raw := make([]byte, m.recordSize)
	n, err := device.ReadAt(raw, offset)
	if err != nil && err != io.EOF {
		return nil, ErrDeviceRead
	}
	return raw[:n], nil
}
