package mft

import (
	"errors"
	"path"
)

// ErrBadExtent is returned when resolving a parent chain requires
// reading a record range that falls outside the $MFT's own extents.
var ErrBadExtent = errors.New("mft: parent record outside mft extents")

// ErrNoName is returned when a record has no resident $FILE_NAME
// attribute to resolve a path segment from.
var ErrNoName = errors.New("mft: record has no filename")

// resolverMaxDepth bounds parent-chain walks so a corrupted or
// cyclic parent reference can't loop forever.
const resolverMaxDepth = 4096

// DirectoryResolver lazily computes and memoises the full directory
// path of any record index, walking FILE_NAME.ParentIndex up to the
// volume root the way GetFullPath does, but caching every path
// segment it resolves along the way.
type DirectoryResolver struct {
	mft    *MFT
	device Reader
	cache  map[uint32]string
}

// NewDirectoryResolver wraps an already-loaded MFT. device backs the
// raw-read fallback for any parent index that isn't usable from the
// in-memory buffer (out of range, or zeroed by a retention filter):
// it's translated through the $MFT's own extent list and read
// directly off the volume. Pass nil to disable the fallback; such
// records then report ErrBadExtent instead. Record 5 (the volume
// root) resolves to "".
func NewDirectoryResolver(m *MFT, device Reader) *DirectoryResolver {
	return &DirectoryResolver{mft: m, device: device, cache: make(map[uint32]string)}
}

const rootRecordIndex = 5

// Resolve returns the full directory path of the record at index i,
// i.e. the path of the directory that CONTAINS i, not i itself, and
// whether that path was truncated by a parent-chain cycle or depth
// cap rather than genuinely terminating at the volume root.
func (r *DirectoryResolver) Resolve(i uint32) (dir string, truncated bool, err error) {
	if i == rootRecordIndex {
		return "", false, nil
	}

	_, parent, err := r.nameAndParent(i)
	if err != nil {
		return "", false, err
	}
	return r.fullPath(parent, make(map[uint32]bool), 0)
}

// fullPath returns the full path of record i INCLUDING i's own name,
// memoising every ancestor it resolves along the way. seen guards
// against a parent cycle; once either bound is hit the walk stops and
// returns the path accumulated by the ancestors already resolved,
// with truncated set so the caller can mark the entry rather than
// mistake it for a genuine root-level path.
func (r *DirectoryResolver) fullPath(i uint32, seen map[uint32]bool, depth int) (full string, truncated bool, err error) {
	if i == rootRecordIndex {
		return "", false, nil
	}
	if p, ok := r.cache[i]; ok {
		return p, false, nil
	}
	if seen[i] || depth >= resolverMaxDepth {
		return "", true, nil
	}
	seen[i] = true

	name, parent, err := r.nameAndParent(i)
	if err != nil {
		return "", false, err
	}

	parentPath, truncated, err := r.fullPath(parent, seen, depth+1)
	if err != nil {
		return "", false, err
	}

	full = path.Join(parentPath, name)
	if !truncated {
		r.cache[i] = full
	}
	return full, truncated, nil
}

// nameAndParent decodes just enough of record i to get its primary
// name and parent index, reading through the in-memory MFT buffer
// when i falls within it and wasn't zeroed by a retention filter,
// otherwise falling back to a raw read through the $MFT's own disk
// extents.
func (r *DirectoryResolver) nameAndParent(i uint32) (name string, parent uint32, err error) {
	if raw, ok := r.mft.RawRecord(int64(i)); ok && !r.mft.isZeroed(raw) {
		return decodeNameAndParent(raw)
	}

	if r.device == nil {
		return "", 0, ErrBadExtent
	}

	raw, err := r.mft.readRecordFromDisk(r.device, int64(i))
	if err != nil {
		return "", 0, err
	}
	return decodeNameAndParent(raw)
}

// decodeNameAndParent applies fix-up and walks a single record
// buffer's attributes to recover its primary $FILE_NAME's name and
// parent index.
func decodeNameAndParent(raw []byte) (name string, parent uint32, err error) {
	header, err := NewRecordHeader(raw)
	if err != nil || !header.IsMagicValid() {
		return "", 0, ErrBadRecord
	}

	scratch := make([]byte, len(raw))
	copy(scratch, raw)
	fixedUp, err := ApplyFixup(scratch, header)
	if err != nil {
		return "", 0, err
	}

	var names []*FileName
	for _, attr := range EnumerateAttributes(fixedUp, header.FirstAttributeOffset()) {
		if attr.Type() == AttrFileName && !attr.NonResident() {
			if fn := ParseFileName(attr.ResidentValue()); fn != nil {
				names = append(names, fn)
			}
		}
	}

	best := chooseBestName(names)
	if best == nil {
		return "", 0, ErrNoName
	}
	return best.Name, uint32(best.ParentIndex), nil
}
