package filters

import "github.com/landenlabs/mftfind/internal/mft"

// Pipeline is the two-stage filter a scan session applies to every
// record, per spec §4.9: ReadFilter runs during iteration, before
// directory resolution; PostFilter runs after, when DirectoryMatch
// becomes evaluable. Either stage may be nil, meaning "accept all".
type Pipeline struct {
	ReadFilter  Match
	PostFilter  Match
	DeletedOnly bool
}

// AcceptRead reports whether entry passes the read-stage filter and
// the deleted-only constraint. StreamCount is pulled from the entry
// itself for StreamCountMatch.
func (p *Pipeline) AcceptRead(entry *mft.FileEntry) bool {
	if p.DeletedOnly && !entry.Deleted {
		return false
	}
	if p.ReadFilter == nil {
		return true
	}
	si := &mft.StandardInformation{
		Created:     mft.TimeToFileTime(entry.Created),
		Modified:    mft.TimeToFileTime(entry.Modified),
		MFTModified: mft.TimeToFileTime(entry.MFTModified),
		Accessed:    mft.TimeToFileTime(entry.Accessed),
		FlagsRaw:    entry.AttributeFlags,
	}
	name := &mft.FileName{
		ParentIndex:    entry.ParentIndex,
		ParentSequence: entry.ParentSequence,
		AllocatedSize:  uint64(entry.DiskSize),
		RealSize:       uint64(entry.FileSize),
		FlagsRaw:       entry.AttributeFlags,
		Name:           entry.Name,
	}
	ctx := &MatchContext{StreamCount: entry.StreamCount}
	return p.ReadFilter.Evaluate(si, name, ctx)
}

// AcceptDirectory reports whether entry passes the post-filter stage,
// now that entry.Directory has been resolved.
func (p *Pipeline) AcceptDirectory(entry *mft.FileEntry) bool {
	if p.PostFilter == nil {
		return true
	}
	ctx := &MatchContext{StreamCount: entry.StreamCount, Directory: entry.Directory}
	return p.PostFilter.Evaluate(nil, nil, ctx)
}
