package filters

import "github.com/landenlabs/mftfind/internal/mft"

// directoryMatch globs FileEntry.Directory, supplied via
// MatchContext once DirectoryResolver has run. It belongs to the
// post_filter stage per spec §4.9: it cannot be evaluated during
// record iteration because the directory isn't known yet.
type directoryMatch struct {
	pattern string
}

// DirectoryMatch constructs a post-filter matcher against the
// resolved directory path. Matching is case-insensitive, like
// NameMatch's default.
func DirectoryMatch(pattern string) Match {
	return &directoryMatch{pattern: pattern}
}

func (m *directoryMatch) Evaluate(si *mft.StandardInformation, name *mft.FileName, ctx *MatchContext) bool {
	if ctx == nil {
		return false
	}
	return globMatch(m.pattern, ctx.Directory, false)
}

func (m *directoryMatch) Negate() Match { return negated{inner: m} }
