// Package filters implements the read_filter / post_filter pipeline
// applied to each decoded MFT record: name glob, modified-time, size,
// stream-count, attribute-mask and directory-pattern matchers,
// composed with All/Any/Single per spec §4.9.
package filters

import (
	"errors"

	"github.com/landenlabs/mftfind/internal/mft"
)

// ErrFilterInvalid is returned when an empty All or Any composite is
// constructed: a filter with no children can never be evaluated.
var ErrFilterInvalid = errors.New("filters: empty All/Any composite")

// MatchContext carries the optional extra state a matcher may need
// beyond the record's StandardInformation and primary FileName:
// the stream count for StreamCountMatch, and the resolved directory
// for DirectoryMatch.
type MatchContext struct {
	StreamCount int
	Directory   string
}

// Match is a predicate over one record. Negate returns a predicate
// with flipped polarity; applying it twice returns the original
// matcher rather than a doubly-wrapped one, satisfying Not(Not(f)) == f.
type Match interface {
	Evaluate(si *mft.StandardInformation, name *mft.FileName, ctx *MatchContext) bool
	Negate() Match
}

// Not wraps m so its result is inverted. Not(Not(m)) returns m itself.
func Not(m Match) Match {
	return m.Negate()
}

// negated wraps a Match to invert its result. It is the shared Negate
// implementation for every concrete matcher below: calling Negate on
// a negated value unwraps back to the original.
type negated struct {
	inner Match
}

func (n negated) Evaluate(si *mft.StandardInformation, name *mft.FileName, ctx *MatchContext) bool {
	return !n.inner.Evaluate(si, name, ctx)
}

func (n negated) Negate() Match { return n.inner }
