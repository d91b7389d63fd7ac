package filters

import "github.com/landenlabs/mftfind/internal/mft"

// Comparison is the relational operator a DateMatch or SizeMatch
// applies against its reference value.
type Comparison int

const (
	Greater Comparison = iota
	Equal
	Less
)

// dateMatch compares StandardInfo.modified against a reference
// filetime, per spec §4.9.
type dateMatch struct {
	reference uint64
	cmp       Comparison
}

// DateMatch constructs a matcher comparing StandardInfo.modified
// (100-ns filetime since 1601 UTC) against referenceFiletime.
func DateMatch(referenceFiletime uint64, cmp Comparison) Match {
	return &dateMatch{reference: referenceFiletime, cmp: cmp}
}

func (m *dateMatch) Evaluate(si *mft.StandardInformation, name *mft.FileName, ctx *MatchContext) bool {
	if si == nil {
		return false
	}
	switch m.cmp {
	case Greater:
		return si.Modified > m.reference
	case Less:
		return si.Modified < m.reference
	default:
		return si.Modified == m.reference
	}
}

func (m *dateMatch) Negate() Match { return negated{inner: m} }
