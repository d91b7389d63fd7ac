package filters

import "github.com/landenlabs/mftfind/internal/mft"

// streamCountMatch compares the record's decoded stream count,
// supplied via MatchContext, against a reference count.
type streamCountMatch struct {
	reference int
	cmp       Comparison
}

// StreamCountMatch constructs a matcher comparing the record's
// data-stream count against n.
func StreamCountMatch(n int, cmp Comparison) Match {
	return &streamCountMatch{reference: n, cmp: cmp}
}

func (m *streamCountMatch) Evaluate(si *mft.StandardInformation, name *mft.FileName, ctx *MatchContext) bool {
	if ctx == nil {
		return false
	}
	switch m.cmp {
	case Greater:
		return ctx.StreamCount > m.reference
	case Less:
		return ctx.StreamCount < m.reference
	default:
		return ctx.StreamCount == m.reference
	}
}

func (m *streamCountMatch) Negate() Match { return negated{inner: m} }
