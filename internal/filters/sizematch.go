package filters

import "github.com/landenlabs/mftfind/internal/mft"

// sizeMatch compares FILE_NAME's disk-size against a reference size,
// per spec §4.9.
type sizeMatch struct {
	reference int64
	cmp       Comparison
}

// SizeMatch constructs a matcher comparing the record's disk-size
// against referenceBytes.
func SizeMatch(referenceBytes int64, cmp Comparison) Match {
	return &sizeMatch{reference: referenceBytes, cmp: cmp}
}

func (m *sizeMatch) Evaluate(si *mft.StandardInformation, name *mft.FileName, ctx *MatchContext) bool {
	if name == nil {
		return false
	}
	diskSize := int64(name.AllocatedSize)
	switch m.cmp {
	case Greater:
		return diskSize > m.reference
	case Less:
		return diskSize < m.reference
	default:
		return diskSize == m.reference
	}
}

func (m *sizeMatch) Negate() Match { return negated{inner: m} }

// SizeMatchFromSigned ports the original CLI's signed "-s BYTES"
// convention: a positive value means "greater than", a negative value
// means "less than", per NtfsUtil's IsSizeGreater/IsSizeLess.
func SizeMatchFromSigned(signedBytes int64) Match {
	if signedBytes < 0 {
		return SizeMatch(-signedBytes, Less)
	}
	return SizeMatch(signedBytes, Greater)
}
