package filters

import (
	"fmt"
	"unicode"

	"github.com/landenlabs/mftfind/internal/mft"
)

// ParseAttributeMask decodes the "-A[=chars]" report-flag argument
// into a bitmask of mft.Attr* bits, per the documented chars
// "s h r d f c". It deliberately reproduces the original CLI's
// fall-through bug: 'r' (read-only) falls into 's' (system) without a
// break, so "-A=r" sets both ReadOnly and System.
func ParseAttributeMask(chars string) (uint32, error) {
	var mask uint32
	for _, c := range chars {
		switch unicode.ToLower(c) {
		case 'r':
			mask |= mft.AttrReadOnly
			fallthrough
		case 's':
			mask |= mft.AttrSystem
		case 'h':
			mask |= mft.AttrHidden
		case 'd':
			mask |= mft.AttrDirectory
		case 'f':
			mask = ^uint32(mft.AttrDirectory)
		case 'c':
			mask |= mft.AttrCompressed
		default:
			return 0, fmt.Errorf("filters: invalid attribute character %q", c)
		}
	}
	return mask, nil
}

// attributeMaskMatch tests whether a record's attribute flags,
// carried on FileName since AttributeFlags is populated from the
// chosen FILE_NAME per spec §3, intersect the configured mask.
type attributeMaskMatch struct {
	mask uint32
}

// AttributeMaskMatch constructs a matcher that succeeds when any bit
// in mask is set on the record's attribute flags.
func AttributeMaskMatch(mask uint32) Match {
	return &attributeMaskMatch{mask: mask}
}

func (m *attributeMaskMatch) Evaluate(si *mft.StandardInformation, name *mft.FileName, ctx *MatchContext) bool {
	var flags uint32
	if name != nil {
		flags = name.FlagsRaw
	} else if si != nil {
		flags = si.FlagsRaw
	}
	return flags&m.mask != 0
}

func (m *attributeMaskMatch) Negate() Match { return negated{inner: m} }
