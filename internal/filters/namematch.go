package filters

import (
	"strings"
	"unicode"

	"github.com/landenlabs/mftfind/internal/mft"
)

// nameMatch glob-compares a FILE_NAME's name against pattern,
// supporting '*' (zero or more of any char) and '?' (exactly one
// char). ASCII letters fold case unless caseSensitive is set;
// non-ASCII codepoints always compare exact, per spec §4.9.
type nameMatch struct {
	pattern       string
	caseSensitive bool
}

// NameMatch constructs a case-insensitive-by-default name glob.
func NameMatch(pattern string) Match {
	return &nameMatch{pattern: pattern}
}

// IsName constructs the case-sensitive variant. The original CLI's
// documentation calls this predicate "currently not working"; this is
// a clean-room implementation of the documented contract rather than
// a port of that broken behavior.
func IsName(pattern string) Match {
	return &nameMatch{pattern: pattern, caseSensitive: true}
}

func (m *nameMatch) Evaluate(si *mft.StandardInformation, name *mft.FileName, ctx *MatchContext) bool {
	if name == nil {
		return false
	}
	return globMatch(m.pattern, name.Name, m.caseSensitive)
}

func (m *nameMatch) Negate() Match { return negated{inner: m} }

// globMatch implements '*'/'?' glob matching over runes, so
// multi-byte characters are compared as single units rather than
// raw bytes.
func globMatch(pattern, value string, caseSensitive bool) bool {
	if !caseSensitive {
		pattern = foldASCII(pattern)
		value = foldASCII(value)
	}
	return globMatchRunes([]rune(pattern), []rune(value))
}

func globMatchRunes(pattern, value []rune) bool {
	if len(pattern) == 0 {
		return len(value) == 0
	}

	switch pattern[0] {
	case '*':
		// Zero-or-more: try consuming 0..len(value) characters here.
		for i := 0; i <= len(value); i++ {
			if globMatchRunes(pattern[1:], value[i:]) {
				return true
			}
		}
		return false
	case '?':
		if len(value) == 0 {
			return false
		}
		return globMatchRunes(pattern[1:], value[1:])
	default:
		if len(value) == 0 || pattern[0] != value[0] {
			return false
		}
		return globMatchRunes(pattern[1:], value[1:])
	}
}

// foldASCII lowercases only the ASCII letter range, leaving non-ASCII
// codepoints untouched so they still compare exact.
func foldASCII(s string) string {
	return strings.Map(func(r rune) rune {
		if r <= unicode.MaxASCII {
			return unicode.ToLower(r)
		}
		return r
	}, s)
}
