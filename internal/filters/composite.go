package filters

import "github.com/landenlabs/mftfind/internal/mft"

// all is the conjunction composite: succeeds iff every child succeeds.
type all struct {
	children []Match
}

// All constructs a conjunction of children. An empty slice is
// invalid — a filter with nothing to evaluate can never usefully
// match — so All returns (nil, ErrFilterInvalid) in that case.
func All(children []Match) (Match, error) {
	if len(children) == 0 {
		return nil, ErrFilterInvalid
	}
	if len(children) == 1 {
		return children[0], nil
	}
	return &all{children: children}, nil
}

func (a *all) Evaluate(si *mft.StandardInformation, name *mft.FileName, ctx *MatchContext) bool {
	for _, c := range a.children {
		if !c.Evaluate(si, name, ctx) {
			return false
		}
	}
	return true
}

func (a *all) Negate() Match { return negated{inner: a} }

// any is the disjunction composite: succeeds iff any child succeeds.
type any struct {
	children []Match
}

// Any constructs a disjunction of children. An empty slice is
// invalid for the same reason as All.
func Any(children []Match) (Match, error) {
	if len(children) == 0 {
		return nil, ErrFilterInvalid
	}
	if len(children) == 1 {
		return children[0], nil
	}
	return &any{children: children}, nil
}

func (a *any) Evaluate(si *mft.StandardInformation, name *mft.FileName, ctx *MatchContext) bool {
	for _, c := range a.children {
		if c.Evaluate(si, name, ctx) {
			return true
		}
	}
	return false
}

func (a *any) Negate() Match { return negated{inner: a} }

// Single wraps one predicate. It exists so callers building a
// pipeline incrementally have an explicit single-child composite to
// start from; All/Any already collapse a one-element slice to the
// bare child, so Single(m) and m behave identically when evaluated.
func Single(m Match) Match { return m }
