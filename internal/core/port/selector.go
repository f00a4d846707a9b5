package port

// Selector picks which eligible creative to serve. Implementations must
// give every candidate a chance to be chosen.
type Selector interface {
	// Pick returns an index into candidates. It is only called with a
	// non-empty slice.
	Pick(candidates []CreativeCandidate) int
}
