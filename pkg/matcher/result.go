package matcher

// Group is one slot of a match. Groups that did not participate in the match
// have Matched set to false and an empty Text.
type Group struct {
	Text    string
	Matched bool
}

// Result is a successful switch match.
type Result[V any] struct {
	// Groups[0] is the whole match; the rest are the capture groups of the
	// sub-pattern that fired, numbered as that sub-pattern numbers them.
	// Literal and group-less alternatives report the whole match twice.
	Groups []Group

	// Index is the byte offset of the match in Input. Literal and
	// group-less alternatives always report 0.
	Index int

	// Offset is the byte offset of the whole match in Input, for every kind
	// of alternative.
	Offset int

	// Input is the string that was matched.
	Input string

	// Value is the tagged value of the alternative; HasValue is false for
	// untagged alternatives.
	Value    V
	HasValue bool

	// Alternative is the zero-based position of the alternative in the
	// entries the switch was built from.
	Alternative int
}

// Strings returns the text of every group, with "" for groups that did not participate.
func (r *Result[V]) Strings() []string {
	out := make([]string, len(r.Groups))
	for i, g := range r.Groups {
		out[i] = g.Text
	}
	return out
}

// Group returns the text of group i and whether it participated in the match.
func (r *Result[V]) Group(i int) (string, bool) {
	if i < 0 || i >= len(r.Groups) {
		return "", false
	}
	return r.Groups[i].Text, r.Groups[i].Matched
}
