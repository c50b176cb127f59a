package matcher

import (
	"github.com/dlclark/regexp2"
)

// extractGroups converts a regexp2 match into positional groups, group 0
// included. A group that captured more than once reports its last capture.
func extractGroups(match *regexp2.Match) []Group {
	matchGroups := match.Groups()
	groups := make([]Group, len(matchGroups))
	for i := range matchGroups {
		group := &matchGroups[i]
		if len(group.Captures) > 0 {
			groups[i] = Group{Text: group.String(), Matched: true}
		}
	}
	return groups
}

// dispatchIndex returns the zero-based alternative whose dispatch group
// participated in match. The lowest participating group wins. It returns -1
// if none of the first n groups participated.
func dispatchIndex(match *regexp2.Match, n int) int {
	for i := 1; i <= n; i++ {
		group := match.GroupByNumber(i)
		if group == nil {
			break
		}
		if len(group.Captures) > 0 {
			return i - 1
		}
	}
	return -1
}

// byteOffset converts a regexp2 rune index into a byte offset in s.
func byteOffset(s string, runeIndex int) int {
	if runeIndex <= 0 {
		return 0
	}
	n := 0
	for i := range s {
		if n == runeIndex {
			return i
		}
		n++
	}
	return len(s)
}
