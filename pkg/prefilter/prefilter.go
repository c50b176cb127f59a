package prefilter

import (
	"github.com/cloudflare/ahocorasick"
)

// Prefilter uses Aho-Corasick for efficient keyword matching.
//
// A switch whose alternatives are all literals cannot match content that
// contains none of them, so the prefilter lets a switch reject such content
// without running the combined regexp. All methods are safe for concurrent use.
type Prefilter struct {
	matcher  *ahocorasick.Matcher
	keywords []string // keyword at each index
}

// New creates a prefilter from keywords. Duplicate keywords are collapsed.
func New(keywords []string) *Prefilter {
	pf := &Prefilter{}

	seen := make(map[string]bool)
	for _, keyword := range keywords {
		if !seen[keyword] {
			seen[keyword] = true
			pf.keywords = append(pf.keywords, keyword)
		}
	}

	// Build Aho-Corasick matcher if we have keywords
	if len(pf.keywords) > 0 {
		pf.matcher = ahocorasick.NewStringMatcher(pf.keywords)
	}

	return pf
}

// Len returns the number of distinct keywords.
func (pf *Prefilter) Len() int {
	return len(pf.keywords)
}

// MayMatch reports whether any keyword occurs in content.
// A prefilter without keywords cannot rule anything out and always returns true.
func (pf *Prefilter) MayMatch(content []byte) bool {
	if pf.matcher == nil {
		return true
	}
	return pf.matcher.Contains(content)
}

// Hits returns the distinct keywords found in content.
func (pf *Prefilter) Hits(content []byte) []string {
	if pf.matcher == nil {
		return nil
	}

	hits := pf.matcher.MatchThreadSafe(content)
	result := make([]string, 0, len(hits))
	for _, hit := range hits {
		result = append(result, pf.keywords[hit])
	}
	return result
}
