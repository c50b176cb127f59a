package matcher

import (
	"time"

	"github.com/dlclark/regexp2"
)

// Options contains configuration for switch construction and matching
type Options struct {
	// RegexOptions are the regexp2 options the combined pattern is compiled with.
	// Literal alternatives are matched under these options. ExplicitCapture is
	// ignored because dispatch groups must capture.
	RegexOptions regexp2.RegexOptions

	// MatchTimeout bounds a single match attempt to prevent catastrophic backtracking.
	// Zero disables the timeout.
	// Default: 5 seconds
	MatchTimeout time.Duration

	// DisablePrefilter turns off the Aho-Corasick prefilter used by
	// switches made only of literals.
	DisablePrefilter bool
}

// DefaultOptions returns the default options for building a switch
func DefaultOptions() Options {
	return Options{
		RegexOptions: regexp2.None,
		MatchTimeout: 5 * time.Second,
	}
}
