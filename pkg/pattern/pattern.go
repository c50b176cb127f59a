// Package pattern normalizes sub-patterns so they can be spliced into a
// combined alternation.
//
// A sub-pattern is either a compiled regexp2 pattern or a literal string.
// Literals are escaped and match only themselves. Compiled patterns keep
// their source, with capturing groups rewritten to non-capturing ones when
// embedded, and their original group count for later capture recovery.
package pattern

import (
	"fmt"

	"github.com/dlclark/regexp2"
)

// SubPattern is one alternative of a switch: either *Regexp or Literal.
// The interface is closed; no other implementations exist.
type SubPattern interface {
	isSubPattern()
}

// Regexp is a compiled sub-pattern together with the options it was
// compiled with. regexp2 does not expose the options of a compiled
// expression, so they are recorded here.
type Regexp struct {
	re      *regexp2.Regexp
	options regexp2.RegexOptions
	groups  int
}

// Literal is a sub-pattern that matches its text exactly.
type Literal string

func (*Regexp) isSubPattern() {}
func (Literal) isSubPattern() {}

// Compile compiles expr with the given regexp2 options.
func Compile(expr string, opts regexp2.RegexOptions) (*Regexp, error) {
	re, err := regexp2.Compile(expr, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to compile pattern %q: %w", expr, err)
	}
	return FromRegexp(re, opts), nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(expr string, opts regexp2.RegexOptions) *Regexp {
	p, err := Compile(expr, opts)
	if err != nil {
		panic(err)
	}
	return p
}

// FromRegexp wraps an already compiled regexp2 pattern. opts must be the
// options re was compiled with.
func FromRegexp(re *regexp2.Regexp, opts regexp2.RegexOptions) *Regexp {
	return &Regexp{
		re:      re,
		options: opts,
		groups:  len(re.GetGroupNumbers()) - 1,
	}
}

// Regexp returns the underlying compiled pattern.
func (p *Regexp) Regexp() *regexp2.Regexp { return p.re }

// Options returns the options the pattern was compiled with.
func (p *Regexp) Options() regexp2.RegexOptions { return p.options }

// NumGroups returns the number of capturing groups, excluding the whole match.
func (p *Regexp) NumGroups() int { return p.groups }

// String returns the pattern source.
func (p *Regexp) String() string { return p.re.String() }

// IsPattern reports whether p is a compiled pattern rather than a literal.
func IsPattern(p SubPattern) bool {
	_, ok := p.(*Regexp)
	return ok
}

// Source returns the regexp source of p. Literals are escaped so the
// source matches only the literal text.
func Source(p SubPattern) string {
	switch v := p.(type) {
	case *Regexp:
		return v.String()
	case Literal:
		return EscapeLiteral(string(v))
	default:
		panic(fmt.Sprintf("pattern: unknown sub-pattern type %T", p))
	}
}
