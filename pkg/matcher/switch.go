package matcher

import (
	"fmt"
	"strings"

	"github.com/dlclark/regexp2"
	"github.com/praetorian-inc/reswitch/pkg/pattern"
	"github.com/praetorian-inc/reswitch/pkg/prefilter"
)

const (
	// inlineOptions can be expressed as "(?imsx-imsx:...)" around an alternative.
	inlineOptions = regexp2.IgnoreCase | regexp2.Multiline | regexp2.Singleline | regexp2.IgnorePatternWhitespace

	// engineOptions change how the whole pattern is run and must agree
	// between a sub-pattern and its switch.
	engineOptions = regexp2.RightToLeft | regexp2.ECMAScript | regexp2.RE2
)

// alternative is one compiled entry of a switch.
type alternative[V any] struct {
	source   string          // non-capturing source spliced into the combined pattern
	groups   int             // capturing groups of the original sub-pattern
	re       *regexp2.Regexp // original pattern, nil when it has no groups
	value    V
	hasValue bool
}

// Switch is a compiled regexp switch. It is immutable once built and safe for
// concurrent use by multiple goroutines.
type Switch[V any] struct {
	re        *regexp2.Regexp
	alts      []alternative[V]
	prefilter *prefilter.Prefilter
}

// Build compiles entries into a switch using DefaultOptions.
func Build[V any](entries []Entry[V]) (*Switch[V], error) {
	return BuildWithOptions(entries, DefaultOptions())
}

// BuildWithOptions compiles entries into a switch. Entry order is significant:
// when several alternatives can match at the leftmost position, the one listed
// first wins.
//
// All failures are returned as *ConstructionError.
func BuildWithOptions[V any](entries []Entry[V], opts Options) (*Switch[V], error) {
	if len(entries) == 0 {
		return nil, &ConstructionError{Index: -1, Err: ErrNoAlternatives}
	}

	alts := make([]alternative[V], 0, len(entries))
	literals := make([]string, 0, len(entries))
	allLiterals := true

	for i, entry := range entries {
		alt, err := compileAlternative(entry, opts)
		if err != nil {
			return nil, &ConstructionError{Index: i, Err: err}
		}
		alts = append(alts, alt)

		if lit, ok := entry.Pattern.(pattern.Literal); ok && lit != "" {
			literals = append(literals, string(lit))
		} else {
			allLiterals = false
		}
	}

	bits := make([]string, len(alts))
	for i, alt := range alts {
		bits[i] = "(" + alt.source + ")"
	}
	combined := strings.Join(bits, "|")

	re, err := regexp2.Compile(combined, opts.RegexOptions&^regexp2.ExplicitCapture)
	if err != nil {
		return nil, &ConstructionError{Index: -1, Err: fmt.Errorf("failed to compile combined pattern %q: %w", combined, err)}
	}
	if opts.MatchTimeout > 0 {
		re.MatchTimeout = opts.MatchTimeout
	}

	s := &Switch[V]{
		re:   re,
		alts: alts,
	}

	// Literal keywords only bound the match when they are matched verbatim.
	if allLiterals && !opts.DisablePrefilter && opts.RegexOptions&(regexp2.IgnoreCase|regexp2.IgnorePatternWhitespace) == 0 {
		s.prefilter = prefilter.New(literals)
	}

	return s, nil
}

// compileAlternative normalizes one entry.
func compileAlternative[V any](entry Entry[V], opts Options) (alternative[V], error) {
	alt := alternative[V]{
		value:    entry.Value,
		hasValue: entry.HasValue,
	}

	switch p := entry.Pattern.(type) {
	case *pattern.Regexp:
		if p == nil {
			return alt, fmt.Errorf("nil pattern")
		}
		if p.Options()&engineOptions != opts.RegexOptions&engineOptions {
			return alt, fmt.Errorf("pattern %q: %w", p.String(), ErrIncompatibleOptions)
		}
		source := pattern.ToNonCapturing(p.String())
		if whitespaceModeAtEnd(source, p.Options()&regexp2.IgnorePatternWhitespace != 0) {
			// A trailing "#" comment would swallow the closing parens.
			source += "\n"
		}
		alt.source = withInlineOptions(source, p.Options(), opts.RegexOptions)
		alt.groups = p.NumGroups()
		if alt.groups > 0 {
			// Recompile so the switch owns its copy and the caller's pattern
			// is never mutated.
			re, err := regexp2.Compile(p.String(), p.Options())
			if err != nil {
				return alt, fmt.Errorf("failed to compile pattern %q: %w", p.String(), err)
			}
			if opts.MatchTimeout > 0 {
				re.MatchTimeout = opts.MatchTimeout
			}
			alt.re = re
		}
	case pattern.Literal:
		alt.source = pattern.Source(p)
		if opts.RegexOptions&regexp2.IgnorePatternWhitespace != 0 {
			alt.source = "(?-x:" + alt.source + ")"
		}
	case nil:
		return alt, fmt.Errorf("nil pattern")
	default:
		return alt, fmt.Errorf("unsupported sub-pattern type %T", p)
	}

	return alt, nil
}

// withInlineOptions wraps source so it is matched with the inline options
// it was compiled with, whatever the switch's own options are.
func withInlineOptions(source string, own, sw regexp2.RegexOptions) string {
	on := own & inlineOptions &^ sw
	off := sw & inlineOptions &^ own
	if on == 0 && off == 0 {
		return source
	}

	var b strings.Builder
	b.WriteString("(?")
	b.WriteString(optionLetters(on))
	if off != 0 {
		b.WriteByte('-')
		b.WriteString(optionLetters(off))
	}
	b.WriteByte(':')
	b.WriteString(source)
	b.WriteByte(')')
	return b.String()
}

func optionLetters(opts regexp2.RegexOptions) string {
	var b strings.Builder
	if opts&regexp2.IgnoreCase != 0 {
		b.WriteByte('i')
	}
	if opts&regexp2.Multiline != 0 {
		b.WriteByte('m')
	}
	if opts&regexp2.Singleline != 0 {
		b.WriteByte('s')
	}
	if opts&regexp2.IgnorePatternWhitespace != 0 {
		b.WriteByte('x')
	}
	return b.String()
}

// whitespaceModeAtEnd reports whether the "x" option is still in effect at the
// end of source, given whether it was set when source starts. Scoped groups
// such as "(?x:...)" restore the outer state when they close; "(?x)" and
// "(?-x)" apply until the end of the enclosing group.
func whitespaceModeAtEnd(source string, x bool) bool {
	var stack []bool
	escaped := false
	inClass := false

	for i := 0; i < len(source); i++ {
		c := source[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\':
			escaped = true
		case inClass:
			if c == ']' {
				inClass = false
			}
		case c == '[':
			inClass = true
		case x && c == '#':
			j := strings.IndexByte(source[i:], '\n')
			if j < 0 {
				return true
			}
			i += j
		case c == '(':
			flags, n, scoped := inlineFlags(source[i+1:])
			if n == 0 {
				stack = append(stack, x)
				continue
			}
			if scoped {
				stack = append(stack, x)
			}
			x = applyWhitespaceFlag(x, flags)
			i += n
		case c == ')':
			if len(stack) > 0 {
				x = stack[len(stack)-1]
				stack = stack[:len(stack)-1]
			}
		}
	}
	return x
}

// inlineFlags parses an option group such as "?i-x)" or "?x:" following an
// open paren. It returns the flag letters, the bytes consumed, and whether the
// group has a body. n is 0 when rest is not an option group.
func inlineFlags(rest string) (flags string, n int, scoped bool) {
	if !strings.HasPrefix(rest, "?") {
		return "", 0, false
	}
	for j := 1; j < len(rest); j++ {
		switch c := rest[j]; {
		case c == ':':
			return rest[1:j], j + 1, true
		case c == ')':
			if j == 1 {
				return "", 0, false
			}
			return rest[1:j], j + 1, false
		case !strings.ContainsRune("imnsx-", rune(c)):
			return "", 0, false
		}
	}
	return "", 0, false
}

func applyWhitespaceFlag(x bool, flags string) bool {
	on := true
	for _, c := range flags {
		switch c {
		case '-':
			on = false
		case 'x':
			x = on
		}
	}
	return x
}

// Match applies the switch to input. It returns nil and no error when nothing
// matches. Errors are engine failures such as a match timeout.
func (s *Switch[V]) Match(input string) (*Result[V], error) {
	if s.prefilter != nil && !s.prefilter.MayMatch([]byte(input)) {
		return nil, nil
	}

	match, err := s.re.FindStringMatch(input)
	if err != nil {
		return nil, fmt.Errorf("switch match error: %w", err)
	}
	if match == nil {
		return nil, nil
	}

	i := dispatchIndex(match, len(s.alts))
	if i < 0 {
		return nil, fmt.Errorf("switch matched %q but no alternative participated", match.String())
	}
	alt := &s.alts[i]
	offset := byteOffset(input, match.Index)

	result := &Result[V]{
		Input:       input,
		Value:       alt.value,
		HasValue:    alt.hasValue,
		Alternative: i,
	}

	if alt.re == nil {
		whole := match.String()
		result.Groups = []Group{
			{Text: whole, Matched: true},
			{Text: whole, Matched: true},
		}
		result.Index = 0
		result.Offset = offset
		return result, nil
	}

	// Re-apply the original pattern to recover the groups the dispatch
	// pattern suppressed.
	own, err := alt.re.FindStringMatch(input)
	if err != nil {
		return nil, fmt.Errorf("alternative %d match error: %w", i, err)
	}
	if own == nil {
		return nil, fmt.Errorf("alternative %d matched in switch but not on its own", i)
	}

	result.Groups = extractGroups(own)
	result.Index = byteOffset(input, own.Index)
	result.Offset = offset
	return result, nil
}

// MatchString reports whether any alternative matches input.
func (s *Switch[V]) MatchString(input string) (bool, error) {
	if s.prefilter != nil && !s.prefilter.MayMatch([]byte(input)) {
		return false, nil
	}
	return s.re.MatchString(input)
}

// Len returns the number of alternatives.
func (s *Switch[V]) Len() int {
	return len(s.alts)
}

// NumGroups returns the capturing group count of alternative i as it was
// before normalization.
func (s *Switch[V]) NumGroups(i int) int {
	return s.alts[i].groups
}

// String returns the combined pattern source.
func (s *Switch[V]) String() string {
	return s.re.String()
}
