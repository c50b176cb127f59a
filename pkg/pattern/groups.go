package pattern

import (
	"strings"

	"github.com/dlclark/regexp2"
)

// metaChars are escaped by EscapeLiteral.
const metaChars = `^\$*+?.()|{}[]/`

// EscapeLiteral escapes regexp metacharacters in text so the result,
// compiled as a pattern, matches only text itself.
func EscapeLiteral(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); i++ {
		c := text[i]
		if strings.IndexByte(metaChars, c) >= 0 {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	return b.String()
}

// ToNonCapturing rewrites every capturing group opener in source to "(?:".
//
// An opener is an unescaped "(" that starts either a plain group or a named
// group ("(?<name>", "(?'name'", "(?P<name>"). Other "(?" constructs such as
// "(?:", lookarounds and inline options do not capture and are kept as they
// are, which makes the rewrite idempotent. The test of a conditional such as
// "(?(name)yes|no)" is kept as well, although the group it names no longer
// exists once the rewrite is done.
//
// FIXME: parentheses inside character classes are rewritten too, so "[(]"
// becomes "[(?:]".
func ToNonCapturing(source string) string {
	var b strings.Builder
	b.Grow(len(source) + 8)
	escaped := false
	for i := 0; i < len(source); i++ {
		c := source[i]
		if escaped {
			b.WriteByte(c)
			escaped = false
			continue
		}
		switch {
		case c == '\\':
			escaped = true
			b.WriteByte(c)
		case c != '(':
			b.WriteByte(c)
		case strings.HasPrefix(source[i+1:], "?("):
			b.WriteString("(?(")
			i += 2
		case strings.HasPrefix(source[i+1:], "?"):
			if n := namedGroupLen(source[i+1:]); n > 0 {
				b.WriteString("(?:")
				i += n
			} else {
				b.WriteByte(c)
			}
		default:
			b.WriteString("(?:")
		}
	}
	return b.String()
}

// namedGroupLen returns the length of a named group prefix ("?<name>",
// "?'name'" or "?P<name>") at the start of rest, or 0 if there is none.
func namedGroupLen(rest string) int {
	var start int
	var closer byte
	switch {
	case strings.HasPrefix(rest, "?P<"):
		start, closer = 3, '>'
	case strings.HasPrefix(rest, "?<") && !strings.HasPrefix(rest, "?<=") && !strings.HasPrefix(rest, "?<!"):
		start, closer = 2, '>'
	case strings.HasPrefix(rest, "?'"):
		start, closer = 2, '\''
	default:
		return 0
	}
	end := strings.IndexByte(rest[start:], closer)
	if end <= 0 {
		return 0
	}
	return start + end + 1
}

// CountCapturingGroups returns the number of capturing groups in source.
// A source that fails to compile returns the engine error unmodified.
func CountCapturingGroups(source string) (int, error) {
	re, err := regexp2.Compile(source, regexp2.None)
	if err != nil {
		return 0, err
	}
	return len(re.GetGroupNumbers()) - 1, nil
}
