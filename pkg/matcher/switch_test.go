package matcher

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/dlclark/regexp2"
	"github.com/praetorian-inc/reswitch/pkg/pattern"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func re(expr string) *pattern.Regexp {
	return pattern.MustCompile(expr, regexp2.None)
}

// mixedSwitch mirrors a switch over a grouped pattern, a bare literal and
// two tagged alternatives.
func mixedSwitch(t *testing.T) *Switch[string] {
	t.Helper()
	sw, err := Build([]Entry[string]{
		Untagged[string](re(`a(b)c`)),
		Untagged[string](pattern.Literal("lit")),
		Tagged[string](re(`fo(o)`), "V1"),
		Tagged[string](pattern.Literal("bar"), "V2"),
	})
	require.NoError(t, err)
	return sw
}

func TestBuild_CombinedSource(t *testing.T) {
	sw := mixedSwitch(t)

	assert.Equal(t, `(a(?:b)c)|(lit)|(fo(?:o))|(bar)`, sw.String())
	assert.Equal(t, 4, sw.Len())
	assert.Equal(t, 1, sw.NumGroups(0))
	assert.Equal(t, 0, sw.NumGroups(1))
}

func TestMatch_TaggedPatternWithGroup(t *testing.T) {
	sw := mixedSwitch(t)

	res, err := sw.Match("foo")
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.Equal(t, []string{"foo", "o"}, res.Strings())
	assert.Equal(t, "V1", res.Value)
	assert.True(t, res.HasValue)
	assert.Equal(t, 2, res.Alternative)
	assert.Equal(t, 0, res.Index)
	assert.Equal(t, "foo", res.Input)
}

func TestMatch_TaggedLiteral(t *testing.T) {
	sw := mixedSwitch(t)

	res, err := sw.Match("bar")
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.Equal(t, []string{"bar", "bar"}, res.Strings())
	assert.Equal(t, "V2", res.Value)
	assert.Equal(t, 3, res.Alternative)
}

func TestMatch_NoMatch(t *testing.T) {
	sw := mixedSwitch(t)

	res, err := sw.Match("xyz")
	require.NoError(t, err)
	assert.Nil(t, res)

	ok, err := sw.MatchString("xyz")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMatch_UntaggedPatternKeepsOwnGroups(t *testing.T) {
	sw := mixedSwitch(t)

	res, err := sw.Match("abc")
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.Equal(t, []string{"abc", "b"}, res.Strings())
	assert.False(t, res.HasValue)
	assert.Equal(t, "", res.Value)
}

func TestMatch_NestedGroups(t *testing.T) {
	sw, err := Build([]Entry[string]{
		Untagged[string](re(`arsta(sat((sarsdta)))`)),
		Untagged[string](pattern.Literal("arsda()arstao[3424]")),
		Tagged[string](re(`fo(o)`), "foo matched!"),
		Tagged[string](pattern.Literal("bar"), "bar matched!"),
	})
	require.NoError(t, err)

	res, err := sw.Match("xx arstasatsarsdta yy")
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, []string{"arstasatsarsdta", "satsarsdta", "sarsdta", "sarsdta"}, res.Strings())
	assert.Equal(t, 3, res.Index)
	assert.Equal(t, 0, res.Alternative)

	res, err = sw.Match("arsda()arstao[3424]")
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, []string{"arsda()arstao[3424]", "arsda()arstao[3424]"}, res.Strings())
	assert.Equal(t, 1, res.Alternative)

	res, err = sw.Match("foo")
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, []string{"foo", "o"}, res.Strings())
	assert.Equal(t, "foo matched!", res.Value)
}

func TestMatch_NonParticipatingGroup(t *testing.T) {
	sw, err := Build([]Entry[int]{
		Tagged[int](re(`(x)?y(z)`), 7),
	})
	require.NoError(t, err)

	res, err := sw.Match("yz")
	require.NoError(t, err)
	require.NotNil(t, res)

	require.Len(t, res.Groups, 3)
	text, ok := res.Group(1)
	assert.False(t, ok)
	assert.Equal(t, "", text)
	text, ok = res.Group(2)
	assert.True(t, ok)
	assert.Equal(t, "z", text)
	_, ok = res.Group(5)
	assert.False(t, ok)
	assert.Equal(t, 7, res.Value)
}

func TestMatch_FirstAlternativeWins(t *testing.T) {
	tests := []struct {
		name    string
		entries []Entry[string]
		input   string
		want    string
		wantAlt int
	}{
		{
			name: "shorter listed first",
			entries: []Entry[string]{
				Tagged[string](pattern.Literal("ab"), "short"),
				Tagged[string](pattern.Literal("abcd"), "long"),
			},
			input:   "abcd",
			want:    "short",
			wantAlt: 0,
		},
		{
			name: "longer listed first",
			entries: []Entry[string]{
				Tagged[string](pattern.Literal("abcd"), "long"),
				Tagged[string](pattern.Literal("ab"), "short"),
			},
			input:   "abcd",
			want:    "long",
			wantAlt: 0,
		},
		{
			name: "patterns with groups",
			entries: []Entry[string]{
				Tagged[string](re(`(a)b`), "first"),
				Tagged[string](re(`(a)(b)c`), "second"),
			},
			input:   "abc",
			want:    "first",
			wantAlt: 0,
		},
		{
			name: "leftmost position beats list order",
			entries: []Entry[string]{
				Tagged[string](pattern.Literal("cd"), "late"),
				Tagged[string](pattern.Literal("ab"), "early"),
			},
			input:   "abcd",
			want:    "early",
			wantAlt: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sw, err := Build(tt.entries)
			require.NoError(t, err)

			res, err := sw.Match(tt.input)
			require.NoError(t, err)
			require.NotNil(t, res)
			assert.Equal(t, tt.want, res.Value)
			assert.Equal(t, tt.wantAlt, res.Alternative)
		})
	}
}

// Literal and group-less alternatives report index 0 rather than the real
// offset. This pins the current behavior.
func TestMatch_GrouplessIndexIsZero(t *testing.T) {
	sw, err := Build([]Entry[string]{
		Untagged[string](pattern.Literal("bar")),
		Untagged[string](re(`q+`)),
		Untagged[string](re(`z(z)`)),
	})
	require.NoError(t, err)

	res, err := sw.Match("xxbar")
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, 0, res.Index)

	res, err = sw.Match("xxqq")
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, 0, res.Index)
	assert.Equal(t, []string{"qq", "qq"}, res.Strings())

	// Alternatives with groups report the real offset.
	res, err = sw.Match("xxzz")
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, 2, res.Index)
}

func TestMatch_OffsetOfWholeMatch(t *testing.T) {
	sw, err := Build([]Entry[string]{
		Untagged[string](re(`\ba\b`)),
		Untagged[string](pattern.Literal("bar")),
		Untagged[string](re(`z(z)`)),
	})
	require.NoError(t, err)

	tests := []struct {
		input       string
		alternative int
		offset      int
	}{
		// A plain substring search would find the "a" inside "cat".
		{"cat a", 0, 4},
		{"a cat", 0, 0},
		{"xxbar", 1, 2},
		{"ébar", 1, 2},
		{"héllo zz", 2, 7},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			res, err := sw.Match(tt.input)
			require.NoError(t, err)
			require.NotNil(t, res)
			assert.Equal(t, tt.alternative, res.Alternative)
			assert.Equal(t, tt.offset, res.Offset)

			whole := res.Strings()[0]
			assert.Equal(t, whole, tt.input[res.Offset:res.Offset+len(whole)])
		})
	}
}

func TestMatch_IndexIsByteOffset(t *testing.T) {
	sw, err := Build([]Entry[string]{
		Untagged[string](re(`w(o)rld`)),
	})
	require.NoError(t, err)

	input := "héllo wörld world"
	res, err := sw.Match(input)
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.Equal(t, "world", res.Strings()[0])
	assert.Equal(t, "world", input[res.Index:res.Index+len("world")])
}

func TestMatch_LiteralMetacharacters(t *testing.T) {
	sw, err := Build([]Entry[string]{
		Tagged[string](pattern.Literal("a.b"), "dot"),
		Tagged[string](pattern.Literal("(x|y)"), "alt"),
	})
	require.NoError(t, err)

	res, err := sw.Match("axb")
	require.NoError(t, err)
	assert.Nil(t, res)

	res, err = sw.Match("x")
	require.NoError(t, err)
	assert.Nil(t, res)

	res, err = sw.Match("call (x|y) now")
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, "alt", res.Value)
}

func TestMatch_InlineOptionsPreserved(t *testing.T) {
	sw, err := Build([]Entry[string]{
		Tagged[string](pattern.MustCompile(`get (\S+)`, regexp2.IgnoreCase), "get"),
		Tagged[string](re(`put (\S+)`), "put"),
	})
	require.NoError(t, err)
	assert.Equal(t, `((?i:get (?:\S+)))|(put (?:\S+))`, sw.String())

	res, err := sw.Match("GET /index")
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, "get", res.Value)
	assert.Equal(t, []string{"GET /index", "/index"}, res.Strings())

	// The case-sensitive alternative stays case-sensitive.
	res, err = sw.Match("PUT /index")
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestMatch_SwitchOptionsTurnedOffInline(t *testing.T) {
	opts := DefaultOptions()
	opts.RegexOptions = regexp2.IgnoreCase

	sw, err := BuildWithOptions([]Entry[string]{
		Tagged[string](re(`exact`), "exact"),
		Tagged[string](pattern.Literal("loose"), "loose"),
	}, opts)
	require.NoError(t, err)
	assert.Equal(t, `((?-i:exact))|(loose)`, sw.String())

	res, err := sw.Match("LOOSE")
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, "loose", res.Value)

	res, err = sw.Match("EXACT")
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestBuild_Empty(t *testing.T) {
	sw, err := Build[string](nil)
	require.Error(t, err)
	assert.Nil(t, sw)

	var cerr *ConstructionError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, -1, cerr.Index)
	assert.ErrorIs(t, err, ErrNoAlternatives)
	assert.Contains(t, err.Error(), "at least one alternative required")
}

func TestBuild_IncompatibleOptions(t *testing.T) {
	_, err := Build([]Entry[string]{
		Untagged[string](re(`a`)),
		Untagged[string](pattern.MustCompile(`b`, regexp2.RightToLeft)),
	})
	require.Error(t, err)

	var cerr *ConstructionError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, 1, cerr.Index)
	assert.ErrorIs(t, err, ErrIncompatibleOptions)
}

func TestBuild_NilPattern(t *testing.T) {
	_, err := Build([]Entry[string]{{}})
	require.Error(t, err)

	var cerr *ConstructionError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, 0, cerr.Index)
}

func TestBuild_InvalidCombinedPattern(t *testing.T) {
	// The backreference is valid on its own but names a group that no
	// longer exists once groups are made non-capturing.
	_, err := Build([]Entry[string]{
		Untagged[string](re(`(a)(b)\2`)),
	})
	require.Error(t, err)

	var cerr *ConstructionError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, -1, cerr.Index)
	assert.Contains(t, err.Error(), "failed to compile combined pattern")
}

func TestBuild_DoesNotMutateCallerPattern(t *testing.T) {
	p := re(`fo(o)`)
	before := p.Regexp().MatchTimeout

	_, err := Build([]Entry[string]{Untagged[string](p)})
	require.NoError(t, err)

	assert.Equal(t, before, p.Regexp().MatchTimeout)
}

func TestBuild_MatchTimeout(t *testing.T) {
	opts := DefaultOptions()
	opts.MatchTimeout = 10 * time.Millisecond

	sw, err := BuildWithOptions([]Entry[string]{
		Untagged[string](re(`(x+x+)+y`)),
	}, opts)
	require.NoError(t, err)

	input := ""
	for i := 0; i < 40; i++ {
		input += "x"
	}

	_, err = sw.Match(input)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timeout")
}

func TestPrefilter_LiteralOnlySwitch(t *testing.T) {
	entries := []Entry[string]{
		Tagged[string](pattern.Literal("GET"), "get"),
		Tagged[string](pattern.Literal("HEAD"), "head"),
	}

	sw, err := Build(entries)
	require.NoError(t, err)
	require.NotNil(t, sw.prefilter)

	opts := DefaultOptions()
	opts.DisablePrefilter = true
	plain, err := BuildWithOptions(entries, opts)
	require.NoError(t, err)
	require.Nil(t, plain.prefilter)

	for _, input := range []string{"GET /", "x HEAD", "POST /", "", "get"} {
		want, err := plain.Match(input)
		require.NoError(t, err)
		got, err := sw.Match(input)
		require.NoError(t, err)
		assert.Equal(t, want, got, "input %q", input)
	}
}

func TestPrefilter_NotUsedWhenUnsafe(t *testing.T) {
	// A pattern alternative can match text containing no literal.
	sw, err := Build([]Entry[string]{
		Untagged[string](pattern.Literal("GET")),
		Untagged[string](re(`P[A-Z]+`)),
	})
	require.NoError(t, err)
	assert.Nil(t, sw.prefilter)

	// Case-insensitive literals cannot be found verbatim.
	opts := DefaultOptions()
	opts.RegexOptions = regexp2.IgnoreCase
	sw, err = BuildWithOptions([]Entry[string]{Untagged[string](pattern.Literal("GET"))}, opts)
	require.NoError(t, err)
	assert.Nil(t, sw.prefilter)

	// The empty literal matches everywhere.
	sw, err = Build([]Entry[string]{Untagged[string](pattern.Literal(""))})
	require.NoError(t, err)
	assert.Nil(t, sw.prefilter)
}

func TestMatch_IgnorePatternWhitespaceLiteral(t *testing.T) {
	opts := DefaultOptions()
	opts.RegexOptions = regexp2.IgnorePatternWhitespace

	sw, err := BuildWithOptions([]Entry[string]{
		Tagged[string](pattern.Literal("a b"), "spaced"),
	}, opts)
	require.NoError(t, err)

	res, err := sw.Match("ab")
	require.NoError(t, err)
	assert.Nil(t, res)

	res, err = sw.Match("a b")
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, "spaced", res.Value)
}

func TestMatch_TrailingCommentInWhitespaceMode(t *testing.T) {
	tests := []struct {
		name   string
		opts   regexp2.RegexOptions
		sub    *pattern.Regexp
		input  string
		groups []string
	}{
		{
			name:   "pattern option",
			sub:    pattern.MustCompile("a b # trailing comment", regexp2.IgnorePatternWhitespace),
			input:  "ab",
			groups: []string{"ab", "ab"},
		},
		{
			name:   "inline option",
			sub:    re(`(?x) a (b) # c`),
			input:  "ab",
			groups: []string{"ab", "b"},
		},
		{
			name:   "switch option",
			opts:   regexp2.IgnorePatternWhitespace,
			sub:    pattern.MustCompile("a (b) # c", regexp2.IgnorePatternWhitespace),
			input:  "ab",
			groups: []string{"ab", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			opts.RegexOptions = tt.opts

			sw, err := BuildWithOptions([]Entry[string]{
				Tagged[string](tt.sub, "commented"),
				Tagged[string](pattern.Literal("zz"), "after"),
			}, opts)
			require.NoError(t, err)

			res, err := sw.Match(tt.input)
			require.NoError(t, err)
			require.NotNil(t, res)
			assert.Equal(t, "commented", res.Value)
			assert.Equal(t, tt.groups, res.Strings())

			res, err = sw.Match("zz")
			require.NoError(t, err)
			require.NotNil(t, res)
			assert.Equal(t, "after", res.Value)
		})
	}
}

func TestBuild_HashOutsideWhitespaceMode(t *testing.T) {
	sw, err := Build([]Entry[string]{
		Untagged[string](re(`a#b`)),
		Untagged[string](re(`(?x: a )c#`)),
	})
	require.NoError(t, err)

	// No newline is added where it would be matched literally.
	assert.Equal(t, `(a#b)|((?x: a )c#)`, sw.String())

	res, err := sw.Match("ac#")
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, 1, res.Alternative)
}

func TestWhitespaceModeAtEnd(t *testing.T) {
	tests := []struct {
		source string
		x      bool
		want   bool
	}{
		{`a b`, false, false},
		{`a b`, true, true},
		{`a # c`, true, true},
		{`a # c` + "\n" + `d`, true, true},
		{`(?x) a`, false, true},
		{`(?x) a (?-x)b`, false, false},
		{`(?-x)a`, true, false},
		{`(?x: a )b`, false, false},
		{`(?-x:a)b`, true, true},
		{`((?x)a)b`, false, false},
		{`(?ix)a`, false, true},
		{`(?i-x)a`, true, false},
		{`[(?x)]a`, false, false},
		{`\(?x)a`, false, false},
		{`a # (?-x)`, true, true},
		{`(?#x)a`, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			assert.Equal(t, tt.want, whitespaceModeAtEnd(tt.source, tt.x))
		})
	}
}

func TestMatch_Concurrent(t *testing.T) {
	sw := mixedSwitch(t)
	inputs := []string{"foo", "bar", "abc", "lit", "xyz"}

	want := make(map[string]*Result[string])
	for _, in := range inputs {
		res, err := sw.Match(in)
		require.NoError(t, err)
		want[in] = res
	}

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				in := inputs[(w+i)%len(inputs)]
				res, err := sw.Match(in)
				if !assert.NoError(t, err) {
					return
				}
				assert.Equal(t, want[in], res, fmt.Sprintf("worker %d input %q", w, in))
			}
		}(w)
	}
	wg.Wait()
}
