package rule

import (
	"fmt"
	"sort"

	"github.com/dlclark/regexp2"
)

// optionNames maps definition option names to regexp2 options.
var optionNames = map[string]regexp2.RegexOptions{
	"ignore_case":       regexp2.IgnoreCase,
	"multiline":         regexp2.Multiline,
	"singleline":        regexp2.Singleline,
	"explicit_capture":  regexp2.ExplicitCapture,
	"ignore_whitespace": regexp2.IgnorePatternWhitespace,
	"right_to_left":     regexp2.RightToLeft,
	"ecmascript":        regexp2.ECMAScript,
	"re2":               regexp2.RE2,
	"unicode":           regexp2.Unicode,
}

// ParseOptions converts option names into regexp2 options.
func ParseOptions(names []string) (regexp2.RegexOptions, error) {
	opts := regexp2.None
	for _, name := range names {
		opt, ok := optionNames[name]
		if !ok {
			return regexp2.None, fmt.Errorf("unknown option %q (known: %v)", name, OptionNames())
		}
		opts |= opt
	}
	return opts, nil
}

// OptionNames returns the recognized option names, sorted.
func OptionNames() []string {
	names := make([]string, 0, len(optionNames))
	for name := range optionNames {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
