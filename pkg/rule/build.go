package rule

import (
	"fmt"

	"github.com/praetorian-inc/reswitch/pkg/matcher"
	"github.com/praetorian-inc/reswitch/pkg/pattern"
	"github.com/praetorian-inc/reswitch/pkg/types"
)

// Build compiles a definition into a switch. Switch-wide options from the
// definition replace opts.RegexOptions; pattern alternatives are compiled
// with the switch options plus their own.
func Build(def *types.Definition, opts matcher.Options) (*matcher.Switch[string], error) {
	switchOpts, err := ParseOptions(def.Options)
	if err != nil {
		return nil, fmt.Errorf("switch %s: %w", def.ID, err)
	}
	opts.RegexOptions = switchOpts

	entries := make([]matcher.Entry[string], 0, len(def.Alternatives))
	for i, alt := range def.Alternatives {
		var sub pattern.SubPattern
		switch alt.Kind {
		case types.KindLiteral:
			sub = pattern.Literal(alt.Source)
		default:
			altOpts, err := ParseOptions(alt.Options)
			if err != nil {
				return nil, fmt.Errorf("switch %s alternative %d: %w", def.ID, i, err)
			}
			p, err := pattern.Compile(alt.Source, switchOpts|altOpts)
			if err != nil {
				return nil, fmt.Errorf("switch %s alternative %d: %w", def.ID, i, err)
			}
			sub = p
		}

		entry := matcher.Entry[string]{Pattern: sub, Value: alt.Value, HasValue: alt.HasValue}
		entries = append(entries, entry)
	}

	sw, err := matcher.BuildWithOptions(entries, opts)
	if err != nil {
		return nil, fmt.Errorf("switch %s: %w", def.ID, err)
	}
	return sw, nil
}

// ExampleFailure describes an example that did not select the expected alternative.
type ExampleFailure struct {
	SwitchID    string
	Alternative int    // alternative the example belongs to
	Input       string // the example text
	Negative    bool   // true for negative examples
	Got         int    // alternative that fired, or -1 for no match
	Err         error  // match error, if any
}

func (f ExampleFailure) String() string {
	switch {
	case f.Err != nil:
		return fmt.Sprintf("%s alternative %d: example %q: %v", f.SwitchID, f.Alternative, f.Input, f.Err)
	case f.Negative:
		return fmt.Sprintf("%s alternative %d: negative example %q selected it", f.SwitchID, f.Alternative, f.Input)
	case f.Got < 0:
		return fmt.Sprintf("%s alternative %d: example %q did not match", f.SwitchID, f.Alternative, f.Input)
	default:
		return fmt.Sprintf("%s alternative %d: example %q selected alternative %d", f.SwitchID, f.Alternative, f.Input, f.Got)
	}
}

// CheckExamples runs every example of def through sw. An example must select
// its own alternative, so an example shadowed by an earlier alternative fails.
// A negative example fails only if it selects its own alternative.
func CheckExamples(def *types.Definition, sw *matcher.Switch[string]) []ExampleFailure {
	var failures []ExampleFailure

	for i, alt := range def.Alternatives {
		for _, example := range alt.Examples {
			got, err := selected(sw, example)
			if err != nil || got != i {
				failures = append(failures, ExampleFailure{
					SwitchID: def.ID, Alternative: i, Input: example, Got: got, Err: err,
				})
			}
		}
		for _, example := range alt.NegativeExamples {
			got, err := selected(sw, example)
			if err != nil || got == i {
				failures = append(failures, ExampleFailure{
					SwitchID: def.ID, Alternative: i, Input: example, Negative: true, Got: got, Err: err,
				})
			}
		}
	}

	return failures
}

// selected returns the alternative input selects, or -1 for no match.
func selected(sw *matcher.Switch[string], input string) (int, error) {
	res, err := sw.Match(input)
	if err != nil {
		return -1, err
	}
	if res == nil {
		return -1, nil
	}
	return res.Alternative, nil
}
