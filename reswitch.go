// Package reswitch dispatches a string over an ordered list of regular
// expressions and literals with a single combined match, returning which
// alternative fired, the groups it captured and the value tagged onto it.
//
// # Basic Usage
//
// Build a switch from tagged alternatives and match input:
//
//	sw, err := reswitch.Build([]reswitch.Entry[string]{
//	    reswitch.Tagged[string](reswitch.MustCompile(`fo(o)`, reswitch.None), "V1"),
//	    reswitch.Tagged[string](reswitch.Literal("bar"), "V2"),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	res, err := sw.Match("foo")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if res != nil {
//	    fmt.Println(res.Strings(), res.Value) // [foo o] V1
//	}
//
// # Definitions Files
//
// Switches can also be declared in YAML and loaded by ID:
//
//	sw, err := reswitch.LoadSwitch("switches/", "http.request-line")
package reswitch

import (
	"fmt"

	"github.com/dlclark/regexp2"
	"github.com/praetorian-inc/reswitch/pkg/matcher"
	"github.com/praetorian-inc/reswitch/pkg/pattern"
	"github.com/praetorian-inc/reswitch/pkg/rule"
	"github.com/praetorian-inc/reswitch/pkg/types"
)

// Re-export commonly used types for convenience.
// Users can import just "github.com/praetorian-inc/reswitch" without subpackages.
type (
	// Entry is one alternative of a switch.
	Entry[V any] = matcher.Entry[V]

	// Switch is a compiled regexp switch.
	Switch[V any] = matcher.Switch[V]

	// Result is a successful switch match.
	Result[V any] = matcher.Result[V]

	// Options configures switch construction.
	Options = matcher.Options

	// ConstructionError reports why a switch could not be built.
	ConstructionError = matcher.ConstructionError

	// SubPattern is a compiled pattern or a literal.
	SubPattern = pattern.SubPattern

	// Pattern is a compiled regular expression sub-pattern.
	Pattern = pattern.Regexp

	// Literal is text matched verbatim.
	Literal = pattern.Literal

	// Definition is a switch declared in a definitions file.
	Definition = types.Definition
)

// None compiles a pattern without options.
const None = regexp2.None

// Re-export sentinel errors.
var (
	ErrNoAlternatives      = matcher.ErrNoAlternatives
	ErrIncompatibleOptions = matcher.ErrIncompatibleOptions
)

// Compile compiles a regular expression sub-pattern.
func Compile(expr string, opts regexp2.RegexOptions) (*Pattern, error) {
	return pattern.Compile(expr, opts)
}

// MustCompile is like Compile but panics on error.
func MustCompile(expr string, opts regexp2.RegexOptions) *Pattern {
	return pattern.MustCompile(expr, opts)
}

// Untagged returns an entry without a value.
func Untagged[V any](p SubPattern) Entry[V] {
	return matcher.Untagged[V](p)
}

// Tagged returns an entry carrying value.
func Tagged[V any](p SubPattern, value V) Entry[V] {
	return matcher.Tagged(p, value)
}

// DefaultOptions returns the options Build uses.
func DefaultOptions() Options {
	return matcher.DefaultOptions()
}

// Build compiles entries into a switch with default options.
func Build[V any](entries []Entry[V]) (*Switch[V], error) {
	return matcher.Build(entries)
}

// BuildWithOptions compiles entries into a switch.
func BuildWithOptions[V any](entries []Entry[V], opts Options) (*Switch[V], error) {
	return matcher.BuildWithOptions(entries, opts)
}

// LoadSwitch loads the definitions at path and builds the switch with the
// given ID. An empty path loads the built-in definitions.
func LoadSwitch(path, id string) (*Switch[string], error) {
	loader := rule.NewLoader()

	var (
		defs []*Definition
		err  error
	)
	if path == "" {
		defs, err = loader.LoadBuiltin()
	} else {
		defs, err = loader.LoadPath(path)
	}
	if err != nil {
		return nil, fmt.Errorf("loading definitions: %w", err)
	}

	def := rule.Find(defs, id)
	if def == nil {
		return nil, fmt.Errorf("switch %q not found", id)
	}
	if err := rule.ValidateDefinition(def); err != nil {
		return nil, err
	}
	return rule.Build(def, matcher.DefaultOptions())
}
