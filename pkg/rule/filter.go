package rule

import (
	"fmt"
	"strings"

	"github.com/dlclark/regexp2"
	"github.com/praetorian-inc/reswitch/pkg/types"
)

// FilterConfig specifies include and exclude patterns for definition filtering.
type FilterConfig struct {
	Include []string // Regex patterns - only matching switch IDs included
	Exclude []string // Regex patterns - matching switch IDs excluded
}

// ParsePatterns splits a comma-separated string into individual patterns.
// Patterns are trimmed of whitespace.
func ParsePatterns(patterns string) []string {
	if patterns == "" {
		return []string{}
	}

	parts := strings.Split(patterns, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// Filter applies include and exclude patterns to definitions by ID.
// Include is applied first, then exclude.
// Empty include means "include all".
// Returns error if any pattern is invalid regex.
func Filter(defs []*types.Definition, config FilterConfig) ([]*types.Definition, error) {
	if len(defs) == 0 {
		return defs, nil
	}

	includeRegexes, err := compileAll(config.Include)
	if err != nil {
		return nil, err
	}
	excludeRegexes, err := compileAll(config.Exclude)
	if err != nil {
		return nil, err
	}

	filtered := defs
	if len(includeRegexes) > 0 {
		filtered = keep(filtered, includeRegexes, true)
	}
	if len(excludeRegexes) > 0 {
		filtered = keep(filtered, excludeRegexes, false)
	}

	return filtered, nil
}

// Find returns the definition with the given ID, or nil.
func Find(defs []*types.Definition, id string) *types.Definition {
	for _, def := range defs {
		if def.ID == id {
			return def
		}
	}
	return nil
}

// =============================================================================
// HELPERS
// =============================================================================

func compileAll(patterns []string) ([]*regexp2.Regexp, error) {
	var regexes []*regexp2.Regexp
	for _, pattern := range patterns {
		re, err := regexp2.Compile(pattern, regexp2.RE2)
		if err != nil {
			return nil, fmt.Errorf("invalid regex pattern %q: %w", pattern, err)
		}
		regexes = append(regexes, re)
	}
	return regexes, nil
}

// keep returns the definitions whose ID matching any regex equals want.
func keep(defs []*types.Definition, regexes []*regexp2.Regexp, want bool) []*types.Definition {
	result := make([]*types.Definition, 0)
	for _, def := range defs {
		if matchesAny(def.ID, regexes) == want {
			result = append(result, def)
		}
	}
	return result
}

func matchesAny(id string, regexes []*regexp2.Regexp) bool {
	for _, re := range regexes {
		// A match error counts as no match.
		if ok, err := re.MatchString(id); err == nil && ok {
			return true
		}
	}
	return false
}
