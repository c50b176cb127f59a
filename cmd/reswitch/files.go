package main

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// expandFiles expands glob patterns among paths, including "**" for recursive
// matching. Plain paths are kept as given. Duplicates are dropped and the
// first occurrence keeps its position.
func expandFiles(paths []string) ([]string, error) {
	seen := make(map[string]bool)
	var out []string

	for _, p := range paths {
		matches := []string{p}
		if strings.ContainsAny(p, "*?[{") {
			var err error
			matches, err = doublestar.FilepathGlob(p, doublestar.WithFilesOnly())
			if err != nil {
				return nil, fmt.Errorf("invalid glob %q: %w", p, err)
			}
			if len(matches) == 0 {
				return nil, fmt.Errorf("no files match %s", p)
			}
		}

		for _, m := range matches {
			if seen[m] {
				continue
			}
			seen[m] = true
			out = append(out, m)
		}
	}

	return out, nil
}
