package main

import (
	"fmt"

	"github.com/praetorian-inc/reswitch/pkg/rule"
	"github.com/praetorian-inc/reswitch/pkg/types"
)

// loadDefinitions loads the definitions at path, or the built-in ones when
// path is empty.
func loadDefinitions(path string) ([]*types.Definition, error) {
	loader := rule.NewLoader()

	if path == "" {
		defs, err := loader.LoadBuiltin()
		if err != nil {
			return nil, fmt.Errorf("loading builtin switches: %w", err)
		}
		infof("loaded %d builtin switches", len(defs))
		return defs, nil
	}

	defs, err := loader.LoadPath(path)
	if err != nil {
		return nil, fmt.Errorf("loading switches from %s: %w", path, err)
	}
	infof("loaded %d switches from %s", len(defs), path)
	return defs, nil
}
