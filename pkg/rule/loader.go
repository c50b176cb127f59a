package rule

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/praetorian-inc/reswitch/pkg/types"
	"gopkg.in/yaml.v3"
)

// Loader handles loading switch definitions from YAML files.
type Loader struct {
	fs fs.FS // embedded filesystem for built-in switches
}

// NewLoader creates a loader with built-in switches from the embedded filesystem.
func NewLoader() *Loader {
	return &Loader{
		fs: builtinSwitchesFS,
	}
}

// NewLoaderWithFS creates a loader with a custom filesystem.
func NewLoaderWithFS(fsys fs.FS) *Loader {
	return &Loader{
		fs: fsys,
	}
}

// LoadDefinitions loads all switch definitions from YAML bytes.
// Returns error if YAML is invalid or no switches are present.
func (l *Loader) LoadDefinitions(data []byte) ([]*types.Definition, error) {
	var yamlFile yamlSwitchesFile
	if err := yaml.Unmarshal(data, &yamlFile); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if len(yamlFile.Switches) == 0 {
		return nil, fmt.Errorf("no switches found in YAML")
	}

	defs := make([]*types.Definition, 0, len(yamlFile.Switches))
	for _, ys := range yamlFile.Switches {
		def, err := convertYAMLSwitch(ys)
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return defs, nil
}

// LoadFile loads switch definitions from a YAML file path.
func (l *Loader) LoadFile(path string) ([]*types.Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	defs, err := l.LoadDefinitions(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return defs, nil
}

// LoadPath loads definitions from a YAML file or from every YAML file
// under a directory.
func (l *Loader) LoadPath(path string) ([]*types.Definition, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if !info.IsDir() {
		return l.LoadFile(path)
	}
	return loadDir(os.DirFS(path), ".")
}

// LoadBuiltin loads all built-in switches from the loader's filesystem.
func (l *Loader) LoadBuiltin() ([]*types.Definition, error) {
	return loadDir(l.fs, "switches")
}

// loadDir walks root in fsys and loads every .yml or .yaml file.
func loadDir(fsys fs.FS, root string) ([]*types.Definition, error) {
	var defs []*types.Definition

	err := fs.WalkDir(fsys, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if ext := filepath.Ext(path); ext != ".yml" && ext != ".yaml" {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		// Parse all switches from the file
		var yamlFile yamlSwitchesFile
		if err := yaml.Unmarshal(data, &yamlFile); err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}

		for _, ys := range yamlFile.Switches {
			def, err := convertYAMLSwitch(ys)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			defs = append(defs, def)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return defs, nil
}

// convertYAMLSwitch converts yamlSwitch to types.Definition and computes StructuralID.
func convertYAMLSwitch(ys yamlSwitch) (*types.Definition, error) {
	def := &types.Definition{
		ID:           ys.ID,
		Name:         ys.Name,
		Description:  ys.Description,
		Options:      ys.Options,
		Alternatives: make([]types.Alternative, 0, len(ys.Alternatives)),
	}

	for i, ya := range ys.Alternatives {
		alt := types.Alternative{
			Options:          ya.Options,
			Examples:         ya.Examples,
			NegativeExamples: ya.NegativeExamples,
		}

		switch {
		case ya.Pattern != nil && ya.Literal != nil:
			return nil, fmt.Errorf("switch %s alternative %d: pattern and literal are mutually exclusive", ys.ID, i)
		case ya.Pattern != nil:
			alt.Kind = types.KindPattern
			alt.Source = *ya.Pattern
		case ya.Literal != nil:
			alt.Kind = types.KindLiteral
			alt.Source = *ya.Literal
		default:
			return nil, fmt.Errorf("switch %s alternative %d: one of pattern or literal is required", ys.ID, i)
		}

		if ya.Value != nil {
			alt.Value = *ya.Value
			alt.HasValue = true
		}

		def.Alternatives = append(def.Alternatives, alt)
	}

	def.StructuralID = def.ComputeStructuralID()
	return def, nil
}
