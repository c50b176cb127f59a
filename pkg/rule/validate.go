package rule

import (
	"fmt"

	"github.com/dlclark/regexp2"
	"github.com/praetorian-inc/reswitch/pkg/types"
)

// ValidateDefinition checks definition consistency and required fields.
// Returns error if the definition is invalid.
func ValidateDefinition(def *types.Definition) error {
	if def == nil {
		return fmt.Errorf("definition is nil")
	}

	// Check required fields
	if def.ID == "" {
		return fmt.Errorf("switch ID is required")
	}
	if def.Name == "" {
		return fmt.Errorf("switch %s: name is required", def.ID)
	}
	if len(def.Alternatives) == 0 {
		return fmt.Errorf("switch %s must have at least one alternative", def.ID)
	}

	switchOpts, err := ParseOptions(def.Options)
	if err != nil {
		return fmt.Errorf("switch %s: %w", def.ID, err)
	}

	for i, alt := range def.Alternatives {
		if err := validateAlternative(alt, switchOpts); err != nil {
			return fmt.Errorf("switch %s alternative %d: %w", def.ID, i, err)
		}
	}

	// Validate StructuralID matches computed value
	expectedID := def.ComputeStructuralID()
	if def.StructuralID != "" && def.StructuralID != expectedID {
		return fmt.Errorf("switch %s has inconsistent StructuralID: got %s, expected %s",
			def.ID, def.StructuralID, expectedID)
	}

	return nil
}

func validateAlternative(alt types.Alternative, switchOpts regexp2.RegexOptions) error {
	if alt.Source == "" {
		return fmt.Errorf("%s is required", alt.Kind)
	}

	switch alt.Kind {
	case types.KindLiteral:
		if len(alt.Options) > 0 {
			return fmt.Errorf("options are not allowed on literals")
		}
	case types.KindPattern:
		altOpts, err := ParseOptions(alt.Options)
		if err != nil {
			return err
		}
		if _, err := regexp2.Compile(alt.Source, switchOpts|altOpts); err != nil {
			return fmt.Errorf("invalid pattern regex: %w", err)
		}
	default:
		return fmt.Errorf("unknown alternative kind %d", alt.Kind)
	}

	return nil
}

// ValidateDefinitions validates every definition and rejects duplicate IDs.
func ValidateDefinitions(defs []*types.Definition) error {
	seen := make(map[string]bool)
	for _, def := range defs {
		if err := ValidateDefinition(def); err != nil {
			return err
		}
		if seen[def.ID] {
			return fmt.Errorf("duplicate switch ID: %s", def.ID)
		}
		seen[def.ID] = true
	}
	return nil
}
