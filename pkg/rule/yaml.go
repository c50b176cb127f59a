package rule

// yamlAlternative is the intermediate struct for one alternative.
// Exactly one of Pattern and Literal must be set; pointers distinguish an
// absent key from an empty value.
type yamlAlternative struct {
	Pattern          *string  `yaml:"pattern,omitempty"`
	Literal          *string  `yaml:"literal,omitempty"`
	Options          []string `yaml:"options,omitempty"`
	Value            *string  `yaml:"value,omitempty"`
	Examples         []string `yaml:"examples,omitempty"`
	NegativeExamples []string `yaml:"negative_examples,omitempty"`
}

// yamlSwitch is the intermediate struct for parsing a switch definition.
// Maps YAML fields to types.Definition.
type yamlSwitch struct {
	ID           string            `yaml:"id"`
	Name         string            `yaml:"name"`
	Description  string            `yaml:"description,omitempty"`
	Options      []string          `yaml:"options,omitempty"`
	Alternatives []yamlAlternative `yaml:"alternatives"`
}

// yamlSwitchesFile represents the top-level structure of a definitions file.
type yamlSwitchesFile struct {
	Switches []yamlSwitch `yaml:"switches"`
}
