package types

import (
	"crypto/sha1"
	"encoding/hex"
	"strings"
)

// AlternativeKind tells whether an alternative's source is a regexp or literal text.
type AlternativeKind int

const (
	KindPattern AlternativeKind = iota
	KindLiteral
)

// String returns the YAML key of the kind.
func (k AlternativeKind) String() string {
	switch k {
	case KindPattern:
		return "pattern"
	case KindLiteral:
		return "literal"
	default:
		return "unknown"
	}
}

// Definition is a switch declared in a definitions file.
type Definition struct {
	ID           string        `json:"id"`                    // e.g., "http.method"
	Name         string        `json:"name"`                  // human-readable name
	Description  string        `json:"description,omitempty"` // optional
	Options      []string      `json:"options,omitempty"`     // switch-wide regexp options
	Alternatives []Alternative `json:"alternatives"`          // in priority order
	StructuralID string        `json:"structural_id"`         // SHA-1 of options and alternatives (computed)
}

// Alternative is one entry of a switch definition.
type Alternative struct {
	Kind             AlternativeKind `json:"kind"`
	Source           string          `json:"source"`            // regexp source or literal text
	Options          []string        `json:"options,omitempty"` // pattern options, ignored for literals
	Value            string          `json:"value,omitempty"`
	HasValue         bool            `json:"has_value"`
	Examples         []string        `json:"examples,omitempty"`          // inputs that must select this alternative
	NegativeExamples []string        `json:"negative_examples,omitempty"` // inputs that must not select it
}

// ComputeStructuralID computes SHA-1 over everything that affects matching:
// switch options and, in order, each alternative's kind, source, options and value.
// Names, descriptions and examples do not contribute.
func (d *Definition) ComputeStructuralID() string {
	h := sha1.New()
	h.Write([]byte(strings.Join(d.Options, ",")))
	h.Write([]byte{0})
	for _, alt := range d.Alternatives {
		h.Write([]byte(alt.Kind.String()))
		h.Write([]byte{0})
		h.Write([]byte(alt.Source))
		h.Write([]byte{0})
		h.Write([]byte(strings.Join(alt.Options, ",")))
		h.Write([]byte{0})
		if alt.HasValue {
			h.Write([]byte{1})
			h.Write([]byte(alt.Value))
		}
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
