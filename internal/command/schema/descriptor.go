package schema

import (
	"slices"
	"strings"
)

// DescriptorVersion is bumped whenever the Descriptor shape changes.
const DescriptorVersion = 1

// Descriptor is the documentation form of a schema, consumed by API
// exploration UIs.
type Descriptor struct {
	Version int               `json:"version" yaml:"version"`
	Params  []ParamDescriptor `json:"params" yaml:"params"`
}

// ParamDescriptor documents one parameter.
type ParamDescriptor struct {
	Name        string   `json:"name" yaml:"name"`
	Type        Type     `json:"type" yaml:"type"`
	Required    bool     `json:"required" yaml:"required"`
	Default     any      `json:"default,omitempty" yaml:"default,omitempty"`
	Enum        []string `json:"enum,omitempty" yaml:"enum,omitempty"`
	Min         *float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max         *float64 `json:"max,omitempty" yaml:"max,omitempty"`
	Pattern     string   `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	// Summary is a one-line human form such as "enum: a|b (optional)".
	Summary string `json:"summary" yaml:"summary"`
}

// Describer is implemented by validators that can document themselves.
type Describer interface {
	Describe() Descriptor
}

// Describe returns the descriptor of the schema.
func (o *Object) Describe() Descriptor {
	d := Descriptor{Version: DescriptorVersion, Params: make([]ParamDescriptor, 0, len(o.fields))}
	for _, f := range o.fields {
		d.Params = append(d.Params, ParamDescriptor{
			Name:        f.Name,
			Type:        f.Type,
			Required:    f.Required,
			Default:     cloneValue(f.Default),
			Enum:        slices.Clone(f.Enum),
			Min:         f.Min,
			Max:         f.Max,
			Pattern:     f.Pattern,
			Description: f.Description,
			Summary:     f.summary(),
		})
	}
	return d
}

func (f Field) summary() string {
	s := string(f.Type)
	if f.Type == TypeEnum {
		s = "enum: " + strings.Join(f.Enum, "|")
	}
	if !f.Required {
		s += " (optional)"
	}
	return s
}
