package command

import "nebula/internal/command/schema"

// Placeholders reported when a schema cannot describe itself.
const (
	ComplexSchema          = "complex schema"
	DescriptionUnavailable = "schema description unavailable"
)

// Info documents one command. Schema is a schema.Descriptor, or one of the
// placeholder strings for validators that do not implement schema.Describer.
type Info struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Schema      any    `json:"schema" yaml:"schema"`
}

// Catalog lists a processor's commands for API exploration UIs.
type Catalog struct {
	SelectorKey    string `json:"selectorKey" yaml:"selectorKey"`
	DefaultCommand string `json:"defaultCommand" yaml:"defaultCommand"`
	Commands       []Info `json:"commands" yaml:"commands"`
}

// Describe returns Info for every registered command, in registration order.
func (r *Registry) Describe() []Info {
	out := make([]Info, 0, len(r.order))
	for _, name := range r.order {
		def := r.defs[name]
		out = append(out, Info{
			Name:        name,
			Description: def.Description,
			Schema:      describeSchema(def.Schema),
		})
	}
	return out
}

// Catalog describes the processor's registry together with its selection rules.
func (p *Processor) Catalog() Catalog {
	return Catalog{
		SelectorKey:    p.selectorKey,
		DefaultCommand: p.SelectCommand(""),
		Commands:       p.registry.Describe(),
	}
}

func describeSchema(v schema.Validator) (desc any) {
	d, ok := v.(schema.Describer)
	if !ok {
		return ComplexSchema
	}
	defer func() {
		if recover() != nil {
			desc = DescriptionUnavailable
		}
	}()
	return d.Describe()
}
