package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nebula/internal/command/schema"
)

type opaqueValidator struct{}

func (opaqueValidator) SafeParse(raw map[string]any) schema.Result {
	return schema.Result{Success: true, Data: schema.Values{}}
}

type brokenDescriber struct{ opaqueValidator }

func (brokenDescriber) Describe() schema.Descriptor { panic("unsupported composition") }

func TestCatalog(t *testing.T) {
	r := NewRegistry(
		Command("hello", "Simple greeting", schema.New(schema.String("name", schema.Default("World"))), constHandler(nil)),
		Command("custom", "", opaqueValidator{}, constHandler(nil)),
		Command("broken", "", brokenDescriber{}, constHandler(nil)),
	)
	p, err := NewProcessor(r, WithSelectorKey("action"))
	require.NoError(t, err)

	cat := p.Catalog()
	assert.Equal(t, "action", cat.SelectorKey)
	assert.Equal(t, "hello", cat.DefaultCommand)
	require.Len(t, cat.Commands, 3)

	hello := cat.Commands[0]
	assert.Equal(t, "hello", hello.Name)
	assert.Equal(t, "Simple greeting", hello.Description)
	desc, ok := hello.Schema.(schema.Descriptor)
	require.True(t, ok)
	require.Len(t, desc.Params, 1)
	assert.Equal(t, "string (optional)", desc.Params[0].Summary)

	assert.Equal(t, ComplexSchema, cat.Commands[1].Schema)
	assert.Equal(t, DescriptionUnavailable, cat.Commands[2].Schema)
}

func TestCatalogEmptyRegistry(t *testing.T) {
	p, err := NewProcessor(NewRegistry())
	require.NoError(t, err)

	cat := p.Catalog()
	assert.Equal(t, HelpCommand, cat.DefaultCommand)
	assert.Empty(t, cat.Commands)
}
