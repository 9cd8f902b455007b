package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nebula/internal/command/schema"
)

func constHandler(v any) HandlerFunc {
	return func(context.Context, schema.Values) (any, error) { return v, nil }
}

func TestRegistryLookup(t *testing.T) {
	r := NewRegistry(
		Command("hello", "greets", schema.New(), constHandler("hi")),
		Command("status", "reports", nil, constHandler("ok")),
	)

	assert.True(t, r.Has("hello"))
	assert.False(t, r.Has("missing"))
	assert.Equal(t, 2, r.Len())
	assert.Equal(t, []string{"hello", "status"}, r.Names())

	def, ok := r.Get("status")
	require.True(t, ok)
	assert.NotNil(t, def.Schema, "nil schema is replaced by an empty one")
	assert.Equal(t, "reports", def.Description)

	_, ok = r.Get("missing")
	assert.False(t, ok)
}

func TestRegistryLastRegistrationWins(t *testing.T) {
	r := NewRegistry(
		Command("a", "first", nil, constHandler(1)),
		Command("b", "", nil, constHandler(2)),
	)
	r.Register("a", Definition{Handler: constHandler(3), Description: "second"})

	assert.Equal(t, []string{"a", "b"}, r.Names(), "re-registration keeps original position")
	def, _ := r.Get("a")
	assert.Equal(t, "second", def.Description)
	got, err := def.Handler(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 3, got)
}

func TestRegistryFirst(t *testing.T) {
	_, ok := NewRegistry().First()
	assert.False(t, ok)

	first, ok := NewRegistry(Command("z", "", nil, constHandler(nil)), Command("a", "", nil, constHandler(nil))).First()
	assert.True(t, ok)
	assert.Equal(t, "z", first)
}

func TestRegistryRejectsNilHandler(t *testing.T) {
	assert.Panics(t, func() { NewRegistry(Command("x", "", nil, nil)) })
}

func TestRegistryNamesIsACopy(t *testing.T) {
	r := NewRegistry(Command("a", "", nil, constHandler(nil)))
	names := r.Names()
	names[0] = "mutated"
	assert.Equal(t, []string{"a"}, r.Names())
}
