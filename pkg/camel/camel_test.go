package camel_test

import (
	"testing"

	"github.com/cunningt/fuse-bxms-integ/pkg/camel"
	"github.com/cunningt/fuse-bxms-integ/pkg/osgi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type greeter struct {
	greeting string
}

func TestRegistryBindLookup(t *testing.T) {
	t.Parallel()

	r := camel.NewRegistry()
	require.NoError(t, r.Bind("greeter", &greeter{"hello"}))
	require.NoError(t, r.Bind("answer", 42))

	bean, ok := r.Lookup("greeter")
	assert.True(t, ok)
	assert.Equal(t, "hello", bean.(*greeter).greeting)

	_, ok = r.Lookup("missing")
	assert.False(t, ok)

	assert.Equal(t, []string{"answer", "greeter"}, r.Names())
	assert.Error(t, r.Bind(" ", 1))
}

func TestLookupAs(t *testing.T) {
	t.Parallel()

	r := camel.NewRegistry()
	require.NoError(t, r.Bind("answer", 42))

	answer, err := camel.LookupAs[int](r, "answer")
	require.NoError(t, err)
	assert.Equal(t, 42, answer)

	_, err = camel.LookupAs[string](r, "answer")
	assert.Error(t, err)
	_, err = camel.LookupAs[int](r, "missing")
	assert.Error(t, err)
}

func bundles(coreState osgi.StateRaw) osgi.StaticBundleContext {
	return osgi.StaticBundleContext{
		Installed: []osgi.Bundle{
			{ID: 0, SymbolicName: "org.apache.felix.framework", StateRaw: int(osgi.StateActive)},
			{ID: 52, SymbolicName: "org.apache.camel.camel-core", StateRaw: int(coreState)},
		},
	}
}

func TestContextFactoryCreateContext(t *testing.T) {
	t.Parallel()

	registry := camel.NewRegistry()
	require.NoError(t, registry.Bind("greeter", &greeter{"hi"}))
	factory := camel.NewContextFactory()
	factory.BundleContext = bundles(osgi.StateActive)
	factory.Registry = registry

	ctx, err := factory.CreateContext()
	require.NoError(t, err)
	assert.Equal(t, "camel-1", ctx.Name)
	assert.Equal(t, 52, ctx.Bundle.ID)
	assert.Same(t, registry, ctx.Registry)
	assert.Equal(t, factory.BundleContext, ctx.BundleContext)
}

func TestContextFactoryErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		factory *camel.ContextFactory
		want    string
	}{
		{"no bundle context", &camel.ContextFactory{CoreBundle: camel.CoreBundleDefault}, "bundle context is not set"},
		{"core not installed", &camel.ContextFactory{BundleContext: osgi.StaticBundleContext{}, CoreBundle: camel.CoreBundleDefault}, "is not installed"},
		{"core not started", &camel.ContextFactory{BundleContext: bundles(osgi.StateResolved), CoreBundle: camel.CoreBundleDefault}, "is not started"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.factory.CreateContext()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestContextFactoryDefaultRegistry(t *testing.T) {
	t.Parallel()

	factory := camel.NewContextFactory()
	factory.BundleContext = bundles(osgi.StateActive)

	ctx, err := factory.CreateContext()
	require.NoError(t, err)
	assert.Equal(t, 0, ctx.Registry.Len())
}
