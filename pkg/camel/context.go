// Package camel configures Camel test contexts running on top of an OSGi bundle context
package camel

import (
	"fmt"

	"github.com/cunningt/fuse-bxms-integ/pkg/osgi"
	"github.com/samber/lo"
)

const (
	CoreBundleDefault  = "org.apache.camel.camel-core"
	ContextNameDefault = "camel-1"
)

// Context is a Camel context bound to the bundle context of the application under test.
type Context struct {
	Name          string             `yaml:"name" json:"name"`
	Bundle        osgi.Bundle        `yaml:"bundle" json:"bundle"`
	Registry      *Registry          `yaml:"-" json:"-"`
	BundleContext osgi.BundleContext `yaml:"-" json:"-"`
}

func (c Context) String() string {
	return fmt.Sprintf("camel context '%s' (core %s, beans: %d)", c.Name, c.Bundle, c.Registry.Len())
}

type ContextFactory struct {
	BundleContext osgi.BundleContext
	Registry      *Registry
	CoreBundle    string
	Name          string
}

func NewContextFactory() *ContextFactory {
	return &ContextFactory{
		CoreBundle: CoreBundleDefault,
		Name:       ContextNameDefault,
	}
}

func (f *ContextFactory) CreateContext() (*Context, error) {
	if f.BundleContext == nil {
		return nil, fmt.Errorf("cannot create Camel context as bundle context is not set")
	}
	registry := f.Registry
	if registry == nil {
		registry = NewRegistry()
	}
	bundles, err := f.BundleContext.Bundles()
	if err != nil {
		return nil, fmt.Errorf("cannot create Camel context: %w", err)
	}
	core, found := lo.Find(bundles, func(b osgi.Bundle) bool { return b.SymbolicName == f.CoreBundle })
	if !found {
		return nil, fmt.Errorf("cannot create Camel context as bundle '%s' is not installed", f.CoreBundle)
	}
	if !core.Stable() {
		return nil, fmt.Errorf("cannot create Camel context as %s is not started", core)
	}
	return &Context{
		Name:          f.Name,
		Bundle:        core,
		Registry:      registry,
		BundleContext: f.BundleContext,
	}, nil
}
