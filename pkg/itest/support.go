// Package itest supports integration tests of applications deployed to Karaf
package itest

import (
	"context"
	"fmt"
	"testing"

	"github.com/cunningt/fuse-bxms-integ/pkg"
	"github.com/cunningt/fuse-bxms-integ/pkg/camel"
	"github.com/cunningt/fuse-bxms-integ/pkg/karaf"
	"github.com/cunningt/fuse-bxms-integ/pkg/osgi"
	log "github.com/sirupsen/logrus"
)

// RegistryCustomizer binds test-specific beans before the Camel context is created.
type RegistryCustomizer func(registry *camel.Registry) error

// Support is shared by the integration tests, it gives them bundle lookups and Camel contexts.
type Support struct {
	kit *pkg.Kit

	BundleContext      osgi.BundleContext
	RegistryCustomizer RegistryCustomizer
	CamelBundle        string

	container *pkg.Container
}

func New(kit *pkg.Kit, bundleContext osgi.BundleContext) *Support {
	return &Support{
		kit: kit,

		BundleContext: bundleContext,
		CamelBundle:   kit.Config().Values().Camel.Bundle,
	}
}

func (s *Support) Kit() *pkg.Kit {
	return s.kit
}

func (s *Support) Provisioner() *pkg.Provisioner {
	return s.kit.Provisioner()
}

func (s *Support) Container() *pkg.Container {
	return s.container
}

// InstalledBundle returns the first bundle with the given symbolic name.
func (s *Support) InstalledBundle(symbolicName string) (*osgi.Bundle, error) {
	bundles, err := s.bundles()
	if err != nil {
		return nil, err
	}
	for _, b := range bundles {
		if b.SymbolicName == symbolicName {
			return &b, nil
		}
	}
	for _, b := range bundles {
		log.Warnf("Bundle: %s", b.SymbolicName)
	}
	return nil, fmt.Errorf("bundle %s does not exist", symbolicName)
}

// InstalledBundleOf looks up the bundle built from the given JAR file.
func (s *Support) InstalledBundleOf(jar string) (*osgi.Bundle, error) {
	manifest, err := osgi.ReadBundleManifest(jar)
	if err != nil {
		return nil, err
	}
	return s.InstalledBundle(manifest.SymbolicName)
}

func (s *Support) bundles() ([]osgi.Bundle, error) {
	if s.BundleContext == nil {
		return nil, fmt.Errorf("cannot list bundles as bundle context is not set")
	}
	return s.BundleContext.Bundles()
}

func (s *Support) CreateRegistry() (*camel.Registry, error) {
	registry := camel.NewRegistry()
	if s.RegistryCustomizer != nil {
		if err := s.RegistryCustomizer(registry); err != nil {
			return nil, fmt.Errorf("cannot customize Camel registry: %w", err)
		}
	}
	return registry, nil
}

func (s *Support) CreateCamelContext() (*camel.Context, error) {
	if s.BundleContext == nil {
		return nil, fmt.Errorf("cannot create Camel context as bundle context is not set")
	}
	log.Infof("Get the bundleContext is %v", s.BundleContext)
	self, err := s.BundleContext.Bundle()
	if err != nil {
		return nil, fmt.Errorf("cannot create Camel context: %w", err)
	}
	log.Infof("Application installed as bundle id: %d", self.ID)

	registry, err := s.CreateRegistry()
	if err != nil {
		return nil, err
	}
	factory := camel.NewContextFactory()
	factory.BundleContext = s.BundleContext
	factory.Registry = registry
	if s.CamelBundle != "" {
		factory.CoreBundle = s.CamelBundle
	}
	return factory.CreateContext()
}

// AwaitBundlesStable waits for the bundles of the launched container.
func (s *Support) AwaitBundlesStable(ctx context.Context) error {
	bm, ok := s.BundleContext.(*pkg.OSGiBundleManager)
	if !ok {
		return fmt.Errorf("cannot await stable bundles as bundle context is not backed by a running Karaf")
	}
	return bm.AwaitStable(ctx)
}

// Launch prepares Karaf home from options and runs it; bundle context is bound to the container.
func (s *Support) Launch(ctx context.Context, options ...karaf.Option) error {
	distribution, err := s.kit.DistributionManager().Prepare(ctx, options...)
	if err != nil {
		return err
	}
	container, err := s.kit.ContainerManager().Launch(ctx, distribution)
	if err != nil {
		return err
	}
	s.container = container
	s.BundleContext = container.BundleManager()
	return nil
}

func (s *Support) Terminate(ctx context.Context) error {
	if s.container == nil {
		return nil
	}
	err := s.container.Terminate(ctx)
	s.container = nil
	return err
}

// Start launches Karaf for the test, waits for stable bundles and terminates it on cleanup.
func Start(t testing.TB, kit *pkg.Kit, options ...karaf.Option) *Support {
	t.Helper()

	ctx := context.Background()
	s := New(kit, nil)
	t.Cleanup(func() {
		if err := s.Terminate(ctx); err != nil {
			t.Errorf("cannot terminate Karaf: %s", err)
		}
	})
	if err := s.Launch(ctx, options...); err != nil {
		t.Fatalf("cannot launch Karaf: %s", err)
	}
	if err := s.AwaitBundlesStable(ctx); err != nil {
		t.Fatalf("Karaf is not ready: %s", err)
	}
	return s
}
