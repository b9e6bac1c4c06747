package itest_test

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/cunningt/fuse-bxms-integ/pkg"
	"github.com/cunningt/fuse-bxms-integ/pkg/camel"
	"github.com/cunningt/fuse-bxms-integ/pkg/cfg"
	"github.com/cunningt/fuse-bxms-integ/pkg/itest"
	"github.com/cunningt/fuse-bxms-integ/pkg/osgi"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var installed = osgi.StaticBundleContext{
	Self: 61,
	Installed: []osgi.Bundle{
		{ID: 0, SymbolicName: "org.apache.felix.framework", StateRaw: int(osgi.StateActive)},
		{ID: 52, SymbolicName: "org.apache.camel.camel-core", StateRaw: int(osgi.StateActive)},
		{ID: 60, SymbolicName: "org.drools.core", StateRaw: int(osgi.StateActive)},
		{ID: 61, SymbolicName: "org.drools.core", StateRaw: int(osgi.StateResolved)},
	},
}

func newSupport(bundleContext osgi.BundleContext) *itest.Support {
	return itest.New(pkg.NewKit(cfg.DefaultConfig()), bundleContext)
}

func TestInstalledBundle(t *testing.T) {
	s := newSupport(installed)

	b, err := s.InstalledBundle("org.drools.core")
	require.NoError(t, err)
	assert.Equal(t, 60, b.ID)
}

func TestInstalledBundleMissing(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()

	s := newSupport(installed)

	_, err := s.InstalledBundle("org.kie.api")
	require.Error(t, err)
	assert.Equal(t, "bundle org.kie.api does not exist", err.Error())

	warnings := lo.FilterMap(hook.AllEntries(), func(e *log.Entry, _ int) (string, bool) {
		return e.Message, e.Level == log.WarnLevel
	})
	assert.Equal(t, []string{
		"Bundle: org.apache.felix.framework",
		"Bundle: org.apache.camel.camel-core",
		"Bundle: org.drools.core",
		"Bundle: org.drools.core",
	}, warnings)
}

func TestInstalledBundleOf(t *testing.T) {
	s := newSupport(installed)
	jar := filepath.Join(t.TempDir(), "camel-core.jar")
	writeJar(t, jar, "Manifest-Version: 1.0\nBundle-SymbolicName: org.apache.camel.camel-core\nBundle-Version: 2.15.1\n\n")

	b, err := s.InstalledBundleOf(jar)
	require.NoError(t, err)
	assert.Equal(t, 52, b.ID)

	_, err = s.InstalledBundleOf(filepath.Join(t.TempDir(), "missing.jar"))
	assert.Error(t, err)
}

func TestCreateCamelContext(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()

	s := newSupport(installed)
	s.RegistryCustomizer = func(registry *camel.Registry) error {
		return registry.Bind("ruleService", "rules")
	}

	ctx, err := s.CreateCamelContext()
	require.NoError(t, err)
	assert.Equal(t, 52, ctx.Bundle.ID)
	assert.Equal(t, []string{"ruleService"}, ctx.Registry.Names())

	messages := lo.Map(hook.AllEntries(), func(e *log.Entry, _ int) string { return e.Message })
	assert.Contains(t, messages, "Application installed as bundle id: 61")
}

func TestCreateCamelContextWithoutBundleContext(t *testing.T) {
	s := newSupport(nil)

	_, err := s.CreateCamelContext()
	assert.Error(t, err)
	_, err = s.InstalledBundle("org.drools.core")
	assert.Error(t, err)
	assert.Error(t, s.AwaitBundlesStable(context.Background()))
}

func TestCreateRegistryCustomizerError(t *testing.T) {
	s := newSupport(installed)
	s.RegistryCustomizer = func(registry *camel.Registry) error {
		return registry.Bind("", "nameless")
	}

	_, err := s.CreateCamelContext()
	assert.Error(t, err)
}

func writeJar(t *testing.T, file string, manifest string) {
	t.Helper()

	out, err := os.Create(file)
	require.NoError(t, err)
	defer out.Close()

	zw := zip.NewWriter(out)
	w, err := zw.Create("META-INF/MANIFEST.MF")
	require.NoError(t, err)
	_, err = w.Write([]byte(manifest))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
}
