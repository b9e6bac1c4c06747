package cfg_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cunningt/fuse-bxms-integ/pkg/cfg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	t.Setenv(cfg.FileEnvVar, filepath.Join(dir, "kit.yml"))
	t.Setenv(cfg.SystemPropsFileEnvVar, filepath.Join(dir, "system.properties"))
	t.Setenv(cfg.JavaOptsEnvVar, "")
	return dir
}

func TestReadConfigDefaults(t *testing.T) {
	isolate(t)

	config, err := cfg.ReadConfig()
	require.NoError(t, err)
	values := config.Values()

	assert.Equal(t, "2.3.3", values.Karaf.Version)
	assert.Equal(t, "Apache Karaf", values.Karaf.Name)
	assert.Equal(t, "target/paxexam/unpack/", values.Karaf.UnpackDir)
	assert.False(t, values.Karaf.UseDeployFolder)
	assert.Equal(t, "features", values.Drools.FeaturesClassifier)
	assert.Empty(t, values.Maven.LocalRepo)
	assert.Equal(t, cfg.RepositoriesDefault(), values.Maven.Repositories)
	assert.Equal(t, []string{"camel-core", "camel-spring", "camel-test"}, values.Camel.Features)
	assert.Equal(t, 5*time.Minute, values.Karaf.Container.StartupTimeout)
}

func TestReadConfigFileTemplate(t *testing.T) {
	dir := isolate(t)
	t.Setenv("KARAF_TEST_VERSION", "4.2.0")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "kit.yml"), []byte(`
karaf:
  version: [[ .Env.KARAF_TEST_VERSION | default "2.4.0" ]]
  features:
    verify: true
maven:
  versions:
    - org.drools/drools-karaf-features=6.2.0
`), 0644))

	config, err := cfg.ReadConfig()
	require.NoError(t, err)

	assert.Equal(t, "4.2.0", config.Values().Karaf.Version)
	assert.True(t, config.Values().Karaf.Features.Verify)
	assert.Equal(t, []string{"org.drools/drools-karaf-features=6.2.0"}, config.Values().Maven.Versions)
}

func TestReadConfigEnv(t *testing.T) {
	isolate(t)
	t.Setenv("KIT_KARAF_VERSION", "2.4.3")
	t.Setenv("KIT_DROOLS_FEATURES_CLASSIFIER", "features-fuse")

	config, err := cfg.ReadConfig()
	require.NoError(t, err)

	assert.Equal(t, "2.4.3", config.Values().Karaf.Version)
	assert.Equal(t, "features-fuse", config.Values().Drools.FeaturesClassifier)
}

func TestReadConfigSystemProps(t *testing.T) {
	dir := isolate(t)
	t.Setenv("KIT_KARAF_VERSION", "2.4.3")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "system.properties"), []byte("karafVersion=4.0.1\nmaven.repo.local=/tmp/m2\n"), 0644))
	t.Setenv(cfg.JavaOptsEnvVar, "-Xmx1g -Ddrools.karaf.features.classifier=features-fuse -DkarafVersion=4.0.5")

	config, err := cfg.ReadConfig()
	require.NoError(t, err)

	assert.Equal(t, "4.0.5", config.Values().Karaf.Version)
	assert.Equal(t, "/tmp/m2", config.Values().Maven.LocalRepo)
	assert.Equal(t, "features-fuse", config.Values().Drools.FeaturesClassifier)
}

func TestReadConfigSystemPropsEmpty(t *testing.T) {
	isolate(t)
	t.Setenv(cfg.JavaOptsEnvVar, "-Ddrools.karaf.features.classifier= -Dmaven.repo.local= -DkarafVersion=")

	config, err := cfg.ReadConfig()
	require.NoError(t, err)

	assert.Equal(t, "", config.Values().Drools.FeaturesClassifier)
	assert.Equal(t, "", config.Values().Maven.LocalRepo)
	assert.Equal(t, "2.3.3", config.Values().Karaf.Version)
}

func TestParseJavaOpts(t *testing.T) {
	t.Parallel()

	assert.Equal(t, map[string]string{
		"karafVersion":     "2.3.3",
		"maven.repo.local": "",
	}, cfg.ParseJavaOpts("-Xmx512m -DkarafVersion=2.3.3 -Dmaven.repo.local -D=x"))
}

func TestConfigValue(t *testing.T) {
	isolate(t)
	t.Setenv("KIT_KARAF_HTTP_PORT", "8282")

	config, err := cfg.ReadConfig()
	require.NoError(t, err)

	version, err := config.Value("karaf.version")
	require.NoError(t, err)
	assert.Equal(t, "2.3.3", version)

	port, err := config.Value("karaf.http_port")
	require.NoError(t, err)
	assert.Equal(t, "8282", port)

	_, err = config.Value("karaf.unknown")
	assert.Error(t, err)
}
