package pkg_test

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/cunningt/fuse-bxms-integ/pkg"
	"github.com/cunningt/fuse-bxms-integ/pkg/cfg"
	"github.com/cunningt/fuse-bxms-integ/pkg/karaf"
	"github.com/cunningt/fuse-bxms-integ/pkg/maven"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const standardFeaturesXML = `<?xml version="1.0" encoding="UTF-8"?>
<features name="karaf-2.3.3" xmlns="http://karaf.apache.org/xmlns/features/v1.0.0">
  <feature name="config" version="2.3.3"/>
  <feature name="ssh" version="2.3.3"/>
  <feature name="webconsole" version="2.3.3"/>
</features>
`

var distributionFiles = map[string]string{
	"apache-karaf-2.3.3/bin/karaf": "#!/bin/sh\n",
	"apache-karaf-2.3.3/etc/org.apache.karaf.features.cfg": "featuresRepositories=mvn:org.apache.karaf.assemblies.features/standard/2.3.3/xml/features\n" +
		"featuresBoot=config,ssh\n",
	"apache-karaf-2.3.3/etc/org.ops4j.pax.url.mvn.cfg":                "org.ops4j.pax.url.mvn.repositories=http://repo1.maven.org/maven2@id=central\n",
	"apache-karaf-2.3.3/etc/org.apache.felix.fileinstall-deploy.cfg":  "felix.fileinstall.dir=${karaf.base}/deploy\n",
	"apache-karaf-2.3.3/etc/users.properties":                         "karaf=karaf,admin\n",
	"apache-karaf-2.3.3/deploy/README":                                "deploy here\n",
	"apache-karaf-2.3.3/system/org/apache/karaf/assemblies/features/standard/2.3.3/standard-2.3.3-features.xml": standardFeaturesXML,
}

func writeDistribution(t *testing.T, file string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(file), 0755))
	out, err := os.Create(file)
	require.NoError(t, err)
	defer out.Close()
	gz := gzip.NewWriter(out)
	tw := tar.NewWriter(gz)
	for name, content := range distributionFiles {
		require.NoError(t, tw.WriteHeader(&tar.Header{Name: name, Mode: 0755, Size: int64(len(content)), Typeflag: tar.TypeReg}))
		_, err := tw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())
}

func newDistributionKit(t *testing.T) (*pkg.Kit, karaf.DistributionOption) {
	t.Helper()

	kit := pkg.NewKit(cfg.DefaultConfig())
	kit.MavenManager().LocalRepo = t.TempDir()
	kit.MavenManager().Repositories = nil
	kit.BaseOpts().TmpDir = t.TempDir()
	kit.BaseOpts().CacheDir = t.TempDir()
	kit.DistributionManager().CacheDir = kit.BaseOpts().CacheDir

	framework := maven.NewArtifact("org.apache.karaf", "apache-karaf").WithVersion("2.3.3").WithType("tar.gz")
	writeDistribution(t, filepath.Join(kit.MavenManager().LocalRepo, filepath.FromSlash(framework.Path())))

	return kit, karaf.DistributionOption{
		FrameworkURL: framework,
		KarafVersion: "2.3.3",
		Name:         "Apache Karaf",
		UnpackDir:    t.TempDir(),
	}
}

func TestDistributionManagerPrepare(t *testing.T) {
	t.Parallel()

	kit, distribution := newDistributionKit(t)
	dm := kit.DistributionManager()
	dm.VerifyFeatures = true
	dm.User = "tester"
	dm.Password = "secret"

	prepared, err := dm.Prepare(context.Background(),
		distribution,
		karaf.Features("", "ssh"),
		karaf.ConfigFilePut(karaf.MavenConfigFile, karaf.MavenRepositoriesKey, "https://repo1.maven.org/maven2@id=central"),
	)
	require.NoError(t, err)
	home := prepared.Home

	assert.Equal(t, distribution, prepared.Option)
	assert.Equal(t, distribution.UnpackDir, filepath.Dir(home.Dir))
	assert.FileExists(t, home.Path("bin/karaf"))
	assert.NoFileExists(t, home.Path("deploy/README"))
	assert.NoFileExists(t, home.Path(karaf.DeployConfigFile))

	features, err := home.Features()
	require.NoError(t, err)
	assert.Equal(t, []string{"config", "ssh", "webconsole"}, features.Boot)

	port, err := home.ConfigValue(karaf.WebConfigFile, karaf.WebHTTPPortKey)
	require.NoError(t, err)
	assert.Equal(t, "8181", port)

	repos, err := home.ConfigValue(karaf.MavenConfigFile, karaf.MavenRepositoriesKey)
	require.NoError(t, err)
	assert.Equal(t, "https://repo1.maven.org/maven2@id=central", repos)

	password, err := home.ConfigValue(karaf.UsersFile, "tester")
	require.NoError(t, err)
	assert.Equal(t, "secret,admin", password)
}

func TestDistributionManagerPrepareReusesCache(t *testing.T) {
	t.Parallel()

	kit, distribution := newDistributionKit(t)
	dm := kit.DistributionManager()

	first, err := dm.Prepare(context.Background(), distribution)
	require.NoError(t, err)
	second, err := dm.Prepare(context.Background(), distribution)
	require.NoError(t, err)

	assert.NotEqual(t, first.Home.Dir, second.Home.Dir)
	assert.FileExists(t, filepath.Join(dm.CacheDir, "distribution", "apache-karaf-2.3.3.lock.yml"))
}

func TestDistributionManagerPrepareInvalidatesCacheOnFailedUnpack(t *testing.T) {
	t.Parallel()

	kit, distribution := newDistributionKit(t)
	dm := kit.DistributionManager()
	lockFile := filepath.Join(dm.CacheDir, "distribution", "apache-karaf-2.3.3.lock.yml")

	_, err := dm.Prepare(context.Background(), distribution)
	require.NoError(t, err)
	require.FileExists(t, lockFile)

	archive := filepath.Join(kit.MavenManager().LocalRepo, filepath.FromSlash(distribution.FrameworkURL.Path()))
	require.NoError(t, os.WriteFile(archive, []byte("not a gzip stream"), 0644))

	_, err = dm.Prepare(context.Background(), distribution)
	assert.Error(t, err)
	assert.NoFileExists(t, lockFile)
}

func TestDistributionManagerVerifyMissingFeature(t *testing.T) {
	t.Parallel()

	kit, distribution := newDistributionKit(t)
	dm := kit.DistributionManager()
	dm.VerifyFeatures = true

	_, err := dm.Prepare(context.Background(), distribution, karaf.Features("", "http-whiteboard"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "features [http-whiteboard] are not defined")
}

func TestDistributionManagerPrepareRequiresDistribution(t *testing.T) {
	t.Parallel()

	kit, _ := newDistributionKit(t)

	_, err := kit.DistributionManager().Prepare(context.Background(), karaf.Features("", "ssh"))
	assert.Error(t, err)
}
