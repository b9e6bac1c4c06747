package cfg

import (
	"time"

	"github.com/cunningt/fuse-bxms-integ/pkg/common"
	"github.com/cunningt/fuse-bxms-integ/pkg/common/fmtx"
	"github.com/cunningt/fuse-bxms-integ/pkg/maven"
	"github.com/spf13/viper"
)

const (
	KarafVersionDefault       = "2.3.3"
	KarafNameDefault          = "Apache Karaf"
	KarafUnpackDirDefault     = "target/paxexam/unpack/"
	DroolsClassifierDefault   = "features"
	CamelBundleDefault        = "org.apache.camel.camel-core"
	KarafUserDefault          = "karaf"
	KarafPasswordDefault      = "karaf"
	KarafHTTPPortDefault      = 8181
	OutputFileDefault         = common.LogFile
	ContainerStartupTimeout   = time.Minute * 5
	BundleStableTimeout       = time.Minute * 3
	BundleStableCheckInterval = time.Second * 5
)

// RepositoriesDefault are the remote repositories Karaf resolves 'mvn:' URLs from.
func RepositoriesDefault() []string {
	return []string{
		"https://repo1.maven.org/maven2@id=central",
		"http://svn.apache.org/repos/asf/servicemix/m2-repo@id=servicemix",
		"http://repository.springsource.com/maven/bundles/release@id=springsource.release",
		"http://repository.springsource.com/maven/bundles/external@id=springsource.external",
		"https://oss.sonatype.org/content/repositories/releases/@id=sonatype",
		"http://download.eng.bos.redhat.com/brewroot/repos/jb-fuse-6.2-build/latest/maven@id=fuse62brew",
		"https://repository.jboss.org/nexus/content/groups/ea@id=ea",
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.timestamp_format", "2006-01-02 15:04:05")
	v.SetDefault("log.full_timestamp", true)

	v.SetDefault("base.tmp_dir", common.TmpDir)
	v.SetDefault("base.cache_dir", common.CacheDir)

	v.SetDefault("output.format", fmtx.Text)
	v.SetDefault("output.file", OutputFileDefault)
	v.SetDefault("output.value", "")
	v.SetDefault("output.query", "")

	v.SetDefault("http.timeout", time.Minute)

	v.SetDefault("maven.local_repo", "")
	v.SetDefault("maven.repositories", RepositoriesDefault())
	v.SetDefault("maven.dependencies_file", maven.DependenciesFileDefault)
	v.SetDefault("maven.verify_checksum", true)

	v.SetDefault("karaf.version", KarafVersionDefault)
	v.SetDefault("karaf.name", KarafNameDefault)
	v.SetDefault("karaf.unpack_dir", KarafUnpackDirDefault)
	v.SetDefault("karaf.use_deploy_folder", false)
	v.SetDefault("karaf.user", KarafUserDefault)
	v.SetDefault("karaf.password", KarafPasswordDefault)
	v.SetDefault("karaf.http_port", KarafHTTPPortDefault)
	v.SetDefault("karaf.features.verify", false)
	v.SetDefault("karaf.features.boot", []string{"webconsole"})
	v.SetDefault("karaf.container.startup_timeout", ContainerStartupTimeout)
	v.SetDefault("karaf.bundle.stable_timeout", BundleStableTimeout)
	v.SetDefault("karaf.bundle.stable_interval", BundleStableCheckInterval)

	v.SetDefault("camel.bundle", CamelBundleDefault)
	v.SetDefault("camel.features", []string{"camel-core", "camel-spring", "camel-test"})

	v.SetDefault("drools.features_classifier", DroolsClassifierDefault)
}
