package maven_test

import (
	"testing"

	"github.com/cunningt/fuse-bxms-integ/pkg/maven"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArtifactURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		artifact maven.Artifact
		want     string
	}{
		{"group and artifact", maven.NewArtifact("org.drools", "drools-core"), "mvn:org.drools/drools-core"},
		{"versioned", maven.NewArtifact("org.drools", "drools-core").WithVersion("6.2.0"), "mvn:org.drools/drools-core/6.2.0"},
		{"features", maven.NewArtifact("org.apache.camel.karaf", "apache-camel").WithVersion("2.15.1").WithType("xml/features"), "mvn:org.apache.camel.karaf/apache-camel/2.15.1/xml/features"},
		{"classifier", maven.NewArtifact("org.drools", "drools-karaf-features").WithVersion("6.2.0").WithType("xml").WithClassifier("features"), "mvn:org.drools/drools-karaf-features/6.2.0/xml/features"},
		{"classifier without version", maven.NewArtifact("org.drools", "drools-karaf-features").WithType("xml").WithClassifier("features"), "mvn:org.drools/drools-karaf-features//xml/features"},
		{"distribution", maven.NewArtifact("org.apache.karaf", "apache-karaf").WithVersion("2.3.3").WithType("tar.gz"), "mvn:org.apache.karaf/apache-karaf/2.3.3/tar.gz"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.artifact.URL())
		})
	}
}

func TestArtifactBuildersDoNotMutate(t *testing.T) {
	t.Parallel()

	base := maven.NewArtifact("org.drools", "drools-karaf-features")
	_ = base.WithVersion("1.0").WithType("xml")

	assert.Empty(t, base.Version)
	assert.Empty(t, base.Type)
}

func TestParseURL(t *testing.T) {
	t.Parallel()

	artifact, err := maven.ParseURL("mvn:org.drools/drools-karaf-features/6.2.0/xml/features")
	require.NoError(t, err)
	assert.Equal(t, maven.Artifact{GroupID: "org.drools", ArtifactID: "drools-karaf-features", Version: "6.2.0", Type: "xml", Classifier: "features"}, artifact)

	artifact, err = maven.ParseURL("mvn:org.drools/drools-core")
	require.NoError(t, err)
	assert.Equal(t, "mvn:org.drools/drools-core", artifact.URL())

	for _, invalid := range []string{"org.drools/drools-core", "mvn:org.drools", "mvn:/drools-core", "mvn:a/b/c/d/e/f", "mvn:http://repo@id=x!a/b/c"} {
		_, err = maven.ParseURL(invalid)
		assert.Error(t, err, invalid)
	}
}

func TestArtifactPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "org/apache/karaf/apache-karaf/2.3.3/apache-karaf-2.3.3.tar.gz",
		maven.NewArtifact("org.apache.karaf", "apache-karaf").WithVersion("2.3.3").WithType("tar.gz").Path())
	assert.Equal(t, "org/drools/drools-karaf-features/6.2.0/drools-karaf-features-6.2.0-features.xml",
		maven.NewArtifact("org.drools", "drools-karaf-features").WithVersion("6.2.0").WithType("xml").WithClassifier("features").Path())
	assert.Equal(t, "org/drools/drools-core/6.2.0/drools-core-6.2.0.jar",
		maven.NewArtifact("org.drools", "drools-core").WithVersion("6.2.0").Path())
}

func TestArtifactValidate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, maven.NewArtifact("g", "a").WithVersion("1").Validate())
	assert.Error(t, maven.NewArtifact("g", "a").Validate())
	assert.Error(t, maven.NewArtifact("", "a").WithVersion("1").Validate())
}
