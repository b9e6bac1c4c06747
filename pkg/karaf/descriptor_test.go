package karaf_test

import (
	"strings"
	"testing"

	"github.com/cunningt/fuse-bxms-integ/pkg/karaf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const droolsFeaturesXML = `<?xml version="1.0" encoding="UTF-8"?>
<features name="drools-features-6.2.0" xmlns="http://karaf.apache.org/xmlns/features/v1.0.0">
  <repository>mvn:org.apache.camel.karaf/apache-camel/2.15.1/xml/features</repository>
  <feature name="drools-common" version="6.2.0">
    <bundle>mvn:org.kie/kie-api/6.2.0</bundle>
  </feature>
  <feature name="drools-module" version="6.2.0">
    <feature>drools-common</feature>
  </feature>
  <feature name="kie-spring"/>
</features>
`

func TestParseFeaturesDescriptor(t *testing.T) {
	t.Parallel()

	descriptor, err := karaf.ParseFeaturesDescriptor(strings.NewReader(droolsFeaturesXML))
	require.NoError(t, err)

	assert.Equal(t, "drools-features-6.2.0", descriptor.Name)
	assert.Equal(t, []string{"mvn:org.apache.camel.karaf/apache-camel/2.15.1/xml/features"}, descriptor.Repositories)
	assert.Equal(t, []string{"drools-common", "drools-module", "kie-spring"}, descriptor.Names())
	assert.Equal(t, "kie-spring/0.0.0", descriptor.Features[2].String())
	assert.True(t, descriptor.Has("drools-module"))
	assert.Equal(t, []string{"camel-core"}, descriptor.Missing([]string{"drools-module", "camel-core"}))
}

func TestParseFeaturesDescriptorInvalid(t *testing.T) {
	t.Parallel()

	_, err := karaf.ParseFeaturesDescriptor(strings.NewReader(`<project><name>x</name></project>`))
	assert.Error(t, err)
}
