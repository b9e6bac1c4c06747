//go:build int_test

package itest_test

import (
	"testing"

	"github.com/cunningt/fuse-bxms-integ/pkg"
	"github.com/cunningt/fuse-bxms-integ/pkg/itest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartKarafWithCamel(t *testing.T) {
	kit := pkg.DefaultKit()
	p := kit.Provisioner()

	options, err := p.Options(pkg.ProvisionOpts{Camel: []string{}})
	require.NoError(t, err)

	s := itest.Start(t, kit, options)

	b, err := s.InstalledBundle(s.CamelBundle)
	require.NoError(t, err)
	assert.True(t, b.Stable())

	ctx, err := s.CreateCamelContext()
	require.NoError(t, err)
	assert.Equal(t, b.ID, ctx.Bundle.ID)
}
