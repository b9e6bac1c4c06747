package tplx_test

import (
	"testing"

	"github.com/cunningt/fuse-bxms-integ/pkg/common/tplx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderString(t *testing.T) {
	t.Parallel()

	out, err := tplx.RenderString(`version: [[ .Env.KARAF | default "2.3.3" ]]`, map[string]any{"Env": map[string]string{}})
	require.NoError(t, err)
	assert.Equal(t, "version: 2.3.3", out)

	out, err = tplx.RenderString(`version: [[ .Env.KARAF | default "2.3.3" ]]`, map[string]any{"Env": map[string]string{"KARAF": "4.2.0"}})
	require.NoError(t, err)
	assert.Equal(t, "version: 4.2.0", out)
}
