package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cunningt/fuse-bxms-integ/pkg"
	"github.com/cunningt/fuse-bxms-integ/pkg/cfg"
	"github.com/cunningt/fuse-bxms-integ/pkg/common/fmtx"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func newTestCLI() *CLI {
	config := cfg.DefaultConfig()
	return NewCLI(pkg.NewKit(config), config)
}

func TestSetOutputSnakeCasesYML(t *testing.T) {
	c := newTestCLI()

	c.SetOutput("httpUrl", "http://localhost:8181")
	assert.Contains(t, c.outputResponse.Data, "httpUrl")

	c.outputFormat = fmtx.YML
	c.SetOutput("httpUrl", "http://localhost:8181")
	assert.Contains(t, c.outputResponse.Data, "http_url")
}

func TestQueryOutput(t *testing.T) {
	c := newTestCLI()
	c.config.Values().Output.Query = "bundles[?state=='Active'].name"
	c.SetOutput("bundles", []map[string]any{
		{"name": "org.apache.camel.camel-core", "state": "Active"},
		{"name": "org.drools.core", "state": "Resolved"},
	})

	c.queryOutput()

	assert.False(t, c.outputResponse.Failed)
	assert.Equal(t, map[string]any{"query": []any{"org.apache.camel.camel-core"}}, c.outputResponse.Data)
}

func TestQueryOutputInvalid(t *testing.T) {
	c := newTestCLI()
	c.config.Values().Output.Query = "bundles[?"
	c.SetOutput("bundles", []string{})

	c.queryOutput()

	assert.True(t, c.outputResponse.Failed)
}

func TestConfigureOutputValueForcesText(t *testing.T) {
	c := newTestCLI()
	c.config.Values().Output.Format = fmtx.JSON
	c.config.Values().Output.Value = "bundles"

	c.configureOutput()

	assert.Equal(t, fmtx.Text, c.outputFormat)
}

func TestConfigureOutputYAMLWritesFile(t *testing.T) {
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	c := newTestCLI()
	file := filepath.Join(t.TempDir(), "log", "kit.log")
	c.config.Values().Output.Format = "yaml"
	c.config.Values().Output.File = file

	c.configureOutput()
	log.Info("karaf prepared")

	assert.Equal(t, fmtx.YML, c.outputFormat)
	assert.FileExists(t, file)
	assert.Contains(t, c.outputBuffer.String(), "karaf prepared")
}
