package main

import (
	"fmt"
	"runtime/debug"

	"github.com/cunningt/fuse-bxms-integ/pkg/cfg"
	"github.com/cunningt/fuse-bxms-integ/pkg/common"
	"github.com/spf13/cobra"
)

// set by linker flags on release builds
var (
	appVersion    = "<unknown>"
	appCommit     = "<unknown>"
	appCommitDate = "<unknown>"
)

type AppInfo struct {
	Version      string `yaml:"version" json:"version"`
	Commit       string `yaml:"commit" json:"commit"`
	CommitDate   string `yaml:"commit_date" json:"commitDate"`
	GoVersion    string `yaml:"go_version" json:"goVersion"`
	KarafVersion string `yaml:"karaf_version" json:"karafVersion"`
}

func NewAppInfo() AppInfo {
	result := AppInfo{
		Version:      appVersion,
		Commit:       appCommit,
		CommitDate:   appCommitDate,
		KarafVersion: cfg.KarafVersionDefault,
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		result.GoVersion = info.GoVersion
		if result.Version == "<unknown>" && info.Main.Version != "" {
			result.Version = info.Main.Version
		}
	}
	return result
}

func (a AppInfo) String() string {
	return fmt.Sprintf("%s %s (commit %s on %s, built with %s, default Karaf %s)",
		common.AppName, a.Version, a.Commit, a.CommitDate, a.GoVersion, a.KarafVersion)
}

func (c *CLI) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print kit details including version",
		Run: func(cmd *cobra.Command, args []string) {
			c.SetOutput("app", NewAppInfo())
			c.Ok("kit details printed")
		},
	}
}
