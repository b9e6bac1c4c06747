package main

import (
	"github.com/cunningt/fuse-bxms-integ/pkg"
	"github.com/cunningt/fuse-bxms-integ/pkg/cfg"
	"github.com/cunningt/fuse-bxms-integ/pkg/common/osx"
)

func main() {
	osx.EnvVarsLoad()

	config := cfg.NewConfig()
	kit := pkg.NewKit(config)

	cli := NewCLI(kit, config)
	cli.Exec()
}
