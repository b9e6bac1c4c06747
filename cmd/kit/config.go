package main

import (
	"fmt"

	"github.com/cunningt/fuse-bxms-integ/pkg/cfg"
	"github.com/cunningt/fuse-bxms-integ/pkg/common/tplx"
	"github.com/spf13/cobra"
)

func (c *CLI) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Aliases: []string{"cfg"},
		Short:   "Manages configuration",
	}
	cmd.AddCommand(c.configListCmd())
	cmd.AddCommand(c.configValueCmd())
	return cmd
}

func (c *CLI) configListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls", "values"},
		Short:   "List effective configuration values",
		Run: func(cmd *cobra.Command, args []string) {
			c.SetOutput("file", cfg.File())
			c.SetOutput("system_props_file", cfg.SystemPropsFile())
			c.SetOutput("values", c.config.AllSettings())
			c.Ok("config values listed")
		},
	}
	return cmd
}

func (c *CLI) configValueCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "value",
		Short:   "Read configuration value",
		Aliases: []string{"get"},
		Run: func(cmd *cobra.Command, args []string) {
			key, _ := cmd.Flags().GetString("key")
			template, _ := cmd.Flags().GetString("template")
			if key == "" && template == "" {
				c.Fail("flag 'key' or 'template' need to be specified")
				return
			}
			var (
				value string
				err   error
			)
			if key != "" {
				value, err = c.config.Value(key)
				if err != nil {
					c.Error(fmt.Errorf("cannot read config value using key '%s': %w", key, err))
					return
				}
			} else {
				value, err = tplx.RenderString(template, c.config.AllSettings())
				if err != nil {
					c.Error(fmt.Errorf("cannot read config value using template '%s': %w", template, err))
					return
				}
			}
			c.SetOutput("value", value)
			c.Ok("config value read")
		},
	}
	cmd.Flags().StringP("key", "k", "", "Value key, e.g. 'karaf.version'")
	cmd.Flags().StringP("template", "t", "", "Value template, e.g. '[[ .karaf.version ]]'")
	cmd.MarkFlagsMutuallyExclusive("key", "template")
	return cmd
}
