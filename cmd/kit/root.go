package main

import (
	"strings"

	"github.com/cunningt/fuse-bxms-integ/pkg/cfg"
	"github.com/spf13/cobra"
)

func (c *CLI) rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kit",
		Short: "Provisions and inspects Karaf containers for integration testing",

		// needed to properly bind CLI flags with viper values from env and YML files
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			c.configure()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			c.exit()
			return nil
		},
	}
	cmd.AddCommand(c.versionCmd())
	cmd.AddCommand(c.configCmd())
	cmd.AddCommand(c.optionCmd())
	cmd.AddCommand(c.mavenCmd())
	cmd.AddCommand(c.featureCmd())
	cmd.AddCommand(c.karafCmd())
	cmd.AddCommand(c.bundleCmd())
	c.rootFlags(cmd)
	return cmd
}

func (c *CLI) rootFlags(cmd *cobra.Command) {
	cv := c.config.Values()

	cmd.PersistentFlags().StringVar(&(cv.Output.Format),
		"output-format", cv.Output.Format,
		"Controls output format ("+strings.Join(cfg.OutputFormats(), "|")+")")
	cmd.PersistentFlags().StringVar(&(cv.Output.File),
		"output-file", cv.Output.File,
		"Controls output file path")
	cmd.PersistentFlags().StringVar(&(cv.Output.Value),
		"output-value", cv.Output.Value,
		"Limits output to single variable")
	cmd.PersistentFlags().StringVar(&(cv.Output.Query),
		"output-query", cv.Output.Query,
		"Filters output data using JMESPath expression")
	cmd.PersistentFlags().BoolVar(&(cv.Output.NoColor),
		"no-color", cv.Output.NoColor,
		"Disables colored output")
	cmd.PersistentFlags().StringVar(&(cv.Log.Level),
		"log-level", cv.Log.Level,
		"Controls logging level")
}
