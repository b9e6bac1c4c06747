package main

import (
	"strings"

	"github.com/cunningt/fuse-bxms-integ/pkg"
	"github.com/cunningt/fuse-bxms-integ/pkg/karaf"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func (c *CLI) optionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "option",
		Aliases: []string{"opt"},
		Short:   "Builds Karaf provisioning options",
	}
	cmd.AddCommand(c.optionListCmd())
	return cmd
}

func (c *CLI) optionListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List provisioning options of Karaf distribution and requested features",
		Run: func(cmd *cobra.Command, args []string) {
			options, err := c.provisionOptions(cmd)
			if err != nil {
				c.Error(err)
				return
			}
			c.SetOutput("options", lo.Map(karaf.Flatten(options), func(o karaf.Option, _ int) string { return o.String() }))
			c.Ok("options listed")
		},
	}
	provisionDefineFlags(cmd)
	return cmd
}

func provisionDefineFlags(cmd *cobra.Command) {
	cmd.Flags().StringSlice("camel", nil, "Load Camel features along with the extra ones")
	cmd.Flags().StringSlice("brms", nil, "Load BRMS features along with the extra ones")
	cmd.Flags().StringSlice("drools", nil, "Load Drools features along with the extra ones")
	cmd.Flags().Bool("brms-repo", false, "Register BRMS features repository")
	cmd.Flags().Bool("drools-repo", false, "Register Drools features repository")
	cmd.Flags().Lookup("camel").NoOptDefVal = " "
	cmd.Flags().Lookup("brms").NoOptDefVal = " "
	cmd.Flags().Lookup("drools").NoOptDefVal = " "
}

func (c *CLI) provisionOptions(cmd *cobra.Command) (karaf.CompositeOption, error) {
	opts := pkg.ProvisionOpts{}
	opts.Camel = provisionFeaturesFlag(cmd, "camel")
	opts.Brms = provisionFeaturesFlag(cmd, "brms")
	opts.Drools = provisionFeaturesFlag(cmd, "drools")
	opts.BrmsRepo, _ = cmd.Flags().GetBool("brms-repo")
	opts.DroolsRepo, _ = cmd.Flags().GetBool("drools-repo")
	return c.kit.Provisioner().Options(opts)
}

// provisionFeaturesFlag distinguishes not requested (nil) from requested without extra features (empty)
func provisionFeaturesFlag(cmd *cobra.Command, name string) []string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	values, _ := cmd.Flags().GetStringSlice(name)
	return lo.Compact(lo.Map(values, func(v string, _ int) string { return strings.TrimSpace(v) }))
}
