package main

import (
	"github.com/cunningt/fuse-bxms-integ/pkg/karaf"
	"github.com/cunningt/fuse-bxms-integ/pkg/maven"
	"github.com/spf13/cobra"
)

func (c *CLI) featureCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "feature",
		Aliases: []string{"features"},
		Short:   "Reads Karaf features repositories",
	}
	cmd.AddCommand(c.featureListCmd())
	return cmd
}

func (c *CLI) featureListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List features defined in features repository",
		Run: func(cmd *cobra.Command, args []string) {
			url, _ := cmd.Flags().GetString("url")
			artifact, err := maven.ParseURL(url)
			if err != nil {
				c.Error(err)
				return
			}
			ctx, cancel := c.context()
			defer cancel()
			file, err := c.kit.MavenManager().Resolve(ctx, artifact)
			if err != nil {
				c.Error(err)
				return
			}
			descriptor, err := karaf.ReadFeaturesDescriptor(file)
			if err != nil {
				c.Error(err)
				return
			}
			c.SetOutput("descriptor", descriptor)
			c.Ok("features listed")
		},
	}
	mavenDefineURLFlag(cmd)
	return cmd
}
