package main

import (
	"github.com/cunningt/fuse-bxms-integ/pkg/maven"
	"github.com/spf13/cobra"
)

func (c *CLI) mavenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "maven",
		Aliases: []string{"mvn"},
		Short:   "Resolves Maven artifacts",
	}
	cmd.AddCommand(c.mavenResolveCmd())
	return cmd
}

func (c *CLI) mavenResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve artifact file from local repository or download it",
		Run: func(cmd *cobra.Command, args []string) {
			url, _ := cmd.Flags().GetString("url")
			artifact, err := maven.ParseURL(url)
			if err != nil {
				c.Error(err)
				return
			}
			versions, err := c.kit.Provisioner().Versions()
			if err != nil {
				c.Error(err)
				return
			}
			if artifact.Version == "" {
				if artifact, err = versions.Resolve(artifact); err != nil {
					c.Error(err)
					return
				}
			}
			ctx, cancel := c.context()
			defer cancel()
			file, err := c.kit.MavenManager().Resolve(ctx, artifact)
			if err != nil {
				c.Error(err)
				return
			}
			c.SetOutput("artifact", artifact)
			c.SetOutput("file", file)
			c.Ok("artifact resolved")
		},
	}
	mavenDefineURLFlag(cmd)
	return cmd
}

func mavenDefineURLFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("url", "u", "", "Maven URL, e.g. 'mvn:group/artifact/version/type/classifier'")
	_ = cmd.MarkFlagRequired("url")
}
