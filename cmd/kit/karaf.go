package main

import (
	"github.com/spf13/cobra"
)

func (c *CLI) karafCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "karaf",
		Short: "Prepares and runs Karaf",
	}
	cmd.AddCommand(c.karafPrepareCmd())
	cmd.AddCommand(c.karafRunCmd())
	return cmd
}

func (c *CLI) karafPrepareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prepare",
		Short: "Unpack Karaf distribution and apply provisioning options",
		Run: func(cmd *cobra.Command, args []string) {
			options, err := c.provisionOptions(cmd)
			if err != nil {
				c.Error(err)
				return
			}
			ctx, cancel := c.context()
			defer cancel()
			distribution, err := c.kit.DistributionManager().Prepare(ctx, options)
			if err != nil {
				c.Error(err)
				return
			}
			c.SetOutput("distribution", distribution)
			c.Changed("karaf prepared")
		},
	}
	provisionDefineFlags(cmd)
	return cmd
}

func (c *CLI) karafRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Prepare Karaf then run it in container until interrupted",
		Run: func(cmd *cobra.Command, args []string) {
			options, err := c.provisionOptions(cmd)
			if err != nil {
				c.Error(err)
				return
			}
			ctx, cancel := c.context()
			defer cancel()
			distribution, err := c.kit.DistributionManager().Prepare(ctx, options)
			if err != nil {
				c.Error(err)
				return
			}
			container, err := c.kit.ContainerManager().Launch(ctx, distribution)
			if err != nil {
				c.Error(err)
				return
			}
			c.SetOutput("container", container)
			if awaitStable, _ := cmd.Flags().GetBool("await-stable"); awaitStable {
				if err := container.BundleManager().AwaitStable(ctx); err != nil {
					_ = container.Terminate(cmd.Context())
					c.Error(err)
					return
				}
			}
			<-ctx.Done()
			if err := container.Terminate(cmd.Context()); err != nil {
				c.Error(err)
				return
			}
			c.Changed("karaf run and terminated")
		},
	}
	provisionDefineFlags(cmd)
	cmd.Flags().Bool("await-stable", true, "Await stable bundles before reporting container as running")
	return cmd
}
