package main

import (
	"fmt"

	"github.com/cunningt/fuse-bxms-integ/pkg"
	"github.com/spf13/cobra"
)

func (c *CLI) bundleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "bundle",
		Aliases: []string{"bundles"},
		Short:   "Inspects OSGi bundles of running Karaf",
	}
	cmd.AddCommand(c.bundleListCmd())
	cmd.AddCommand(c.bundleReadCmd())
	cmd.AddCommand(c.bundleStartCmd())
	cmd.AddCommand(c.bundleStopCmd())
	cmd.AddCommand(c.bundleAwaitCmd())
	return cmd
}

func (c *CLI) bundleManager(cmd *cobra.Command) *pkg.OSGiBundleManager {
	url, _ := cmd.Flags().GetString("url")
	return c.kit.BundleManager(url)
}

func bundleDefineURLFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("url", "u", "", "Karaf HTTP URL, e.g. 'http://localhost:8181'")
	_ = cmd.MarkFlagRequired("url")
}

func bundleDefineSymbolicNameFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("symbolic-name", "n", "", "Bundle symbolic name")
	_ = cmd.MarkFlagRequired("symbolic-name")
}

func (c *CLI) bundleListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List bundles",
		Run: func(cmd *cobra.Command, args []string) {
			bundles, err := c.bundleManager(cmd).List()
			if err != nil {
				c.Error(err)
				return
			}
			c.SetOutput("bundles", bundles)
			c.Ok("bundles listed")
		},
	}
	bundleDefineURLFlag(cmd)
	return cmd
}

func (c *CLI) bundleReadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "read",
		Aliases: []string{"get", "find"},
		Short:   "Read bundle details",
		Run: func(cmd *cobra.Command, args []string) {
			symbolicName, _ := cmd.Flags().GetString("symbolic-name")
			bundle, err := c.bundleManager(cmd).Find(symbolicName)
			if err != nil {
				c.Error(err)
				return
			}
			if bundle == nil {
				c.Fail(fmt.Sprintf("bundle %s does not exist", symbolicName))
				return
			}
			c.SetOutput("bundle", bundle)
			c.Ok("bundle read")
		},
	}
	bundleDefineURLFlag(cmd)
	bundleDefineSymbolicNameFlag(cmd)
	return cmd
}

func (c *CLI) bundleStartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start bundle",
		Run: func(cmd *cobra.Command, args []string) {
			symbolicName, _ := cmd.Flags().GetString("symbolic-name")
			changed, err := c.bundleManager(cmd).New(symbolicName).StartWithChanged()
			if err != nil {
				c.Error(err)
				return
			}
			if changed {
				c.Changed("bundle started")
			} else {
				c.Ok("bundle already started")
			}
		},
	}
	bundleDefineURLFlag(cmd)
	bundleDefineSymbolicNameFlag(cmd)
	return cmd
}

func (c *CLI) bundleStopCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stop",
		Short: "Stop bundle",
		Run: func(cmd *cobra.Command, args []string) {
			symbolicName, _ := cmd.Flags().GetString("symbolic-name")
			changed, err := c.bundleManager(cmd).New(symbolicName).StopWithChanged()
			if err != nil {
				c.Error(err)
				return
			}
			if changed {
				c.Changed("bundle stopped")
			} else {
				c.Ok("bundle already stopped")
			}
		},
	}
	bundleDefineURLFlag(cmd)
	bundleDefineSymbolicNameFlag(cmd)
	return cmd
}

func (c *CLI) bundleAwaitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "await",
		Short: "Await stable bundles or the single one started",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, cancel := c.context()
			defer cancel()
			manager := c.bundleManager(cmd)
			symbolicName, _ := cmd.Flags().GetString("symbolic-name")
			if symbolicName != "" {
				if err := manager.New(symbolicName).AwaitStarted(ctx, manager.StableTimeout); err != nil {
					c.Error(err)
					return
				}
				c.Ok("bundle started")
				return
			}
			if err := manager.AwaitStable(ctx); err != nil {
				c.Error(err)
				return
			}
			c.Ok("bundles stable")
		},
	}
	bundleDefineURLFlag(cmd)
	cmd.Flags().StringP("symbolic-name", "n", "", "Bundle symbolic name; all bundles are awaited when omitted")
	return cmd
}
