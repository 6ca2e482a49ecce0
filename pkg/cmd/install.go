package cmd

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/bachdx2812/ai-skills-aggregator/internal/apperr"
	"github.com/bachdx2812/ai-skills-aggregator/internal/types"
)

func init() {
	installCmd.Flags().StringP("agent", "a", "claude", "target agent")
	uninstallCmd.Flags().StringP("agent", "a", "claude", "target agent")
	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(uninstallCmd)
}

var installCmd = &cobra.Command{
	Use:   "install <registry-url> <skill-id>",
	Short: "Install a skill from a remote registry",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		agent, _ := cmd.Flags().GetString("agent")
		registryURL, skillID := args[0], args[1]

		svc, err := newRegistryService()
		if err != nil {
			return err
		}

		manifest, err := svc.FetchRegistry(cmd.Context(), types.RegistryConfig{URL: registryURL, Enabled: true})
		if err != nil {
			return err
		}

		remote, ok := manifest.FindSkill(skillID)
		if !ok {
			return apperr.NotFound("skill %s not found in %s", skillID, registryURL)
		}

		installed, err := svc.InstallSkill(cmd.Context(), remote, registryURL, agent)
		if err != nil {
			return err
		}

		color.Green("Installed %s %s for %s at %s", remote.Name, installed.Version, installed.Agent, installed.InstalledPath)
		return nil
	},
}

var uninstallCmd = &cobra.Command{
	Use:   "uninstall <skill-id>",
	Short: "Uninstall a skill installed from a registry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		agent, _ := cmd.Flags().GetString("agent")

		svc, err := newRegistryService()
		if err != nil {
			return err
		}
		if err := svc.UninstallSkill(args[0], agent); err != nil {
			return err
		}

		color.Yellow("Uninstalled %s for %s", args[0], agent)
		return nil
	},
}
