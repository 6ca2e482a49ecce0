package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"
)

func init() {
	updateCmd.Flags().Bool("apply", false, "apply all available updates")
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(rollbackCmd)
	rollbackCmd.Flags().StringP("agent", "a", "claude", "target agent")
	rootCmd.AddCommand(skipCmd)
}

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Check installed skills for available updates",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		apply, _ := cmd.Flags().GetBool("apply")

		engine, err := newEngine()
		if err != nil {
			return err
		}

		result := engine.CheckAllUpdates(cmd.Context())
		if result.Err != "" {
			return fmt.Errorf("update check failed: %s", result.Err)
		}

		if len(result.AvailableUpdates) == 0 {
			fmt.Println("All skills are up to date.")
			return nil
		}

		cnf := tablewriter.Config{
			Header: tw.CellConfig{
				Alignment: tw.CellAlignment{Global: tw.AlignCenter},
			},
			Row: tw.CellConfig{
				Alignment: tw.CellAlignment{Global: tw.AlignLeft},
			},
		}
		table := tablewriter.NewTable(os.Stdout, tablewriter.WithConfig(cnf))
		table.Header("Skill", "Agent", "Installed", "Available", "Major")

		for _, u := range result.AvailableUpdates {
			major := ""
			if u.IsMajor {
				major = "yes"
			}
			table.Append(u.SkillName, u.Agent, u.CurrentVersion, u.NewVersion, major)
		}
		if err := table.Render(); err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}

		if !apply {
			fmt.Println("\nRun 'skillagg update --apply' to install these updates.")
			return nil
		}

		applied, failed := 0, 0
		for _, r := range engine.ApplyAllUpdates(cmd.Context(), result.AvailableUpdates) {
			if r.Err != nil {
				failed++
				color.Red("Failed to update %s: %v", r.Update.SkillID, r.Err)
				continue
			}
			applied++
			color.Green("Updated %s to %s", r.Update.SkillID, r.Update.NewVersion)
		}
		fmt.Printf("\n%d updated, %d failed\n", applied, failed)
		return nil
	},
}

var rollbackCmd = &cobra.Command{
	Use:   "rollback <skill-id>",
	Short: "Restore the most recent backup of an installed skill",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		agent, _ := cmd.Flags().GetString("agent")

		engine, err := newEngine()
		if err != nil {
			return err
		}
		if err := engine.RollbackSkill(args[0], agent); err != nil {
			return err
		}

		color.Green("Rolled back %s for %s", args[0], agent)
		return nil
	},
}

var skipCmd = &cobra.Command{
	Use:   "skip <skill-id> <version>",
	Short: "Suppress one version of a skill from update checks",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := newEngine()
		if err != nil {
			return err
		}
		if err := engine.SkipVersion(args[0], args[1]); err != nil {
			return err
		}

		fmt.Printf("Skipping version %s of %s\n", args[1], args[0])
		return nil
	},
}
