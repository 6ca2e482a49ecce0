package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"github.com/bachdx2812/ai-skills-aggregator/internal/scanner"
	"github.com/bachdx2812/ai-skills-aggregator/internal/types"
)

const dateFormat = "2006-01-02 15:04"

func init() {
	listCmd.Flags().Bool("all", false, "scan every agent, including disabled ones")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List skills discovered across agent configuration directories",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")
		return executeList(all)
	},
}

func executeList(includeDisabled bool) error {
	home, err := userHome()
	if err != nil {
		return err
	}

	configs := types.DefaultAgentConfigs(home)
	if includeDisabled {
		for i := range configs {
			configs[i].Enabled = true
		}
	}

	skills := scanner.New().ScanAll(configs)
	if len(skills) == 0 {
		fmt.Println("No skills found.")
		fmt.Println("Use 'skillagg create <name>' to create one.")
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
	table.Header("Name", "Agent", "Files", "Updated At", "Path")

	for _, skill := range skills {
		updatedAt := time.Unix(skill.UpdatedAt, 0).Format(dateFormat)
		table.Append(skill.Name, skill.Agent.String(), fmt.Sprintf("%d", skill.FileCount), updatedAt, skill.Path)
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	fmt.Printf("\nTotal: %d skills\n", len(skills))
	return nil
}
