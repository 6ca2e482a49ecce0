package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/bachdx2812/ai-skills-aggregator/internal/types"
)

func init() {
	createCmd.Flags().StringP("agent", "a", "claude", "target agent")
	createCmd.Flags().StringP("format", "f", "md", "entry file format (md, json, yaml, py, txt)")
	createCmd.Flags().StringP("description", "d", "", "skill description")
	createCmd.Flags().StringSliceP("tags", "t", nil, "tags")
	createCmd.Flags().String("from", "", "read entry file content from a file")
	rootCmd.AddCommand(createCmd)
}

var createCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new skill folder with an entry file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		agent, _ := cmd.Flags().GetString("agent")
		format, _ := cmd.Flags().GetString("format")
		description, _ := cmd.Flags().GetString("description")
		tags, _ := cmd.Flags().GetStringSlice("tags")
		from, _ := cmd.Flags().GetString("from")

		var content string
		if from != "" {
			data, err := os.ReadFile(from)
			if err != nil {
				return fmt.Errorf("failed to read content file: %w", err)
			}
			content = string(data)
		}

		st, err := newStore()
		if err != nil {
			return err
		}

		skill, err := st.CreateSkill(args[0], description, tags, types.ParseAgent(agent), types.ParseFormat(format), content)
		if err != nil {
			return err
		}

		color.Green("Created skill '%s' at %s", skill.Name, skill.Path)
		return nil
	},
}
