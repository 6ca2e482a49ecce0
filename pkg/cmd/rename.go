package cmd

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(renameCmd)
	rootCmd.AddCommand(duplicateCmd)
}

var renameCmd = &cobra.Command{
	Use:   "rename <path> <new-name>",
	Short: "Rename a skill in place",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := newStore()
		if err != nil {
			return err
		}
		dest, err := st.RenameSkill(args[0], args[1])
		if err != nil {
			return err
		}
		color.Green("Renamed to %s", dest)
		return nil
	},
}

var duplicateCmd = &cobra.Command{
	Use:   "duplicate <path> <new-name>",
	Short: "Copy a skill to a sibling folder",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := newStore()
		if err != nil {
			return err
		}
		dest, err := st.DuplicateSkill(args[0], args[1])
		if err != nil {
			return err
		}
		color.Green("Duplicated to %s", dest)
		return nil
	},
}
