package cmd

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func init() {
	removeCmd.Flags().Bool("file", false, "remove a single file instead of a whole skill")
	rootCmd.AddCommand(removeCmd)
}

var removeCmd = &cobra.Command{
	Use:   "remove <path>",
	Short: "Remove a skill (backed up to the vault first)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fileOnly, _ := cmd.Flags().GetBool("file")

		st, err := newStore()
		if err != nil {
			return err
		}

		if fileOnly {
			err = st.DeleteFile(args[0])
		} else {
			err = st.DeleteSkill(args[0])
		}
		if err != nil {
			return err
		}

		color.Yellow("Removed %s (snapshot stored in the backup vault)", args[0])
		return nil
	},
}
