package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func init() {
	exportCmd.Flags().StringP("out", "o", "", "output directory (defaults to the working directory)")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export <file-path>",
	Short: "Export a skill file's content",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")

		st, err := newStore()
		if err != nil {
			return err
		}
		data, err := st.Export(args[0])
		if err != nil {
			return err
		}

		if out == "" {
			fmt.Print(data.Content)
			return nil
		}

		dest := filepath.Join(out, data.Filename)
		if err := os.WriteFile(dest, []byte(data.Content), 0644); err != nil {
			return fmt.Errorf("failed to write export: %w", err)
		}
		color.Green("Exported to %s", dest)
		return nil
	},
}
