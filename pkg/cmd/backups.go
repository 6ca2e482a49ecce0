package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"
)

func init() {
	backupsCmd.AddCommand(backupsListCmd)
	backupsCmd.AddCommand(backupsCleanupCmd)
	rootCmd.AddCommand(backupsCmd)
}

var backupsCmd = &cobra.Command{
	Use:   "backups",
	Short: "Inspect and clean the backup vault",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var backupsListCmd = &cobra.Command{
	Use:   "list <name>",
	Short: "List vault snapshots matching a file or folder name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		backups, err := newVault().ListBackups(args[0])
		if err != nil {
			return err
		}
		if len(backups) == 0 {
			fmt.Printf("No backups found for %s\n", args[0])
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
		table.Header("Name", "Created At", "Size")

		for _, b := range backups {
			createdAt := time.Unix(b.CreatedAt, 0).Format(dateFormat)
			table.Append(b.Name, createdAt, fmt.Sprintf("%d", b.Size))
		}
		if err := table.Render(); err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}
		return nil
	},
}

var backupsCleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Remove vault snapshots older than the retention window",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		deleted, err := newVault().CleanupOldBackups()
		if err != nil {
			return err
		}
		fmt.Printf("Removed %d old backups\n", deleted)
		return nil
	},
}
