package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shellmarks/catalog/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history [section]",
	Short: "Show recent edit requests",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		database, store, err := openHistory(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		limit, _ := cmd.Flags().GetInt("limit")
		ctx := context.Background()

		var entries []history.Entry
		if len(args) == 1 {
			entries, err = store.BySection(ctx, args[0], limit)
		} else {
			entries, err = store.Recent(ctx, limit)
		}
		if err != nil {
			return err
		}

		if len(entries) == 0 {
			fmt.Println("No edit requests recorded yet.")
			return nil
		}
		for _, e := range entries {
			created := ""
			if e.Created {
				created = " (created)"
			}
			fmt.Printf("%s  %-4s %s%s\n", e.RequestedAt.Local().Format("2006-01-02 15:04:05"), e.Source, e.Section, created)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of entries")
	rootCmd.AddCommand(historyCmd)
}
