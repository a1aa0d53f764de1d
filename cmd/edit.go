package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shellmarks/catalog/internal/action"
	"github.com/shellmarks/catalog/internal/editor"
	"github.com/shellmarks/catalog/internal/history"
	"github.com/shellmarks/catalog/internal/linkrouter"
)

var editCmd = &cobra.Command{
	Use:   "edit <section | editSection:section>",
	Short: "Open a section file in your editor, creating it if needed",
	Long: `Resolves a section the same way the Edit Section menu does: an existing
section file is opened, a missing one is first written from the section
template into the first script path.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger := newLogger(cfg)

		database, store, err := openHistory(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		var opener editor.Opener
		if noOpen, _ := cmd.Flags().GetBool("no-open"); !noOpen {
			opener = newOpener(cfg)
		}
		host := newHost(newCatalog(cfg), opener, store, history.SourceCLI, logger)

		router := linkrouter.New()
		host.Register(router)

		// Bare names are treated as editSection targets.
		href := args[0]
		if _, err := action.Parse(href); err != nil {
			href = action.EditSection(href).String()
		}

		res, err := router.Route(context.Background(), href)
		if err != nil {
			return err
		}
		if res.Created {
			fmt.Printf("Created %s\n", res.Path)
		} else {
			fmt.Println(res.Path)
		}
		return nil
	},
}

func init() {
	editCmd.Flags().Bool("no-open", false, "only resolve or create the file, do not launch the editor")
	rootCmd.AddCommand(editCmd)
}
