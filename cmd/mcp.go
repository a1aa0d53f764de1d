package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shellmarks/catalog/internal/editor"
	"github.com/shellmarks/catalog/internal/history"
	mcpserver "github.com/shellmarks/catalog/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing tools to list, read and edit catalog sections and to decorate HTML with section menus.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		// The logger writes to stderr; stdout carries the protocol.
		logger := newLogger(cfg)

		database, store, err := openHistory(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		var opener editor.Opener
		if open, _ := cmd.Flags().GetBool("open"); open {
			opener = newOpener(cfg)
		}

		cat := newCatalog(cfg)
		host := newHost(cat, opener, store, history.SourceMCP, logger)

		// Set version from the cmd package variable.
		mcpserver.Version = Version

		fmt.Fprintf(os.Stderr, "shellmarks MCP server started on stdio (script paths=%v)\n", cfg.ScriptPaths)

		srv := mcpserver.NewServer(cat, host)
		return srv.Serve()
	},
}

func init() {
	mcpCmd.Flags().Bool("open", false, "also open sections in the editor when edit_section is called")
	rootCmd.AddCommand(mcpCmd)
}
