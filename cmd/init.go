package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shellmarks/catalog/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize shellmarks configuration with an interactive wizard",
	Long:  `Runs an interactive wizard that asks for your script path, output directory and editor, then writes a .shellmarks.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.RunWizard(cfgFile)
		if err != nil {
			return err
		}
		fmt.Printf("Add section files to %s, then run `shellmarks server` to browse them.\n", cfg.ScriptPaths[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
