package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "shellmarks",
	Short: "Browse a catalog of scripts and edit its sections in place",
	Long: `Shellmarks renders the markdown section files in your script paths into a
single catalog page. Every section carries a small menu with an Edit Section
action that opens the section file in your editor, creating it from a
template when it does not exist yet.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".shellmarks.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
