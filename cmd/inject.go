package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/shellmarks/catalog/internal/config"
	"github.com/shellmarks/catalog/internal/sectionmenu"
)

var injectCmd = &cobra.Command{
	Use:   "inject [file.html]",
	Short: "Add section menus to an existing HTML document",
	Long: `Reads an HTML document (from the file argument or stdin), adds a section
menu with an Edit Section action to every div.sect0 to div.sect7 whose
heading id does not start with an underscore, and writes the result.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInject,
}

func init() {
	injectCmd.Flags().StringP("output", "o", "", "write to this file instead of stdout")
	injectCmd.Flags().Int("min-level", sectionmenu.DefaultLevels.Min, "lowest section level to decorate")
	injectCmd.Flags().Int("max-level", sectionmenu.DefaultLevels.Max, "highest section level to decorate")
	rootCmd.AddCommand(injectCmd)
}

func runInject(cmd *cobra.Command, args []string) error {
	// Inject works without a config file; it only borrows the log level.
	cfg, err := config.Load(cfgFile)
	if err != nil {
		cfg = config.DefaultConfig()
	}
	logger := newLogger(cfg)

	minLevel, _ := cmd.Flags().GetInt("min-level")
	maxLevel, _ := cmd.Flags().GetInt("max-level")
	if minLevel < 0 || maxLevel < minLevel {
		return fmt.Errorf("invalid level range %d..%d", minLevel, maxLevel)
	}

	var in io.Reader = os.Stdin
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	var out io.Writer = os.Stdout
	if path, _ := cmd.Flags().GetString("output"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	injector := sectionmenu.New(
		sectionmenu.WithLevels(sectionmenu.LevelRange{Min: minLevel, Max: maxLevel}),
		sectionmenu.WithLogger(logger),
	)
	n, err := injector.InjectHTML(in, out)
	if err != nil {
		return err
	}
	logger.Info("section menus injected", "count", n)
	return nil
}
