package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shellmarks/catalog/internal/progress"
	"github.com/shellmarks/catalog/internal/sectionmenu"
	"github.com/shellmarks/catalog/internal/site"
)

var siteCmd = &cobra.Command{
	Use:   "site",
	Short: "Generate the static catalog page",
	Long: `Renders every section file into a single index.html with section menus,
plus its stylesheet, script and search index. Action links in a static page
only work when it is opened through ` + "`shellmarks server`" + `.`,
	RunE: runSite,
}

func init() {
	siteCmd.Flags().Bool("serve", false, "start a local HTTP server after generating")
	siteCmd.Flags().Int("port", 0, "port for the local server (defaults to the configured port)")
	siteCmd.Flags().Bool("open", false, "open browser automatically when serving")
	siteCmd.Flags().String("output", "", "override output directory")
	siteCmd.Flags().Bool("quiet", false, "suppress progress output")
	rootCmd.AddCommand(siteCmd)
}

func runSite(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	outputDir, _ := cmd.Flags().GetString("output")
	if outputDir == "" {
		outputDir = cfg.OutputDir
	}
	quiet, _ := cmd.Flags().GetBool("quiet")

	generator := site.NewGenerator(newCatalog(cfg), outputDir, cfg.ProjectName)
	generator.Injector = sectionmenu.New(sectionmenu.WithLogger(logger))
	generator.Reporter = progress.NewReporter(quiet)
	generator.Logger = logger

	stats, err := generator.Generate()
	if err != nil {
		return fmt.Errorf("generating site: %w", err)
	}

	fmt.Printf("Catalog generated: %s (%d sections, %d menus)\n", outputDir, stats.Sections, stats.Menus)

	// Optionally serve the site.
	serve, _ := cmd.Flags().GetBool("serve")
	if serve {
		port, _ := cmd.Flags().GetInt("port")
		if port == 0 {
			port = cfg.Port
		}
		openBrowser, _ := cmd.Flags().GetBool("open")
		if err := site.Serve(outputDir, port, openBrowser); err != nil {
			return fmt.Errorf("serving site: %w", err)
		}
	}

	return nil
}
