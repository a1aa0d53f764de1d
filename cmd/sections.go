package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shellmarks/catalog/internal/catalog"
)

var sectionsCmd = &cobra.Command{
	Use:   "sections",
	Short: "List the section files in the script paths",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		sections, err := newCatalog(cfg).Sections()
		if err != nil {
			return err
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			if sections == nil {
				sections = []catalog.Section{}
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(sections)
		}

		if len(sections) == 0 {
			fmt.Println("No sections found. Run `shellmarks edit <name>` to create one.")
			return nil
		}
		for _, s := range sections {
			fmt.Printf("%-24s %-28s %s\n", s.Name, catalog.Label(s.Name), s.Path)
		}
		return nil
	},
}

func init() {
	sectionsCmd.Flags().Bool("json", false, "print sections as JSON")
	rootCmd.AddCommand(sectionsCmd)
}
