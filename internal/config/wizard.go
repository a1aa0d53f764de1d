package config

import (
	"fmt"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and saves the
// resulting Config to path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to shellmarks! Let's configure your catalog.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Script path.
	scriptPrompt := promptui.Prompt{
		Label:   "Directory holding your scripts and section files",
		Default: cfg.ScriptPaths[0],
	}
	scriptPath, err := scriptPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("script path: %w", err)
	}
	cfg.ScriptPaths = splitAndTrim(scriptPath)

	// 2. Output directory.
	outputPrompt := promptui.Prompt{
		Label:   "Output directory for the generated catalog site",
		Default: cfg.OutputDir,
	}
	if cfg.OutputDir, err = outputPrompt.Run(); err != nil {
		return nil, fmt.Errorf("output dir: %w", err)
	}

	// 3. Editor.
	editorPrompt := promptui.Select{
		Label: "Open section files with",
		Items: []string{
			"system default",
			"custom command",
		},
	}
	editorIdx, _, err := editorPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("editor selection: %w", err)
	}
	if editorIdx == 1 {
		commandPrompt := promptui.Prompt{
			Label: "Editor command (the file path is appended)",
			Validate: func(s string) error {
				if len(splitAndTrim(s)) == 0 {
					return fmt.Errorf("command is required")
				}
				return nil
			},
		}
		if cfg.Editor, err = commandPrompt.Run(); err != nil {
			return nil, fmt.Errorf("editor command: %w", err)
		}
		waitPrompt := promptui.Prompt{
			Label:     "Does the editor run in this terminal",
			IsConfirm: true,
		}
		if _, err := waitPrompt.Run(); err == nil {
			cfg.EditorWait = true
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

// splitAndTrim splits a comma-separated string and trims whitespace.
func splitAndTrim(s string) []string {
	var result []string
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == ',' {
			token := trimSpace(s[start:i])
			if token != "" {
				result = append(result, token)
			}
			start = i + 1
		}
	}
	return result
}

func trimSpace(s string) string {
	i, j := 0, len(s)
	for i < j && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	for j > i && (s[j-1] == ' ' || s[j-1] == '\t') {
		j--
	}
	return s[i:j]
}
