package config

// Config is the top-level shellmarks configuration, corresponding to
// .shellmarks.yml.
type Config struct {
	ProjectName     string   `yaml:"project_name" koanf:"project_name"`
	ScriptPaths     []string `yaml:"script_paths" koanf:"script_paths"`
	Include         []string `yaml:"include" koanf:"include"`
	Exclude         []string `yaml:"exclude" koanf:"exclude"`
	OutputDir       string   `yaml:"output_dir" koanf:"output_dir"`
	DataDir         string   `yaml:"data_dir" koanf:"data_dir"`
	Editor          string   `yaml:"editor" koanf:"editor"`
	EditorWait      bool     `yaml:"editor_wait" koanf:"editor_wait"`
	Port            int      `yaml:"port" koanf:"port"`
	AllowAllOrigins bool     `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	LogLevel        string   `yaml:"log_level" koanf:"log_level"`
}

// PathEnvVar lists script paths separated by the OS path list separator.
// When set it replaces script_paths from the file.
const PathEnvVar = "SHELLMARKS_PATH"

// EnvPrefix prefixes environment overrides: SHELLMARKS_OUTPUT_DIR -> output_dir.
const EnvPrefix = "SHELLMARKS_"

// DefaultExcludes are section file name patterns skipped by default.
var DefaultExcludes = []string{
	"README.md",
	"CHANGELOG.md",
	"*.draft.md",
}
