package cli

import (
	"github.com/spf13/cobra"

	"github.com/Ioshi5505/Nexus-Pipline-HackatonT2025/internal/config"
)

var version = "dev"

func SetVersion(v string) {
	version = v
}

var configFile string

var rootCmd = &cobra.Command{
	Use:   "selfdeploy",
	Short: "selfdeploy — GitLab CI pipeline generator",
	Long: `selfdeploy analyzes the structure of a Git repository, detects its
technology stack and generates a ready-to-use GitLab CI pipeline.

Supported stacks: Java/Kotlin (Maven, Gradle), Go (Go Modules),
TypeScript/JavaScript (npm, yarn, pnpm) and Python (pip, poetry, pipenv).

Generated files are written to ./generated_pipelines/<repo>/ and every run
is recorded in ~/.selfdeploy/history.db.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func loadConfig() (*config.Config, error) {
	if configFile != "" {
		return config.Load(configFile)
	}
	return config.LoadDefault()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "path to selfdeploy config file")
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)
}
