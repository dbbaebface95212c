package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Ioshi5505/Nexus-Pipline-HackatonT2025/internal/analyzer"
	"github.com/Ioshi5505/Nexus-Pipline-HackatonT2025/internal/config"
	"github.com/Ioshi5505/Nexus-Pipline-HackatonT2025/internal/history"
	"github.com/Ioshi5505/Nexus-Pipline-HackatonT2025/internal/output"
	"github.com/Ioshi5505/Nexus-Pipline-HackatonT2025/internal/pipeline"
	"github.com/Ioshi5505/Nexus-Pipline-HackatonT2025/internal/report"
	"github.com/Ioshi5505/Nexus-Pipline-HackatonT2025/internal/source"
)

var (
	analyzeOutputDir string
	analyzeNoHistory bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [repository-url]",
	Short: "Analyze a repository and generate its GitLab CI pipeline",
	Long: `Analyze downloads the repository, detects its technology stack and writes
a generated .gitlab-ci.yml plus a report and usage instructions to the
output directory.

With no argument an interactive prompt asks for repository URLs until
'exit' is entered.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if errs := config.Validate(cfg); len(errs) > 0 {
			for _, e := range errs {
				cmd.PrintErrf("config: %s\n", e)
			}
			return fmt.Errorf("config has %d validation error(s)", len(errs))
		}

		if len(args) == 1 {
			return runAnalysis(cmd, cfg, args[0])
		}
		return runInteractive(cmd, cfg)
	},
}

// runInteractive prompts for repository URLs until the user quits.
func runInteractive(cmd *cobra.Command, cfg *config.Config) error {
	w := cmd.OutOrStdout()
	printWelcome(w)

	in := bufio.NewScanner(cmd.InOrStdin())
	for {
		fmt.Fprint(w, "Enter a Git repository URL (or 'exit' to quit):\n> ")
		if !in.Scan() {
			fmt.Fprintln(w)
			return in.Err()
		}
		url := strings.TrimSpace(in.Text())

		switch strings.ToLower(url) {
		case "exit", "quit", "q":
			fmt.Fprintln(w, "Thanks for using selfdeploy.")
			return nil
		case "":
			fmt.Fprintln(w, "Error: URL cannot be empty")
			fmt.Fprintln(w)
			continue
		}

		if !source.ValidURL(url) {
			fmt.Fprintln(w, "Error: unsupported URL")
			fmt.Fprintln(w, "  Only GitHub and GitLab repositories are supported, e.g.")
			fmt.Fprintln(w, "  https://github.com/user/repo")
			fmt.Fprintln(w, "  https://gitlab.com/user/project")
			fmt.Fprintln(w)
			continue
		}

		if err := runAnalysis(cmd, cfg, url); err != nil {
			fmt.Fprintf(w, "\nAnalysis failed: %v\n", err)
		}
		fmt.Fprintln(w, "\n"+strings.Repeat("-", 80))
		fmt.Fprintln(w)
	}
}

// runAnalysis performs one full analyze-and-generate cycle for url.
func runAnalysis(cmd *cobra.Command, cfg *config.Config, url string) error {
	w := cmd.OutOrStdout()
	start := time.Now()

	fmt.Fprintln(w, strings.Repeat("=", 80))
	fmt.Fprintf(w, "Started:    %s\n", start.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Repository: %s\n", url)
	fmt.Fprintln(w, strings.Repeat("=", 80))

	fmt.Fprintln(w, "\n[1/3] Analyzing repository structure...")
	fetcher := source.NewFetcher(os.Getenv(cfg.TokenEnv))
	fetcher.Branches = cfg.Branches
	a, err := analyzer.Analyze(fetcher, url)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "\n[2/3] Analysis results:")
	fmt.Fprint(w, report.Text(a, start))

	fmt.Fprintln(w, "\n[3/3] Generating GitLab CI pipeline...")
	synth := pipeline.NewSynthesizer()
	synth.SonarQubeEnabled = cfg.SonarQubeEnabled()
	synth.NexusEnabled = cfg.NexusEnabled()
	doc := synth.Synthesize(a.Profile, a.Repository.Name)
	rendered, err := pipeline.Render(doc)
	if err != nil {
		return fmt.Errorf("render pipeline: %w", err)
	}

	outDir := cfg.OutputDir
	if analyzeOutputDir != "" {
		outDir = analyzeOutputDir
	}
	store := output.NewStore(outDir)
	dir, err := store.Save(a.Repository.Name, a, output.Artifacts{
		Pipeline: rendered,
		Report:   report.Text(a, start),
		Readme:   report.Readme(a, start),
	})
	if err != nil {
		return fmt.Errorf("save artifacts: %w", err)
	}

	fmt.Fprintln(w, "\nGenerated files:")
	fmt.Fprintf(w, "  GitLab CI:    %s\n", filepath.Join(dir, output.PipelineFile))
	fmt.Fprintf(w, "  Report:       %s\n", filepath.Join(dir, output.ReportFile))
	fmt.Fprintf(w, "  Instructions: %s\n", filepath.Join(dir, output.ReadmeFile))

	elapsed := time.Since(start)
	if !analyzeNoHistory {
		if err := recordRun(cfg, a, dir, elapsed); err != nil {
			cmd.PrintErrf("warning: could not record run: %v\n", err)
		}
	}

	fmt.Fprintln(w, "\n"+strings.Repeat("=", 80))
	fmt.Fprintf(w, "Analysis completed in %s\n", elapsed.Round(time.Millisecond))
	fmt.Fprintln(w, strings.Repeat("=", 80))
	return nil
}

func recordRun(cfg *config.Config, a *analyzer.Analysis, outDir string, elapsed time.Duration) error {
	dbPath := cfg.HistoryDB
	if dbPath == "" {
		var err error
		dbPath, err = history.DefaultDBPath()
		if err != nil {
			return err
		}
	}
	db, err := history.Open(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := db.Migrate(); err != nil {
		return err
	}

	_, err = db.Record(history.Run{
		Repository: a.Repository.FullName,
		Platform:   a.Repository.Platform,
		Language:   a.Profile.PrimaryLanguage,
		Confidence: a.Confidence,
		Frameworks: a.Profile.Frameworks,
		FileCount:  a.FileCount,
		Method:     a.Method,
		OutputDir:  outDir,
		Duration:   elapsed,
	})
	return err
}

func printWelcome(w io.Writer) {
	fmt.Fprintln(w, strings.Repeat("=", 80))
	fmt.Fprintln(w, "  selfdeploy: CI/CD pipeline generator")
	fmt.Fprintln(w, strings.Repeat("=", 80))
	fmt.Fprintln(w, "\nGenerates GitLab CI pipelines from the structure of a Git repository.")
	fmt.Fprintln(w, "\nSupported stacks:")
	fmt.Fprintln(w, "  - Java/Kotlin (Maven, Gradle)")
	fmt.Fprintln(w, "  - Go (Go Modules)")
	fmt.Fprintln(w, "  - TypeScript/JavaScript (npm, yarn, pnpm)")
	fmt.Fprintln(w, "  - Python (pip, poetry, pipenv)")
	fmt.Fprintln(w, "\nExample URLs:")
	fmt.Fprintln(w, "  - https://github.com/spring-projects/spring-boot")
	fmt.Fprintln(w, "  - https://gitlab.com/gitlab-org/gitlab")
	fmt.Fprintln(w, strings.Repeat("=", 80))
	fmt.Fprintln(w)
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeOutputDir, "output", "o", "", "output directory for generated files")
	analyzeCmd.Flags().BoolVar(&analyzeNoHistory, "no-history", false, "skip recording the run in the history database")
}
