package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/Ioshi5505/Nexus-Pipline-HackatonT2025/internal/cli"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// Optional .env for GITHUB_TOKEN and friends; absence is fine.
	_ = godotenv.Load()

	cli.SetVersion(Version)
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
