package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/tmcewan/feedexport/config"
)

func main() {
	// Optional .env file; absence is fine.
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	subcommand := os.Args[1]

	switch subcommand {
	case "export":
		handleExportCommand(cfg, os.Args[2:])
	case "runs":
		if len(os.Args) < 3 {
			printRunsUsage()
			os.Exit(1)
		}
		handleRunsCommand(cfg, os.Args[2], os.Args[3:])
	case "report":
		handleReportCommand(cfg, os.Args[2:])
	case "serve":
		handleServeCommand(cfg, os.Args[2:])
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command: %s\n\n", subcommand)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("feedexport - Export feed posts from rendered markup to Markdown")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  feedexport <command> [arguments]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  export     Extract posts from a saved HTML page and write the document")
	fmt.Println("  runs       Manage export-run history")
	fmt.Println("  report     Render an HTML engagement report")
	fmt.Println("  serve      Run the extraction HTTP API")
	fmt.Println("  help       Show this help message")
	fmt.Println()
	fmt.Println("Environment Variables:")
	fmt.Println("  FEEDEXPORT_RUNS_DSN        Path to run-history database (default: runs.db)")
	fmt.Println("  FEEDEXPORT_OUTPUT_DIR      Directory for rendered documents (default: .)")
	fmt.Println("  FEEDEXPORT_SOURCE_URL      Export origin reference for document headers")
	fmt.Println("  FEEDEXPORT_SELECTORS_FILE  Selector-registry override file")
}

func printRunsUsage() {
	fmt.Println("feedexport runs - Manage export-run history")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  feedexport runs <action> [arguments]")
	fmt.Println()
	fmt.Println("Actions:")
	fmt.Println("  list       List all export runs")
	fmt.Println("  delete     Delete a run by id")
	fmt.Println("  help       Show this help message")
}
